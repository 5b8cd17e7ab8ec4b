package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config/config.yaml"

type Config struct {
	App       AppConfig       `yaml:"app" envconfig:"APP"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Weather   WeatherConfig   `yaml:"weather" envconfig:"WEATHER"`
	Storage   StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Sentry    SentryConfig    `yaml:"sentry" envconfig:"SENTRY"`
	Collector CollectorConfig `yaml:"collector" envconfig:"COLLECTOR"`
	Events    EventsConfig    `yaml:"events" envconfig:"EVENTS"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
	Env     string `yaml:"env" envconfig:"ENV"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
}

type WeatherConfig struct {
	// Provider is "openweathermap" or "weatherapi".
	Provider string `yaml:"provider" envconfig:"PROVIDER"`
	// BaseURL overrides the provider's public endpoint.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`
	APIKey  string `yaml:"api_key,omitempty" envconfig:"API_KEY"`
	// Timeout for a single upstream call, in seconds.
	Timeout   int      `yaml:"timeout" envconfig:"TIMEOUT"`
	Locations []string `yaml:"locations" envconfig:"LOCATIONS"`
	// MaxHistoryDays bounds the span of a history query.
	MaxHistoryDays int `yaml:"max_history_days" envconfig:"MAX_HISTORY_DAYS"`
}

type StorageConfig struct {
	// Driver is "mongo" or "memory".
	Driver     string `yaml:"driver" envconfig:"DRIVER"`
	MongoURI   string `yaml:"mongo_uri" envconfig:"MONGO_URI"`
	Database   string `yaml:"database" envconfig:"DATABASE"`
	Collection string `yaml:"collection" envconfig:"COLLECTION"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

// CollectorConfig drives periodic collection; Interval is in minutes and 0 disables it.
type CollectorConfig struct {
	Interval int `yaml:"interval" envconfig:"INTERVAL"`
}

// EventsConfig enables reading events when URL is set.
type EventsConfig struct {
	URL        string `yaml:"url" envconfig:"URL"`
	Exchange   string `yaml:"exchange" envconfig:"EXCHANGE"`
	RoutingKey string `yaml:"routing_key" envconfig:"ROUTING_KEY"`
}

// ConfigProvider loads and validates configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads defaults, then an optional YAML file, then environment overrides.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaults()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// Override with environment variables
	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

// loadFromFile is a no-op when the file does not exist.
func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(config *Config) error {
	var errs []error

	if config.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}
	if config.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	switch config.Weather.Provider {
	case "openweathermap", "weatherapi":
	default:
		errs = append(errs, fmt.Errorf("weather.provider %q is not supported", config.Weather.Provider))
	}
	if len(config.Weather.Locations) == 0 {
		errs = append(errs, errors.New("weather.locations must not be empty"))
	}
	if config.Weather.MaxHistoryDays <= 0 {
		errs = append(errs, errors.New("weather.max_history_days must be positive"))
	}
	if config.IsProduction() && config.Weather.APIKey == "" {
		errs = append(errs, errors.New("weather.api_key is required in production"))
	}

	switch config.Storage.Driver {
	case "memory":
	case "mongo":
		if config.Storage.MongoURI == "" {
			errs = append(errs, errors.New("storage.mongo_uri is required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", config.Storage.Driver))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-dashboard",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "5000",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Weather: WeatherConfig{
			Provider:       "openweathermap",
			Timeout:        10,
			Locations:      []string{"Delhi", "Moscow", "Paris", "New York", "Sydney", "Riyadh"},
			MaxHistoryDays: 30,
		},
		Storage: StorageConfig{
			Driver:     "memory",
			Database:   "weather",
			Collection: "readings",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Events: EventsConfig{
			Exchange:   "weather.readings",
			RoutingKey: "reading.created",
		},
	}
}
