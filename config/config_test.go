package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := defaults()
	cfg.App.Name = "test-app"
	return cfg
}

func TestNewConfig(t *testing.T) {
	// Test with default values (without config file)
	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)
	assert.NotNil(t, config)

	// Test default values
	assert.Equal(t, "weather-dashboard", config.App.Name)
	assert.Equal(t, "1.0.0", config.App.Version)
	assert.Equal(t, "development", config.App.Env)
	assert.Equal(t, "5000", config.Server.Port)
	assert.Equal(t, 10, config.Server.ReadTimeout)
	assert.Equal(t, 10, config.Server.WriteTimeout)
	assert.Equal(t, 120, config.Server.IdleTimeout)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "memory", config.Storage.Driver)
	assert.Equal(t, "openweathermap", config.Weather.Provider)
	assert.Empty(t, config.Weather.BaseURL)
	assert.Equal(t, 30, config.Weather.MaxHistoryDays)
	assert.Equal(t, []string{"Delhi", "Moscow", "Paris", "New York", "Sydney", "Riyadh"}, config.Weather.Locations)
	assert.Empty(t, config.Weather.APIKey)
	assert.Zero(t, config.Collector.Interval)
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	t.Setenv("APP_NAME", "test-app")
	t.Setenv("APP_VERSION", "2.0.0")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEATHER_API_KEY", "secret")
	t.Setenv("WEATHER_LOCATIONS", "Delhi,Paris")
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("STORAGE_MONGO_URI", "mongodb://db:27017")
	t.Setenv("COLLECTOR_INTERVAL", "15")

	provider := NewFileConfigProvider("nonexistent.yaml")
	config, err := NewConfigWithProvider(provider)
	require.NoError(t, err)

	assert.Equal(t, "test-app", config.App.Name)
	assert.Equal(t, "2.0.0", config.App.Version)
	assert.Equal(t, "production", config.App.Env)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "secret", config.Weather.APIKey)
	assert.Equal(t, []string{"Delhi", "Paris"}, config.Weather.Locations)
	assert.Equal(t, "mongo", config.Storage.Driver)
	assert.Equal(t, "mongodb://db:27017", config.Storage.MongoURI)
	assert.Equal(t, 15, config.Collector.Interval)
}

func TestConfigValidation(t *testing.T) {
	provider := NewFileConfigProvider("config.yaml")

	// Test valid config
	assert.NoError(t, provider.Validate(validConfig()))

	// Test invalid config - missing app name
	invalid := validConfig()
	invalid.App.Name = ""
	err := provider.Validate(invalid)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "app.name is required")

	invalid = validConfig()
	invalid.Weather.Locations = nil
	assert.ErrorContains(t, provider.Validate(invalid), "weather.locations must not be empty")

	invalid = validConfig()
	invalid.Weather.MaxHistoryDays = 0
	assert.ErrorContains(t, provider.Validate(invalid), "weather.max_history_days must be positive")

	invalid = validConfig()
	invalid.Weather.Provider = "open-meteo"
	assert.ErrorContains(t, provider.Validate(invalid), `weather.provider "open-meteo" is not supported`)

	invalid = validConfig()
	invalid.Storage.Driver = "mongo"
	assert.ErrorContains(t, provider.Validate(invalid), "storage.mongo_uri is required")

	invalid = validConfig()
	invalid.Storage.Driver = "postgres"
	assert.ErrorContains(t, provider.Validate(invalid), `storage.driver "postgres" is not supported`)

	invalid = validConfig()
	invalid.App.Env = "production"
	assert.ErrorContains(t, provider.Validate(invalid), "weather.api_key is required in production")
}

func TestConfigHelperMethods(t *testing.T) {
	config := &Config{App: AppConfig{Env: "development"}}

	assert.True(t, config.IsDevelopment())
	assert.False(t, config.IsProduction())

	config.App.Env = "production"
	assert.False(t, config.IsDevelopment())
	assert.True(t, config.IsProduction())
}

func TestFileConfigProvider_LoadFromFile(t *testing.T) {
	provider := NewFileConfigProvider("nonexistent.yaml")
	config := &Config{}

	// Test loading from non-existent file (should not error)
	err := provider.loadFromFile(config)
	assert.NoError(t, err)
}

func TestFileConfigProvider_LoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unterminated"), 0o600))

	_, err := NewFileConfigProvider(path).Load()
	assert.Error(t, err)
}

func TestFileConfigProvider_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7000\"\nweather:\n  max_history_days: 14\n"), 0o600))
	t.Setenv("SERVER_PORT", "7100")

	config, err := NewFileConfigProvider(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "7100", config.Server.Port)
	assert.Equal(t, 14, config.Weather.MaxHistoryDays)
	assert.Equal(t, "weather-dashboard", config.App.Name, "defaults survive a partial file")
}

func TestNewConfigWithProvider(t *testing.T) {
	mockProvider := &MockConfigProvider{config: validConfig()}

	config, err := NewConfigWithProvider(mockProvider)
	require.NoError(t, err)
	assert.Equal(t, "test-app", config.App.Name)

	_, err = NewConfigWithProvider(&MockConfigProvider{err: os.ErrPermission})
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestConfigFileLoading(t *testing.T) {
	config, err := NewConfigWithProvider(NewFileConfigProvider("config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mongo", config.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", config.Storage.MongoURI)
	assert.Equal(t, "YOUR-API-KEY-HERE", config.Weather.APIKey)
	assert.Len(t, config.Weather.Locations, 6)
	assert.Equal(t, "New York", config.Weather.Locations[3])
	assert.Equal(t, "weather.readings", config.Events.Exchange)
}

// MockConfigProvider for testing
type MockConfigProvider struct {
	config *Config
	err    error
}

func (m *MockConfigProvider) Load() (*Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *MockConfigProvider) Validate(config *Config) error {
	return nil
}
