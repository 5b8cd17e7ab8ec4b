package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

var (
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrCircuitOpen       = errors.New("weather provider temporarily unavailable")
)

// HTTPClient is the subset of *http.Client the gateways need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository fetches current conditions for a named place from an upstream provider.
type WeatherRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, location string) (models.Observation, error)
}

// InitWeatherRepository builds the gateway for the configured provider.
func InitWeatherRepository(cfg *config.Config, l *logger.Logger) (WeatherRepository, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Weather.Timeout) * time.Second,
	}

	switch cfg.Weather.Provider {
	case "", OpenWeatherMapName:
		return NewOpenWeatherMapRepository(cfg.Weather.BaseURL, cfg.Weather.APIKey, l, httpClient), nil
	case WeatherAPIName:
		return NewWeatherAPIRepository(cfg.Weather.BaseURL, cfg.Weather.APIKey, l, httpClient)
	default:
		return nil, fmt.Errorf("unknown weather provider %q", cfg.Weather.Provider)
	}
}

// newCircuitBreaker opens after five consecutive failures and probes again after 30s.
func newCircuitBreaker(name string, l *logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warning("circuit breaker state changed", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
}

// executeWithBreaker performs exactly one call; the breaker only short-circuits, it never retries.
func executeWithBreaker(cb *gobreaker.CircuitBreaker, call func() (models.Observation, error)) (models.Observation, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return models.Observation{}, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return models.Observation{}, err
	}

	obs, ok := result.(models.Observation)
	if !ok {
		return models.Observation{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return obs, nil
}
