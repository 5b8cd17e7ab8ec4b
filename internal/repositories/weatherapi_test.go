package repositories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/config"
	"weather-dashboard/pkg/logger"
)

const parisWeatherAPIPayload = `{
	"location": {"name": "Paris", "country": "France"},
	"current": {
		"temp_c": 7.5,
		"feelslike_c": 5.1,
		"humidity": 81,
		"pressure_mb": 1021,
		"wind_kph": 18,
		"condition": {"text": "Partly cloudy", "icon": "//cdn.weatherapi.com/weather/64x64/day/116.png", "code": 1003}
	}
}`

func newTestWeatherAPIRepository(t *testing.T, handler http.HandlerFunc) *WeatherAPIRepository {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	repo, err := NewWeatherAPIRepository(server.URL, "test-key", logger.NewZapLogger("test-app"), server.Client())
	require.NoError(t, err)
	return repo
}

func TestWeatherAPIRepository_FetchCurrent_Success(t *testing.T) {
	repo := newTestWeatherAPIRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, weatherAPICurrentPath, r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(parisWeatherAPIPayload))
	})

	obs, err := repo.FetchCurrent(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, "Paris", obs.Location)
	assert.Equal(t, 7.5, obs.Temperature)
	assert.Equal(t, 5.1, obs.FeelsLike)
	assert.Equal(t, 81, obs.Humidity)
	assert.Equal(t, 1021.0, obs.Pressure)
	assert.Equal(t, "Partly cloudy", obs.Description)
	assert.Equal(t, "day/116", obs.Icon)
	assert.InDelta(t, 5.0, obs.WindSpeed, 1e-9)
}

func TestWeatherAPIRepository_FetchCurrent_ProviderError(t *testing.T) {
	repo := newTestWeatherAPIRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	})

	_, err := repo.FetchCurrent(context.Background(), "Paris")
	require.Error(t, err)
	assert.Equal(t, "HTTP error (status 400): No matching location found.", err.Error())
}

func TestWeatherAPIRepository_FetchCurrent_InvalidJSON(t *testing.T) {
	repo := newTestWeatherAPIRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json"))
	})

	_, err := repo.FetchCurrent(context.Background(), "Paris")
	assert.ErrorContains(t, err, "failed to parse JSON response")
}

func TestWeatherAPIRepository_FetchCurrent_Malformed(t *testing.T) {
	cases := map[string]string{
		"no location":  `{"current": {"temp_c": 1, "feelslike_c": 1, "humidity": 1, "pressure_mb": 1, "wind_kph": 1, "condition": {"text": "Mist", "icon": "x"}}}`,
		"no current":   `{"location": {"name": "Paris"}}`,
		"no wind":      `{"location": {"name": "Paris"}, "current": {"temp_c": 1, "feelslike_c": 1, "humidity": 1, "pressure_mb": 1, "condition": {"text": "Mist", "icon": "x"}}}`,
		"no condition": `{"location": {"name": "Paris"}, "current": {"temp_c": 1, "feelslike_c": 1, "humidity": 1, "pressure_mb": 1, "wind_kph": 1}}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newTestWeatherAPIRepository(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(payload))
			})

			_, err := repo.FetchCurrent(context.Background(), "Paris")
			assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestNewWeatherAPIRepository_RequiresKey(t *testing.T) {
	_, err := NewWeatherAPIRepository("", "  ", logger.NewZapLogger("test-app"), http.DefaultClient)
	assert.Error(t, err)

	repo, err := NewWeatherAPIRepository("", "key", logger.NewZapLogger("test-app"), http.DefaultClient)
	require.NoError(t, err)
	assert.Equal(t, WeatherAPIBaseURL, repo.BaseURL)
	assert.Equal(t, "weatherapi", repo.Name())
}

func TestInitWeatherRepository_WeatherAPI(t *testing.T) {
	cfg := &config.Config{Weather: config.WeatherConfig{Provider: "weatherapi", APIKey: "k", Timeout: 5}}

	repo, err := InitWeatherRepository(cfg, logger.NewZapLogger("test-app"))
	require.NoError(t, err)
	assert.Equal(t, "weatherapi", repo.Name())
}

func TestIconCode(t *testing.T) {
	assert.Equal(t, "day/116", iconCode("//cdn.weatherapi.com/weather/64x64/day/116.png"))
	assert.Equal(t, "night/113", iconCode("night/113.png"))
	assert.Equal(t, "113", iconCode("113"))
}
