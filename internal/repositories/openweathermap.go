package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const (
	OpenWeatherMapName    = "openweathermap"
	OpenWeatherMapBaseURL = "https://api.openweathermap.org"

	currentWeatherPath = "/data/2.5/weather"
)

type OpenWeatherMapRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	circuit    *gobreaker.CircuitBreaker
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) *OpenWeatherMapRepository {
	if baseURL == "" {
		baseURL = OpenWeatherMapBaseURL
	}

	return &OpenWeatherMapRepository{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		httpClient: httpClient,
		circuit:    newCircuitBreaker(OpenWeatherMapName, l),
		l:          l,
	}
}

func (o *OpenWeatherMapRepository) Name() string {
	return OpenWeatherMapName
}

// OpenWeatherMapResponse is the subset of the current-weather payload we read.
// Numeric fields are pointers so that a missing value is detectable.
type OpenWeatherMapResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *int     `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

type openWeatherMapError struct {
	Message string `json:"message"`
}

// FetchCurrent queries the current-weather endpoint by city name.
func (o *OpenWeatherMapRepository) FetchCurrent(ctx context.Context, location string) (models.Observation, error) {
	return executeWithBreaker(o.circuit, func() (models.Observation, error) {
		return o.fetch(ctx, location)
	})
}

func (o *OpenWeatherMapRepository) fetch(ctx context.Context, location string) (models.Observation, error) {
	values := url.Values{}
	values.Set("q", location)
	values.Set("units", "metric")
	values.Set("appid", o.APIKey)

	u := fmt.Sprintf("%s%s?%s", o.BaseURL, currentWeatherPath, values.Encode())

	o.l.Info("making openweathermap API request", map[string]any{
		"location": location,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	o.l.Info("received openweathermap API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr openWeatherMapError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return models.Observation{}, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return models.Observation{}, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response OpenWeatherMapResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Observation{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return observationFromResponse(response)
}

func observationFromResponse(r OpenWeatherMapResponse) (models.Observation, error) {
	switch {
	case r.Name == "":
		return models.Observation{}, fmt.Errorf("%w: missing name", ErrMalformedResponse)
	case r.Main == nil || r.Main.Temp == nil || r.Main.FeelsLike == nil || r.Main.Humidity == nil || r.Main.Pressure == nil:
		return models.Observation{}, fmt.Errorf("%w: incomplete main block", ErrMalformedResponse)
	case len(r.Weather) == 0:
		return models.Observation{}, fmt.Errorf("%w: missing weather conditions", ErrMalformedResponse)
	case r.Wind == nil || r.Wind.Speed == nil:
		return models.Observation{}, fmt.Errorf("%w: missing wind speed", ErrMalformedResponse)
	}

	return models.Observation{
		Location:    r.Name,
		Temperature: *r.Main.Temp,
		FeelsLike:   *r.Main.FeelsLike,
		Humidity:    *r.Main.Humidity,
		Description: r.Weather[0].Main,
		Icon:        r.Weather[0].Icon,
		WindSpeed:   *r.Wind.Speed,
		Pressure:    *r.Main.Pressure,
	}, nil
}
