package repositories

import (
	"context"
	"encoding/json"
	"errors"
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
	WeatherAPIName    = "weatherapi"
	WeatherAPIBaseURL = "https://api.weatherapi.com"

	weatherAPICurrentPath = "/v1/current.json"
)

// WeatherAPIRepository reads current conditions from WeatherAPI.com.
type WeatherAPIRepository struct {
	BaseURL    string
	APIKey     string
	httpClient HTTPClient
	circuit    *gobreaker.CircuitBreaker
	l          *logger.Logger
}

func NewWeatherAPIRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) (*WeatherAPIRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = WeatherAPIBaseURL
	}

	return &WeatherAPIRepository{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		httpClient: httpClient,
		circuit:    newCircuitBreaker(WeatherAPIName, l),
		l:          l,
	}, nil
}

func (w *WeatherAPIRepository) Name() string {
	return WeatherAPIName
}

type WeatherAPIResponse struct {
	Location *struct {
		Name string `json:"name"`
	} `json:"location"`
	Current *struct {
		TempC      *float64 `json:"temp_c"`
		FeelsLikeC *float64 `json:"feelslike_c"`
		Humidity   *int     `json:"humidity"`
		PressureMb *float64 `json:"pressure_mb"`
		WindKph    *float64 `json:"wind_kph"`
		Condition  *struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
	} `json:"current"`
}

type weatherAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (w *WeatherAPIRepository) FetchCurrent(ctx context.Context, location string) (models.Observation, error) {
	return executeWithBreaker(w.circuit, func() (models.Observation, error) {
		return w.fetch(ctx, location)
	})
}

func (w *WeatherAPIRepository) fetch(ctx context.Context, location string) (models.Observation, error) {
	values := url.Values{}
	values.Set("key", w.APIKey)
	values.Set("q", location)

	u := fmt.Sprintf("%s%s?%s", w.BaseURL, weatherAPICurrentPath, values.Encode())

	w.l.Info("making weatherapi API request", map[string]any{
		"location": location,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	w.l.Info("received weatherapi API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Observation{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr weatherAPIError
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return models.Observation{}, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return models.Observation{}, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	var response WeatherAPIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Observation{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return observationFromWeatherAPI(response)
}

func observationFromWeatherAPI(r WeatherAPIResponse) (models.Observation, error) {
	switch {
	case r.Location == nil || r.Location.Name == "":
		return models.Observation{}, fmt.Errorf("%w: missing location name", ErrMalformedResponse)
	case r.Current == nil:
		return models.Observation{}, fmt.Errorf("%w: missing current block", ErrMalformedResponse)
	}

	c := r.Current
	switch {
	case c.TempC == nil || c.FeelsLikeC == nil || c.Humidity == nil || c.PressureMb == nil:
		return models.Observation{}, fmt.Errorf("%w: incomplete current block", ErrMalformedResponse)
	case c.WindKph == nil:
		return models.Observation{}, fmt.Errorf("%w: missing wind speed", ErrMalformedResponse)
	case c.Condition == nil:
		return models.Observation{}, fmt.Errorf("%w: missing weather conditions", ErrMalformedResponse)
	}

	return models.Observation{
		Location:    r.Location.Name,
		Temperature: *c.TempC,
		FeelsLike:   *c.FeelsLikeC,
		Humidity:    *c.Humidity,
		Description: c.Condition.Text,
		Icon:        iconCode(c.Condition.Icon),
		WindSpeed:   kphToMetersPerSecond(*c.WindKph),
		Pressure:    *c.PressureMb,
	}, nil
}

// iconCode reduces "//cdn.weatherapi.com/weather/64x64/day/116.png" to "day/116".
func iconCode(icon string) string {
	icon = strings.TrimSuffix(icon, ".png")
	parts := strings.Split(icon, "/")
	if len(parts) < 2 {
		return icon
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}

func kphToMetersPerSecond(kph float64) float64 {
	return kph / 3.6
}
