package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"weather-dashboard/internal/models"
)

// Fetcher is the backend the controller reads from.
type Fetcher interface {
	FetchCurrent(ctx context.Context, location string) (models.Reading, error)
	FetchHistory(ctx context.Context, from, to, location string) ([]models.Reading, error)
}

// HTTPClient is the subset of *http.Client the API client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx response from the backend. Message is the server's
// error text and may be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error (status %d)", e.Status)
	}
	return fmt.Sprintf("HTTP error (status %d): %s", e.Status, e.Message)
}

// APIClient talks to the dashboard backend over HTTP.
type APIClient struct {
	baseURL    string
	httpClient HTTPClient
}

func NewAPIClient(baseURL string, httpClient HTTPClient) *APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (a *APIClient) FetchCurrent(ctx context.Context, location string) (models.Reading, error) {
	var reading models.Reading
	err := a.get(ctx, "/api/weather", url.Values{"location": {location}}, &reading)
	return reading, err
}

func (a *APIClient) FetchHistory(ctx context.Context, from, to, location string) ([]models.Reading, error) {
	params := url.Values{"from": {from}, "to": {to}}
	if location != "" {
		params.Set("location", location)
	}

	readings := make([]models.Reading, 0)
	if err := a.get(ctx, "/api/weather/history", params, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (a *APIClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e models.ErrorResponse
		_ = json.Unmarshal(body, &e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
