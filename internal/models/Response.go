package models

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid location. Available locations: Delhi, Moscow, Paris, New York, Sydney, Riyadh"`
}
