package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/httpserver"
)

// GetCurrentWeather godoc
// @Summary Get current weather
// @Description Fetches current conditions for an allow-listed city from the provider, stores them and returns the stored reading
// @Tags Weather
// @Produce json
// @Param location query string true "City name" Enums(Delhi, Moscow, Paris, New York, Sydney, Riyadh)
// @Success 200 {object} models.Reading "Stored reading"
// @Failure 400 {object} models.ErrorResponse "Invalid location"
// @Failure 500 {object} models.ErrorResponse "Provider or storage failure"
// @Router /api/weather [get]
//
//	curl -X GET "http://localhost:5000/api/weather?location=Delhi"
func (r *routes) handleCurrentWeather(c *fiber.Ctx) error {
	location := c.Query("location")

	reading, err := r.current.GetCurrentWeather(c.Context(), location)
	if err != nil {
		return r.writeError(c, err, map[string]any{"location": location})
	}

	return c.JSON(reading)
}

// GetWeatherHistory godoc
// @Summary Get weather history
// @Description Returns stored readings with from <= date <= to, newest first. A date-only "to" covers the whole day. A location outside the allow-list is ignored.
// @Tags Weather
// @Produce json
// @Param from query string true "Range start, YYYY-MM-DD or ISO 8601" example(2024-01-01)
// @Param to query string true "Range end, YYYY-MM-DD or ISO 8601. A date-only value covers that whole day (through 23:59:59.999999999 UTC)" example(2024-01-07)
// @Param location query string false "City name"
// @Success 200 {array} models.Reading "Readings, most recent first"
// @Failure 400 {object} models.ErrorResponse "Missing, malformed, reversed or too wide date range"
// @Failure 500 {object} models.ErrorResponse "Storage failure"
// @Router /api/weather/history [get]
func (r *routes) handleHistory(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	location := c.Query("location")

	readings, err := r.history.GetHistory(c.Context(), from, to, location)
	if err != nil {
		return r.writeError(c, err, map[string]any{
			"from":     from,
			"to":       to,
			"location": location,
		})
	}

	return c.JSON(readings)
}

func (r *routes) writeError(c *fiber.Ctx, err error, fields map[string]any) error {
	l := r.l.With(map[string]any{
		"request_id": httpserver.RequestID(c),
		"path":       c.Path(),
	})

	var verr *weather.ValidationError
	if errors.As(err, &verr) {
		fields["reason"] = verr.Reason
		l.Debug("rejected request", fields)
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: verr.Message})
	}

	l.Error(err, fields)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: err.Error()})
}
