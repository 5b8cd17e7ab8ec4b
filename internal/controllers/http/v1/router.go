package http

import (
	"context"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

// CurrentWeatherService is what the current-weather route needs.
type CurrentWeatherService interface {
	GetCurrentWeather(ctx context.Context, location string) (models.Reading, error)
}

// HistoryService is what the history route needs.
type HistoryService interface {
	GetHistory(ctx context.Context, from, to, location string) ([]models.Reading, error)
}

type routes struct {
	current CurrentWeatherService
	history HistoryService
	l       *logger.Logger
}

func NewRouter(
	app *fiber.App,
	current CurrentWeatherService,
	history HistoryService,
	l *logger.Logger,
) {
	r := &routes{
		current: current,
		history: history,
		l:       l,
	}

	// Swagger documentation
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		swaggerData, err := os.ReadFile("docs/swagger.json")
		if err != nil {
			return c.Status(fiber.ErrInternalServerError.Code).JSON(models.ErrorResponse{Error: "Failed to read Swagger documentation"})
		}

		c.Set("Content-Type", "application/json")
		return c.Send(swaggerData)
	})

	app.Get("/swagger/*", swagger.New(swagger.Config{
		URL:         "/swagger/doc.json",
		DeepLinking: true,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend is working")
	})

	// API routes
	api := app.Group("/api")
	api.Get("/weather", r.handleCurrentWeather)
	api.Get("/weather/history", r.handleHistory)
}
