package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
)

// CurrentService fetches live conditions for an allow-listed city and records them.
type CurrentService struct {
	gateway   repositories.WeatherRepository
	store     ReadingWriter
	publisher ReadingPublisher
	locations models.Locations
	validate  *validator.Validate
	l         *logger.Logger
	now       func() time.Time
}

// NewCurrentService builds the service. A nil publisher disables reading events.
func NewCurrentService(
	gateway repositories.WeatherRepository,
	store ReadingWriter,
	publisher ReadingPublisher,
	locations models.Locations,
	l *logger.Logger,
) *CurrentService {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &CurrentService{
		gateway:   gateway,
		store:     store,
		publisher: publisher,
		locations: locations,
		validate:  models.NewReadingValidator(locations),
		l:         l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Locations returns the allow-list the service accepts.
func (s *CurrentService) Locations() models.Locations {
	return s.locations
}

// GetCurrentWeather fetches, stores and returns the current reading for location.
func (s *CurrentService) GetCurrentWeather(ctx context.Context, location string) (models.Reading, error) {
	if !s.locations.Contains(location) {
		return models.Reading{}, &ValidationError{
			Reason:  ReasonInvalidLocation,
			Message: fmt.Sprintf("Invalid location. Available locations: %s", s.locations),
		}
	}

	s.l.Debug("fetching current weather", map[string]any{"location": location, "provider": s.gateway.Name()})

	obs, err := s.gateway.FetchCurrent(ctx, location)
	if err != nil {
		return models.Reading{}, &UpstreamError{Err: errors.WithStack(err)}
	}

	reading := obs.ToReading(s.now())
	if err := s.validate.Struct(reading); err != nil {
		s.l.Warning("provider returned an unusable reading", map[string]any{
			"location": location,
			"resolved": obs.Location,
			"err":      err.Error(),
		})
		return models.Reading{}, &UpstreamError{Err: errors.Wrap(err, "malformed upstream response")}
	}

	if err := s.store.Insert(ctx, &reading); err != nil {
		return models.Reading{}, &StorageError{Op: OpSave, Err: errors.WithStack(err)}
	}

	if err := s.publisher.PublishReading(ctx, reading); err != nil {
		s.l.Warning("failed to publish reading event", map[string]any{
			"id":  reading.ID.Hex(),
			"err": err.Error(),
		})
	}

	s.l.Info("stored current weather", map[string]any{
		"id":          reading.ID.Hex(),
		"location":    reading.Location,
		"temperature": reading.Temperature,
	})

	return reading, nil
}
