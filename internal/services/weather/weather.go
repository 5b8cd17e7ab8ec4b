package weather

import (
	"context"

	"weather-dashboard/internal/models"
)

// ReadingWriter is the part of the reading store the current-weather path needs.
type ReadingWriter interface {
	Insert(ctx context.Context, r *models.Reading) error
}

// ReadingFinder is the part of the reading store the history path needs.
type ReadingFinder interface {
	Find(ctx context.Context, q models.HistoryQuery) ([]models.Reading, error)
}

// ReadingPublisher announces persisted readings to other systems.
type ReadingPublisher interface {
	PublishReading(ctx context.Context, r models.Reading) error
}

type nopPublisher struct{}

func (nopPublisher) PublishReading(context.Context, models.Reading) error { return nil }
