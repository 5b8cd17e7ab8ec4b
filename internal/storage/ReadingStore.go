package storage

import (
	"context"
	"fmt"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

// ReadingStore persists readings and answers range queries.
type ReadingStore interface {
	// Insert stores r as a new record and sets its ID.
	Insert(ctx context.Context, r *models.Reading) error
	// Find returns the readings matching q, most recent first.
	Find(ctx context.Context, q models.HistoryQuery) ([]models.Reading, error)
	Close(ctx context.Context) error
}

// InitReadingStore opens the configured backend.
func InitReadingStore(ctx context.Context, cfg *config.Config, l *logger.Logger) (ReadingStore, error) {
	switch cfg.Storage.Driver {
	case "memory":
		l.Warning("using in-memory reading store, readings are lost on restart")
		return NewMemoryStore(), nil
	case "mongo":
		return NewMongoStore(ctx, cfg.Storage, l)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
