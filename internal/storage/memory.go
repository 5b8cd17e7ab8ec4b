package storage

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"weather-dashboard/internal/models"
)

// MemoryStore is a concurrency-safe in-memory ReadingStore.
type MemoryStore struct {
	mu       sync.RWMutex
	readings []models.Reading
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(ctx context.Context, r *models.Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = primitive.NewObjectID()
	s.readings = append(s.readings, *r)
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, q models.HistoryQuery) ([]models.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Reading, 0)
	for _, r := range s.readings {
		if q.Matches(r) {
			result = append(result, r)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})

	return result, nil
}

// Len is the number of stored readings.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
