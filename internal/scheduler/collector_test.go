package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeFetcher) GetCurrentWeather(ctx context.Context, location string) (models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, location)
	if _, ok := ctx.Deadline(); !ok {
		return models.Reading{}, errors.New("missing deadline")
	}
	if f.fail[location] {
		return models.Reading{}, errors.New("upstream down")
	}
	return models.Reading{Location: location}, nil
}

func TestCollector_CollectOnce(t *testing.T) {
	fetcher := &fakeFetcher{fail: map[string]bool{"Sydney": true}}
	c := New(models.DefaultLocations, time.Minute, fetcher, logger.NewZapLogger("test-app"))

	stored := c.CollectOnce(context.Background())

	assert.Equal(t, len(models.DefaultLocations)-1, stored)

	got := append([]string(nil), fetcher.calls...)
	want := append([]string(nil), models.DefaultLocations...)
	sort.Strings(got)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestCollector_StartWithoutLocations(t *testing.T) {
	fetcher := &fakeFetcher{}
	c := New(nil, time.Minute, fetcher, logger.NewZapLogger("test-app"))

	require.NoError(t, c.Start())
	c.Stop()

	assert.Empty(t, fetcher.calls)
}

func TestCollector_StartRunsImmediately(t *testing.T) {
	fetcher := &fakeFetcher{}
	c := New(models.Locations{"Paris"}, time.Hour, fetcher, logger.NewZapLogger("test-app"))

	require.NoError(t, c.Start())
	defer c.Stop()

	assert.Eventually(t, func() bool {
		fetcher.mu.Lock()
		defer fetcher.mu.Unlock()
		return len(fetcher.calls) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
