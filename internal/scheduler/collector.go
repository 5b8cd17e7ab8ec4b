package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

const collectTimeout = 30 * time.Second

// CurrentWeatherFetcher fetches and stores the current reading for one city.
type CurrentWeatherFetcher interface {
	GetCurrentWeather(ctx context.Context, location string) (models.Reading, error)
}

// Collector periodically records current weather for every configured city.
type Collector struct {
	scheduler *gocron.Scheduler
	service   CurrentWeatherFetcher
	locations models.Locations
	interval  time.Duration
	l         *logger.Logger
}

func New(locations models.Locations, interval time.Duration, service CurrentWeatherFetcher, l *logger.Logger) *Collector {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	return &Collector{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
		l:         l,
	}
}

// Start schedules the collection job, running it once immediately.
func (c *Collector) Start() error {
	if len(c.locations) == 0 {
		c.l.Warning("collector: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(c.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := c.scheduler.Every(minutes).Minutes().Do(func() {
		c.CollectOnce(context.Background())
	})
	if err != nil {
		return err
	}

	c.scheduler.StartAsync()
	c.l.Info("collector started", map[string]any{"every_minutes": minutes, "locations": len(c.locations)})
	return nil
}

// CollectOnce fetches every location concurrently and returns the number stored.
func (c *Collector) CollectOnce(ctx context.Context) int {
	c.l.Debug("collector: running weather fetch job")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		stored int
	)

	for _, loc := range c.locations {
		wg.Add(1)
		go func(loc string) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, collectTimeout)
			defer cancel()

			if _, err := c.service.GetCurrentWeather(ctx, loc); err != nil {
				c.l.Warning("collector: fetch failed", map[string]any{"location": loc, "err": err.Error()})
				return
			}

			mu.Lock()
			stored++
			mu.Unlock()
		}(loc)
	}
	wg.Wait()

	c.l.Info("collector: completed weather fetch job", map[string]any{
		"stored": stored,
		"failed": len(c.locations) - stored,
	})

	return stored
}

// Stop stops the scheduler and cancels any future jobs.
func (c *Collector) Stop() {
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
}
