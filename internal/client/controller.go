package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"weather-dashboard/pkg/daterange"
)

const (
	fallbackCurrentError = "Failed to fetch weather data"
	fallbackHistoryError = "Failed to fetch history data"
)

// StreamStatus tracks one request stream.
type StreamStatus struct {
	Pending bool
	Error   string
}

// State is a snapshot of everything the dashboard renders.
type State struct {
	Location      string
	Current       *CurrentView
	History       []HistoryEntry
	CurrentStatus StreamStatus
	HistoryStatus StreamStatus
	// DateError is set when the last history request failed local validation.
	DateError string
}

// Loading reports whether either stream has a request in flight.
func (s State) Loading() bool {
	return s.CurrentStatus.Pending || s.HistoryStatus.Pending
}

// Error returns the current stream's error, else the history stream's.
func (s State) Error() string {
	if s.CurrentStatus.Error != "" {
		return s.CurrentStatus.Error
	}
	return s.HistoryStatus.Error
}

// Controller owns dashboard state and issues backend requests. Each stream
// keeps only the result of its most recently dispatched request.
type Controller struct {
	fetcher  Fetcher
	tz       *time.Location
	maxDays  int
	onChange func(State)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	state      State
	currentSeq uint64
	historySeq uint64

	version uint64

	notifyMu  sync.Mutex
	delivered uint64
}

func NewController(fetcher Fetcher, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		fetcher: fetcher,
		tz:      time.Local,
		maxDays: daterange.DefaultMaxSpanDays,
		ctx:     ctx,
		cancel:  cancel,
		state:   State{History: []HistoryEntry{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SelectLocation records the chosen city and fetches its current weather.
func (c *Controller) SelectLocation(location string) {
	c.mu.Lock()
	c.state.Location = location
	c.currentSeq++
	seq := c.currentSeq
	c.state.CurrentStatus = StreamStatus{Pending: true}
	snap, version := c.commitLocked()
	c.mu.Unlock()

	c.notify(snap, version)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		reading, err := c.fetcher.FetchCurrent(c.ctx, location)

		c.mu.Lock()
		if seq != c.currentSeq {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.state.CurrentStatus = StreamStatus{Error: errorMessage(err, fallbackCurrentError)}
		} else {
			view := NewCurrentView(reading, c.tz)
			c.state.Current = &view
			c.state.CurrentStatus = StreamStatus{}
		}
		snap, version := c.commitLocked()
		c.mu.Unlock()

		c.notify(snap, version)
	}()
}

// RequestHistory validates the range and, if it passes, fetches history for
// the selected location. It reports whether a request was dispatched.
func (c *Controller) RequestHistory(from, to string) bool {
	c.mu.Lock()
	if msg := c.validateRange(from, to); msg != "" {
		c.state.DateError = msg
		snap, version := c.commitLocked()
		c.mu.Unlock()
		c.notify(snap, version)
		return false
	}

	location := c.state.Location
	c.state.DateError = ""
	c.historySeq++
	seq := c.historySeq
	c.state.HistoryStatus = StreamStatus{Pending: true}
	snap, version := c.commitLocked()
	c.mu.Unlock()

	c.notify(snap, version)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		readings, err := c.fetcher.FetchHistory(c.ctx, from, to, location)

		c.mu.Lock()
		if seq != c.historySeq {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.state.HistoryStatus = StreamStatus{Error: errorMessage(err, fallbackHistoryError)}
		} else {
			c.state.History = NewHistoryEntries(readings, c.tz)
			c.state.HistoryStatus = StreamStatus{}
		}
		snap, version := c.commitLocked()
		c.mu.Unlock()

		c.notify(snap, version)
	}()

	return true
}

// ClearError clears both stream errors.
func (c *Controller) ClearError() {
	c.mu.Lock()
	c.state.CurrentStatus.Error = ""
	c.state.HistoryStatus.Error = ""
	snap, version := c.commitLocked()
	c.mu.Unlock()

	c.notify(snap, version)
}

// Wait blocks until every dispatched request has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight requests and waits for them to finish.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) validateRange(from, to string) string {
	if from == "" || to == "" {
		return "Both dates are required."
	}

	fromDate, err := daterange.Parse(from)
	if err != nil {
		return "Invalid date format."
	}
	toDate, err := daterange.Parse(to)
	if err != nil {
		return "Invalid date format."
	}

	switch err := daterange.Check(fromDate.Time, toDate.Time, c.maxDays); {
	case errors.Is(err, daterange.ErrRangeReversed):
		return "From date must be before To date."
	case errors.Is(err, daterange.ErrRangeTooLarge):
		return fmt.Sprintf("Date range must not exceed %d days.", c.maxDays)
	}
	return ""
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	if s.Current != nil {
		view := *s.Current
		s.Current = &view
	}
	s.History = append([]HistoryEntry{}, c.state.History...)
	return s
}

// commitLocked stamps the state after a change and returns a snapshot of it.
func (c *Controller) commitLocked() (State, uint64) {
	c.version++
	return c.snapshotLocked(), c.version
}

// notify delivers s unless a newer snapshot was already delivered.
func (c *Controller) notify(s State, version uint64) {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if version <= c.delivered {
		return
	}
	c.delivered = version
	c.onChange(s)
}

func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
