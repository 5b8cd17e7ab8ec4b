package weather

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/daterange"
	"weather-dashboard/pkg/logger"
)

// HistoryService answers date-range queries over stored readings.
type HistoryService struct {
	store     ReadingFinder
	locations models.Locations
	maxDays   int
	l         *logger.Logger
}

// NewHistoryService builds the service. maxDays <= 0 selects daterange.DefaultMaxSpanDays.
func NewHistoryService(store ReadingFinder, locations models.Locations, maxDays int, l *logger.Logger) *HistoryService {
	if maxDays <= 0 {
		maxDays = daterange.DefaultMaxSpanDays
	}

	return &HistoryService{
		store:     store,
		locations: locations,
		maxDays:   maxDays,
		l:         l,
	}
}

// GetHistory returns stored readings with from <= date <= to, newest first.
// A location outside the allow-list is ignored rather than rejected.
func (s *HistoryService) GetHistory(ctx context.Context, from, to, location string) ([]models.Reading, error) {
	q, err := s.buildQuery(from, to, location)
	if err != nil {
		return nil, err
	}

	readings, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, &StorageError{Op: OpLoad, Err: errors.WithStack(err)}
	}

	if readings == nil {
		readings = []models.Reading{}
	}

	s.l.Debug("loaded weather history", map[string]any{
		"from":     q.From,
		"to":       q.To,
		"location": q.Location,
		"count":    len(readings),
	})

	return readings, nil
}

func (s *HistoryService) buildQuery(from, to, location string) (models.HistoryQuery, error) {
	if from == "" || to == "" {
		return models.HistoryQuery{}, &ValidationError{
			Reason:  ReasonDatesRequired,
			Message: "Both from and to dates are required",
		}
	}

	fromDate, err := daterange.Parse(from)
	if err != nil {
		return models.HistoryQuery{}, invalidDateFormat()
	}
	toDate, err := daterange.Parse(to)
	if err != nil {
		return models.HistoryQuery{}, invalidDateFormat()
	}

	switch err := daterange.Check(fromDate.Time, toDate.Time, s.maxDays); {
	case errors.Is(err, daterange.ErrRangeReversed):
		return models.HistoryQuery{}, &ValidationError{
			Reason:  ReasonRangeReversed,
			Message: "From date must not be after To date",
		}
	case errors.Is(err, daterange.ErrRangeTooLarge):
		return models.HistoryQuery{}, &ValidationError{
			Reason:  ReasonRangeTooLarge,
			Message: fmt.Sprintf("Maximum date range is %d days", s.maxDays),
		}
	}

	q := models.HistoryQuery{
		From: fromDate.Time,
		To:   daterange.UpperBound(toDate),
	}

	if location != "" {
		if s.locations.Contains(location) {
			q.Location = location
		} else {
			s.l.Debug("ignoring location filter outside the allow-list", map[string]any{"location": location})
		}
	}

	return q, nil
}

func invalidDateFormat() error {
	return &ValidationError{
		Reason:  ReasonInvalidDateFormat,
		Message: "Invalid date format",
	}
}
