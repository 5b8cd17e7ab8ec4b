package models

import "time"

// HistoryQuery selects readings with From <= date <= To, optionally for one location.
type HistoryQuery struct {
	From time.Time
	To   time.Time
	// Location is empty when no location filter applies.
	Location string
}

// Matches reports whether r falls inside the query.
func (q HistoryQuery) Matches(r Reading) bool {
	if r.Date.Before(q.From) || r.Date.After(q.To) {
		return false
	}
	return q.Location == "" || r.Location == q.Location
}
