package client

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"weather-dashboard/internal/models"
)

const (
	currentDateLayout = "Monday, January 2, 2006 at 03:04 PM"
	historyDateLayout = "1/2/2006"
)

// CurrentView is a reading shaped for the current-conditions card.
type CurrentView struct {
	Temperature float64
	FeelsLike   float64
	Condition   string
	City        string
	Region      string
	Date        string
	Sunset      string
	Icon        string
	WindSpeed   float64
	Pressure    float64
	Humidity    int
	Summary     string
	Hourly      []HourlyEntry
}

// HourlyEntry is reserved for an hourly strip; the backend does not supply one.
type HourlyEntry struct {
	Time        string
	Temperature float64
	Condition   string
}

// HistoryEntry is one row of the history table.
type HistoryEntry struct {
	Date        string
	Temperature float64
	Condition   string
}

func NewCurrentView(r models.Reading, loc *time.Location) CurrentView {
	return CurrentView{
		Temperature: r.Temperature,
		FeelsLike:   r.FeelsLike,
		Condition:   r.Description,
		City:        r.Location,
		Region:      "",
		Date:        r.Date.In(loc).Format(currentDateLayout),
		Sunset:      "N/A",
		Icon:        r.Icon,
		WindSpeed:   r.WindSpeed,
		Pressure:    r.Pressure,
		Humidity:    r.Humidity,
		Summary:     summary(r),
		Hourly:      []HourlyEntry{},
	}
}

func summary(r models.Reading) string {
	return fmt.Sprintf(
		"Current weather in %s: %s. Temperature: %d°C, feels like %d°C. Wind: %s m/s. Humidity: %d%%.",
		r.Location,
		r.Description,
		roundHalfUp(r.Temperature),
		roundHalfUp(r.FeelsLike),
		strconv.FormatFloat(r.WindSpeed, 'f', -1, 64),
		r.Humidity,
	)
}

// roundHalfUp rounds halves toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func NewHistoryEntries(readings []models.Reading, loc *time.Location) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(readings))
	for _, r := range readings {
		entries = append(entries, HistoryEntry{
			Date:        r.Date.In(loc).Format(historyDateLayout),
			Temperature: r.Temperature,
			Condition:   r.Description,
		})
	}
	return entries
}
