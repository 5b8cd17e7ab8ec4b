package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReading() Reading {
	return Reading{
		Location:    "Delhi",
		Temperature: 0,
		FeelsLike:   -2.5,
		Humidity:    40,
		Description: "Clear",
		Icon:        "01d",
		Date:        time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
		WindSpeed:   3.1,
		Pressure:    1008,
	}
}

func TestLocations(t *testing.T) {
	assert.True(t, DefaultLocations.Contains("New York"))
	assert.False(t, DefaultLocations.Contains("new york"))
	assert.False(t, DefaultLocations.Contains("Atlantis"))
	assert.Equal(t, "Delhi, Moscow, Paris, New York, Sydney, Riyadh", DefaultLocations.String())
}

func TestReadingValidator_Valid(t *testing.T) {
	v := NewReadingValidator(DefaultLocations)

	require.NoError(t, v.Struct(validReading()))
}

func TestReadingValidator_Rejects(t *testing.T) {
	v := NewReadingValidator(DefaultLocations)

	cases := map[string]func(r *Reading){
		"location outside allow-list": func(r *Reading) { r.Location = "Moskva" },
		"humidity above 100":          func(r *Reading) { r.Humidity = 101 },
		"negative humidity":           func(r *Reading) { r.Humidity = -1 },
		"NaN temperature":             func(r *Reading) { r.Temperature = math.NaN() },
		"infinite pressure":           func(r *Reading) { r.Pressure = math.Inf(1) },
		"missing description":         func(r *Reading) { r.Description = "" },
		"missing icon":                func(r *Reading) { r.Icon = "" },
		"zero date":                   func(r *Reading) { r.Date = time.Time{} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := validReading()
			mutate(&r)
			assert.Error(t, v.Struct(r))
		})
	}
}

func TestObservation_ToReading(t *testing.T) {
	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	obs := Observation{
		Location:    "Paris",
		Temperature: 7.5,
		FeelsLike:   5,
		Humidity:    81,
		Description: "Clouds",
		Icon:        "04n",
		WindSpeed:   4.6,
		Pressure:    1021,
	}

	r := obs.ToReading(at)

	assert.Equal(t, "Paris", r.Location)
	assert.Equal(t, at, r.Date)
	assert.False(t, r.IsForecast)
	assert.Nil(t, r.ForecastTime)
	assert.True(t, r.ID.IsZero())
}

func TestHistoryQuery_Matches(t *testing.T) {
	q := HistoryQuery{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	}

	r := validReading()
	assert.True(t, q.Matches(r))

	r.Date = q.From
	assert.True(t, q.Matches(r), "lower bound is inclusive")
	r.Date = q.To
	assert.True(t, q.Matches(r), "upper bound is inclusive")
	r.Date = q.To.Add(time.Second)
	assert.False(t, q.Matches(r))

	q.Location = "Moscow"
	r = validReading()
	assert.False(t, q.Matches(r))
	r.Location = "Moscow"
	assert.True(t, q.Matches(r))
}
