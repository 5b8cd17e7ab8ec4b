package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading is a single persisted weather observation for one location.
type Reading struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty" swaggertype:"string" example:"65a1f0c2e4b0a1b2c3d4e5f6"`
	Location     string             `json:"location" bson:"location" validate:"required,allowed_location" example:"Delhi"`
	Temperature  float64            `json:"temperature" bson:"temperature" validate:"finite" example:"32"`
	FeelsLike    float64            `json:"feels_like" bson:"feels_like" validate:"finite" example:"35"`
	Humidity     int                `json:"humidity" bson:"humidity" validate:"min=0,max=100" example:"40"`
	Description  string             `json:"description" bson:"description" validate:"required" example:"Clear"`
	Icon         string             `json:"icon" bson:"icon" validate:"required" example:"01d"`
	Date         time.Time          `json:"date" bson:"date" validate:"required"`
	WindSpeed    float64            `json:"windSpeed" bson:"windSpeed" validate:"finite" example:"3.1"`
	Pressure     float64            `json:"pressure" bson:"pressure" validate:"finite" example:"1008"`
	IsForecast   bool               `json:"isForecast" bson:"isForecast"`
	ForecastTime *time.Time         `json:"forecastTime,omitempty" bson:"forecastTime,omitempty"`
}

// Observation is the gateway-normalised provider payload, not yet dated or stored.
type Observation struct {
	// Location is the place name the provider resolved the query to.
	Location    string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	Description string
	Icon        string
	WindSpeed   float64
	Pressure    float64
}

// ToReading stamps the observation with the time it was taken.
func (o Observation) ToReading(at time.Time) Reading {
	return Reading{
		Location:    o.Location,
		Temperature: o.Temperature,
		FeelsLike:   o.FeelsLike,
		Humidity:    o.Humidity,
		Description: o.Description,
		Icon:        o.Icon,
		Date:        at,
		WindSpeed:   o.WindSpeed,
		Pressure:    o.Pressure,
	}
}
