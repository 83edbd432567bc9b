package models

import (
	"time"
)

// ForecastPoint represents a single forecast sample at a specific time
type ForecastPoint struct {
	Timestamp   time.Time `json:"timestamp"`   // time this sample is for
	Temperature float64   `json:"temperature"` // in the units the forecast was requested in
	WeatherMain string    `json:"weatherMain"` // condition group, e.g. "Clear" or "Rain"
	Icon        string    `json:"icon"`        // provider icon code
	Description string    `json:"description"` // short text description
	Humidity    float64   `json:"humidity"`    // percentage
	Pressure    float64   `json:"pressure"`    // in hPa
	WindSpeed   float64   `json:"windSpeed"`   // m/s for metric, mph for imperial
	WindDeg     int       `json:"windDeg"`     // wind direction in degrees
}

// ForecastSeries is an ordered, chronological list of forecast samples.
// Callers own the series; consumers must not modify it.
type ForecastSeries []ForecastPoint

// ForecastData represents a forecast time series returned by a provider
type ForecastData struct {
	Provider string         `json:"provider"` // weather data provider name
	Location string         `json:"location"` // location name
	Units    Units          `json:"units"`    // units the temperatures are expressed in
	Interval time.Duration  `json:"interval"` // spacing between consecutive samples
	Points   ForecastSeries `json:"points"`   // samples in chronological order
	Updated  time.Time      `json:"updated"`  // when this forecast was fetched
}
