package models

import (
	"time"
)

// WeatherData represents the current conditions reported by a provider
type WeatherData struct {
	Provider    string    `json:"provider"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Description string    `json:"description"`
	Main        string    `json:"main"`
	Icon        string    `json:"icon"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	WindDeg     int       `json:"windDeg"`
	Pressure    float64   `json:"pressure"`
	Units       Units     `json:"units"`
	Timestamp   time.Time `json:"timestamp"`
}
