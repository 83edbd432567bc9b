package dashboard

import (
	"time"

	"weather-dashboard/forecast"
	"weather-dashboard/models"
)

// View is everything a client needs to render the dashboard
type View struct {
	QueryID     string            `json:"queryId"`
	Query       models.Query      `json:"query"`
	Units       models.Units      `json:"units"`
	City        string            `json:"city"`
	Description string            `json:"description"`
	Temperature string            `json:"temperature"`
	Humidity    string            `json:"humidity"`
	Wind        string            `json:"wind"`
	Pressure    string            `json:"pressure"`
	MinMax      string            `json:"minMax"`
	Today       *forecast.Extrema `json:"today"` // nil when there is no forecast data for today
	Theme       string            `json:"theme"`
	Icon        string            `json:"icon"`
	IconURL     string            `json:"iconUrl"`
	Forecast    []DayView         `json:"forecast"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// DayView is one entry of the daily forecast strip
type DayView struct {
	Date            time.Time `json:"date"`
	Weekday         string    `json:"weekday"`
	Icon            string    `json:"icon"`
	IconURL         string    `json:"iconUrl"`
	FallbackIconURL string    `json:"fallbackIconUrl"`
	Temperature     string    `json:"temperature"`
}
