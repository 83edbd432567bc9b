package datasource

import (
	"context"

	"weather-dashboard/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current conditions for a city or position
	GetWeather(ctx context.Context, query models.Query, units models.Units) (models.WeatherData, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the forecast time series for a city or position
	FetchForecast(ctx context.Context, query models.Query, units models.Units) (models.ForecastData, error)

	// Name returns the source's name
	Name() string
}

// Provider serves both current conditions and forecasts
type Provider interface {
	WeatherProvider
	ForecastSource
}
