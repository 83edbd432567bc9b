package datasource

import (
	"context"
	"fmt"

	"weather-dashboard/models"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a Provider with one limiter per endpoint.
// Requests wait for a token; they are never retried.
type RateLimitedProvider struct {
	provider        Provider
	weatherLimiter  *rate.Limiter
	forecastLimiter *rate.Limiter
	name            string
}

// NewRateLimitedProvider creates a provider that paces calls to both endpoints.
// weatherRPS and forecastRPS are the maximum requests per second for each endpoint
// (fractional values allow less than one request per second), burst is the maximum burst size.
func NewRateLimitedProvider(provider Provider, weatherRPS, forecastRPS float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider:        provider,
		weatherLimiter:  rate.NewLimiter(rate.Limit(weatherRPS), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(forecastRPS), burst),
		name:            fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// GetWeather implements WeatherProvider interface with rate limiting
func (r *RateLimitedProvider) GetWeather(ctx context.Context, query models.Query, units models.Units) (models.WeatherData, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.weatherLimiter.Wait(ctx); err != nil {
		return models.WeatherData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.GetWeather(ctx, query, units)
}

// FetchForecast implements ForecastSource interface with rate limiting
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, query models.Query, units models.Units) (models.ForecastData, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return models.ForecastData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, query, units)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

// Verify that the rate limited provider implements the required interfaces
var _ Provider = (*RateLimitedProvider)(nil)
