// Package dashboard runs weather queries end to end and keeps per-client state.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"weather-dashboard/datasource"
	"weather-dashboard/forecast"
	"weather-dashboard/models"
	"weather-dashboard/presentation"
)

// Querier runs one dashboard query
type Querier interface {
	Query(ctx context.Context, query models.Query, units models.Units) (*View, error)
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	// Interval is used when the provider does not report its sampling interval
	Interval time.Duration
	// Location decides what "today" is. Nil means time.Local.
	Location  *time.Location
	MatchMode forecast.MatchMode
	Icons     presentation.IconResolver
	// Now is used in tests
	Now func() time.Time
}

// Service fetches current conditions and the forecast and builds a View
type Service struct {
	provider datasource.Provider
	interval time.Duration
	extrema  forecast.ExtremaCalculator
	icons    presentation.IconResolver
	now      func() time.Time
}

// NewService creates a query service on top of a provider
func NewService(provider datasource.Provider, opts Options) *Service {
	if opts.Interval <= 0 {
		opts.Interval = forecast.DefaultInterval
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Icons.BaseURL == "" || opts.Icons.Fallback == "" {
		opts.Icons = presentation.NewIconResolver(opts.Icons.BaseURL, opts.Icons.Fallback)
	}

	return &Service{
		provider: provider,
		interval: opts.Interval,
		extrema:  forecast.ExtremaCalculator{Location: opts.Location, Mode: opts.MatchMode},
		icons:    opts.Icons,
		now:      opts.Now,
	}
}

// Query fetches current conditions, then the forecast, and derives the view.
// Failures are returned as *QueryError; nothing is computed after a failed fetch.
func (s *Service) Query(ctx context.Context, query models.Query, units models.Units) (*View, error) {
	if units == "" {
		units = models.Metric
	}
	id := uuid.NewString()
	started := time.Now()

	current, err := s.provider.GetWeather(ctx, query, units)
	if err != nil {
		log.Printf("[%s] Error fetching weather for %s from %s: %v", id, query, s.provider.Name(), err)
		return nil, &QueryError{Query: query, Err: err}
	}

	fc, err := s.provider.FetchForecast(ctx, query, units)
	if err != nil {
		log.Printf("[%s] Error fetching forecast for %s from %s: %v", id, query, s.provider.Name(), err)
		return nil, &QueryError{Query: query, Err: err}
	}

	view, err := s.build(current, fc)
	if err != nil {
		log.Printf("[%s] Error building dashboard for %s: %v", id, query, err)
		return nil, &QueryError{Query: query, Err: err}
	}
	view.QueryID = id
	view.Query = query

	log.Printf("[%s] Built dashboard for %s (%s, %d forecast points) in %s",
		id, query, units, len(fc.Points), time.Since(started).Round(time.Millisecond))
	return view, nil
}

func (s *Service) build(current models.WeatherData, fc models.ForecastData) (*View, error) {
	units := current.Units
	if units == "" {
		units = models.Metric
	}
	if fc.Units != "" && fc.Units != units {
		return nil, fmt.Errorf("forecast units %s do not match current units %s", fc.Units, units)
	}

	interval := fc.Interval
	if interval <= 0 {
		interval = s.interval
	}
	stride, err := forecast.StrideFor(interval)
	if err != nil {
		return nil, err
	}
	daily, err := forecast.SampleDaily(fc.Points, stride)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today, ok := s.extrema.Compute(fc.Points, forecast.Today(s.extrema.Location, now))

	view := &View{
		Units:       units,
		City:        presentation.CityLabel(current.City, current.Country),
		Description: current.Description,
		Temperature: presentation.Temperature(current.Temperature, units),
		Humidity:    presentation.Humidity(current.Humidity),
		Wind:        presentation.Wind(current.WindSpeed, units),
		Pressure:    presentation.Pressure(current.Pressure),
		MinMax:      presentation.MinMax(today, ok),
		Theme:       presentation.Theme(current.Main),
		Icon:        s.icons.Code(current.Icon),
		IconURL:     s.icons.URL(current.Icon),
		Forecast:    make([]DayView, 0, len(daily)),
		GeneratedAt: now,
	}
	if ok {
		view.Today = &today
	}

	for _, p := range daily {
		local := p.Timestamp.In(s.extrema.Location)
		view.Forecast = append(view.Forecast, DayView{
			Date:            local,
			Weekday:         presentation.Weekday(local),
			Icon:            s.icons.Code(p.Icon),
			IconURL:         s.icons.URL(p.Icon),
			FallbackIconURL: s.icons.FallbackURL(),
			Temperature:     presentation.Temperature(p.Temperature, units),
		})
	}

	return view, nil
}
