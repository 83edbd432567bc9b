package dashboard

import (
	"context"
	"sync"
	"time"

	"weather-dashboard/models"
)

type fakeProvider struct {
	mu            sync.Mutex
	weather       models.WeatherData
	forecast      models.ForecastData
	weatherErr    error
	forecastErr   error
	weatherCalls  []models.Query
	forecastCalls []models.Query
}

func (f *fakeProvider) Name() string { return "Fake" }

func (f *fakeProvider) GetWeather(ctx context.Context, query models.Query, units models.Units) (models.WeatherData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.weatherCalls = append(f.weatherCalls, query)
	if f.weatherErr != nil {
		return models.WeatherData{}, f.weatherErr
	}
	data := f.weather
	data.Units = units
	return data, nil
}

func (f *fakeProvider) FetchForecast(ctx context.Context, query models.Query, units models.Units) (models.ForecastData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forecastCalls = append(f.forecastCalls, query)
	if f.forecastErr != nil {
		return models.ForecastData{}, f.forecastErr
	}
	data := f.forecast
	data.Units = units
	return data, nil
}

// fiveDaySeries returns 40 samples three hours apart starting at start
func fiveDaySeries(start time.Time) models.ForecastSeries {
	series := make(models.ForecastSeries, 40)
	icons := []string{"01d", "02d", "", "10n", "bogus"}
	for i := range series {
		series[i] = models.ForecastPoint{
			Timestamp:   start.Add(time.Duration(i) * 3 * time.Hour),
			Temperature: float64(10 + i%8),
			WeatherMain: "Clouds",
			Icon:        icons[(i/8)%len(icons)],
		}
	}
	return series
}

type recordingDisplay struct {
	mu     sync.Mutex
	views  []*View
	errors []*QueryError
	shown  chan struct{}
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{shown: make(chan struct{}, 16)}
}

func (d *recordingDisplay) Show(view *View) {
	d.mu.Lock()
	d.views = append(d.views, view)
	d.mu.Unlock()
	d.shown <- struct{}{}
}

func (d *recordingDisplay) ShowError(err *QueryError) {
	d.mu.Lock()
	d.errors = append(d.errors, err)
	d.mu.Unlock()
	d.shown <- struct{}{}
}

func (d *recordingDisplay) snapshot() ([]*View, []*QueryError) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*View(nil), d.views...), append([]*QueryError(nil), d.errors...)
}

type querierFunc func(ctx context.Context, query models.Query, units models.Units) (*View, error)

func (f querierFunc) Query(ctx context.Context, query models.Query, units models.Units) (*View, error) {
	return f(ctx, query, units)
}
