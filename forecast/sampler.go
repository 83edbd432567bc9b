package forecast

import (
	"errors"
	"fmt"
	"time"

	"weather-dashboard/models"
)

// DefaultInterval is the sampling cadence of the OpenWeatherMap 5 day forecast
const DefaultInterval = 3 * time.Hour

var (
	// ErrInvalidStride is returned when the sampling stride is not positive
	ErrInvalidStride = errors.New("forecast: stride must be positive")
	// ErrInvalidInterval is returned when a sampling interval does not divide a day
	ErrInvalidInterval = errors.New("forecast: interval must evenly divide 24h")
)

// StrideFor returns the number of samples per day for a series sampled every interval
func StrideFor(interval time.Duration) (int, error) {
	day := 24 * time.Hour
	if interval <= 0 || interval > day || day%interval != 0 {
		return 0, fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	return int(day / interval), nil
}

// SampleDaily keeps the points at indices 0, stride, 2*stride and so on.
// The result has ceil(len(series)/stride) points in their original order.
// A missing or irregular sample shifts the time of day that gets picked;
// the series is not resampled.
func SampleDaily(series models.ForecastSeries, stride int) (models.ForecastSeries, error) {
	if stride <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStride, stride)
	}

	sampled := make(models.ForecastSeries, 0, (len(series)+stride-1)/stride)
	for i := 0; i < len(series); i += stride {
		sampled = append(sampled, series[i])
	}
	return sampled, nil
}
