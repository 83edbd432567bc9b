package forecast

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/models"
)

func seriesAt(start time.Time, step time.Duration, temps ...float64) models.ForecastSeries {
	series := make(models.ForecastSeries, 0, len(temps))
	for i, temp := range temps {
		series = append(series, models.ForecastPoint{
			Timestamp:   start.Add(time.Duration(i) * step),
			Temperature: temp,
		})
	}
	return series
}

func TestComputeExtremaTodayPoints(t *testing.T) {
	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	series := seriesAt(start, 3*time.Hour, 10, 14, 9, 17)

	calc := ExtremaCalculator{Location: time.UTC}
	ext, ok := calc.Compute(series, DayOf(start))

	require.True(t, ok)
	assert.Equal(t, 9.0, ext.Min)
	assert.Equal(t, 17.0, ext.Max)
	assert.Equal(t, 4, ext.Count)
}

func TestComputeExtremaIgnoresOtherDays(t *testing.T) {
	start := time.Date(2024, time.March, 10, 18, 0, 0, 0, time.UTC)
	// 18:00, 21:00 on the 10th, then 00:00 and 03:00 on the 11th
	series := seriesAt(start, 3*time.Hour, 5, 6, -20, 40)

	ext, ok := ExtremaCalculator{Location: time.UTC}.Compute(series, DayOf(start))

	require.True(t, ok)
	assert.Equal(t, 5.0, ext.Min)
	assert.Equal(t, 6.0, ext.Max)
	assert.Equal(t, 2, ext.Count)
}

func TestComputeExtremaNoData(t *testing.T) {
	calc := ExtremaCalculator{Location: time.UTC}
	day := CalendarDay{Year: 2024, Month: time.March, Day: 10}

	t.Run("empty series", func(t *testing.T) {
		ext, ok := calc.Compute(nil, day)
		assert.False(t, ok)
		assert.Equal(t, Extrema{}, ext)
	})

	t.Run("no matching day", func(t *testing.T) {
		series := seriesAt(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), 3*time.Hour, 1, 2, 3)
		ext, ok := calc.Compute(series, day)
		assert.False(t, ok)
		assert.Equal(t, 0, ext.Count)
	})
}

func TestComputeExtremaMatchModes(t *testing.T) {
	day := CalendarDay{Year: 2024, Month: time.March, Day: 10}
	series := models.ForecastSeries{
		{Timestamp: time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC), Temperature: 12},
		{Timestamp: time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC), Temperature: 30},
	}

	full, ok := ExtremaCalculator{Location: time.UTC, Mode: MatchFullDate}.Compute(series, day)
	require.True(t, ok)
	assert.Equal(t, 12.0, full.Max)
	assert.Equal(t, 1, full.Count)

	legacy, ok := ExtremaCalculator{Location: time.UTC, Mode: MatchDayOfMonth}.Compute(series, day)
	require.True(t, ok)
	assert.Equal(t, 30.0, legacy.Max)
	assert.Equal(t, 2, legacy.Count)
}

func TestComputeExtremaUsesCalculatorLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 9th is 05:00 on the 10th in Tokyo
	series := seriesAt(time.Date(2024, time.March, 9, 20, 0, 0, 0, time.UTC), time.Hour, 3)
	day := CalendarDay{Year: 2024, Month: time.March, Day: 10}

	_, ok := ExtremaCalculator{Location: time.UTC}.Compute(series, day)
	assert.False(t, ok)

	ext, ok := ExtremaCalculator{Location: tokyo}.Compute(series, day)
	require.True(t, ok)
	assert.Equal(t, 3.0, ext.Min)
}

func TestComputeExtremaDefaultsToLocalTime(t *testing.T) {
	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local)
	series := seriesAt(start, 3*time.Hour, 4, 8, 2)

	ext, ok := ComputeExtrema(series, DayOf(start))

	require.True(t, ok)
	assert.Equal(t, 2.0, ext.Min)
	assert.Equal(t, 8.0, ext.Max)
}

func TestComputeExtremaBoundsEveryMatchedTemperature(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	calc := ExtremaCalculator{Location: time.UTC}
	start := time.Date(2024, time.January, 30, 0, 0, 0, 0, time.UTC)

	for run := 0; run < 200; run++ {
		n := 1 + rng.Intn(40)
		temps := make([]float64, n)
		for i := range temps {
			temps[i] = rng.Float64()*80 - 40
		}
		series := seriesAt(start, 3*time.Hour, temps...)
		day := DayOf(series[rng.Intn(n)].Timestamp)

		ext, ok := calc.Compute(series, day)
		require.True(t, ok)

		matched := 0
		for _, p := range series {
			if DayOf(p.Timestamp) != day {
				continue
			}
			matched++
			assert.LessOrEqual(t, ext.Min, p.Temperature)
			assert.GreaterOrEqual(t, ext.Max, p.Temperature)
		}
		assert.Equal(t, matched, ext.Count)
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, CalendarDay{2024, time.March, 9}, Today(time.UTC, now))
	assert.Equal(t, CalendarDay{2024, time.March, 10}, Today(time.FixedZone("CET", 3600), now))
	assert.Equal(t, "2024-03-09", Today(time.UTC, now).String())
}

func TestParseMatchMode(t *testing.T) {
	mode, ok := ParseMatchMode("")
	assert.True(t, ok)
	assert.Equal(t, MatchFullDate, mode)

	mode, ok = ParseMatchMode("day-of-month")
	assert.True(t, ok)
	assert.Equal(t, MatchDayOfMonth, mode)

	_, ok = ParseMatchMode("weekly")
	assert.False(t, ok)
}
