// Package forecast derives summary views from a provider forecast series:
// the temperature range of a single calendar day and a one-entry-per-day sample.
package forecast

import (
	"time"

	"weather-dashboard/models"
)

// CalendarDay is a date without a time of day
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar day of t in t's own location
func DayOf(t time.Time) CalendarDay {
	y, m, d := t.Date()
	return CalendarDay{Year: y, Month: m, Day: d}
}

// Today returns the calendar day of now as seen from loc
func Today(loc *time.Location, now time.Time) CalendarDay {
	if loc == nil {
		loc = time.Local
	}
	return DayOf(now.In(loc))
}

func (d CalendarDay) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// MatchMode controls how a sample is assigned to a calendar day
type MatchMode int

const (
	// MatchFullDate compares year, month and day
	MatchFullDate MatchMode = iota
	// MatchDayOfMonth compares only the day number. Samples from another
	// month with the same day number are counted as well.
	MatchDayOfMonth
)

// ParseMatchMode parses "date" or "day-of-month". Empty selects MatchFullDate.
func ParseMatchMode(s string) (MatchMode, bool) {
	switch s {
	case "", "date", "full-date":
		return MatchFullDate, true
	case "day-of-month", "legacy":
		return MatchDayOfMonth, true
	}
	return MatchFullDate, false
}

// Extrema is the temperature range of the samples that fell on a day
type Extrema struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"` // number of samples the range was taken over
}

// ExtremaCalculator finds the temperature range for one calendar day
type ExtremaCalculator struct {
	// Location the sample timestamps are converted to before matching.
	// Nil means time.Local.
	Location *time.Location
	Mode     MatchMode
}

// Compute returns the minimum and maximum temperature among the samples that
// fall on day. ok is false when no sample matches. Values are not rounded.
func (c ExtremaCalculator) Compute(series models.ForecastSeries, day CalendarDay) (Extrema, bool) {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	var ext Extrema
	for _, p := range series {
		if !c.matches(DayOf(p.Timestamp.In(loc)), day) {
			continue
		}
		if ext.Count == 0 || p.Temperature < ext.Min {
			ext.Min = p.Temperature
		}
		if ext.Count == 0 || p.Temperature > ext.Max {
			ext.Max = p.Temperature
		}
		ext.Count++
	}

	return ext, ext.Count > 0
}

func (c ExtremaCalculator) matches(got, want CalendarDay) bool {
	if c.Mode == MatchDayOfMonth {
		return got.Day == want.Day
	}
	return got == want
}

// ComputeExtrema uses full-date matching in the local time zone
func ComputeExtrema(series models.ForecastSeries, day CalendarDay) (Extrema, bool) {
	return ExtremaCalculator{}.Compute(series, day)
}
