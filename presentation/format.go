// Package presentation turns provider values into the strings the dashboard shows.
package presentation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"weather-dashboard/forecast"
	"weather-dashboard/models"
)

// MinMaxPlaceholder is shown when there is no forecast data for today
const MinMaxPlaceholder = "Min: --, Max: --"

// Round rounds to the nearest integer, halves away from zero
func Round(v float64) int {
	return int(math.Round(v))
}

// Temperature formats a temperature with its unit suffix, e.g. "17°C"
func Temperature(v float64, units models.Units) string {
	return fmt.Sprintf("%d%s", Round(v), units.TemperatureSuffix())
}

// MinMax formats today's temperature range. ok is the result of the extrema calculation.
func MinMax(ext forecast.Extrema, ok bool) string {
	if !ok {
		return MinMaxPlaceholder
	}
	return fmt.Sprintf("Min: %d°, Max: %d°", Round(ext.Min), Round(ext.Max))
}

// Humidity formats relative humidity
func Humidity(h float64) string {
	return fmt.Sprintf("Humidity: %s%%", number(h))
}

// Wind formats wind speed in the unit the provider reported it in
func Wind(speed float64, units models.Units) string {
	return fmt.Sprintf("Wind: %s%s", number(speed), units.WindSuffix())
}

// Pressure formats atmospheric pressure
func Pressure(p float64) string {
	return fmt.Sprintf("Pressure: %s hPa", number(p))
}

// Weekday returns the short weekday name of t, e.g. "Mon"
func Weekday(t time.Time) string {
	return t.Format("Mon")
}

// number prints provider values as received, without trailing zeros
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Theme maps a condition group to the dashboard background theme.
// Unknown conditions return an empty theme.
func Theme(weatherMain string) string {
	m := strings.ToLower(weatherMain)
	switch {
	case strings.Contains(m, "clear"):
		return "clear"
	case strings.Contains(m, "cloud"):
		return "clouds"
	case strings.Contains(m, "rain"), strings.Contains(m, "drizzle"):
		return "rain"
	case strings.Contains(m, "snow"):
		return "snow"
	case strings.Contains(m, "thunder"):
		return "thunder"
	case strings.Contains(m, "mist"), strings.Contains(m, "fog"):
		return "mist"
	}
	return ""
}
