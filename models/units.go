package models

import (
	"fmt"
	"strings"
)

// Units selects the measurement system the provider converts values into
type Units string

const (
	// Metric reports temperatures in Celsius and wind speed in m/s
	Metric Units = "metric"
	// Imperial reports temperatures in Fahrenheit and wind speed in mph
	Imperial Units = "imperial"
)

// ParseUnits parses a unit flag. An empty string selects Metric.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Metric), "c", "celsius":
		return Metric, nil
	case string(Imperial), "f", "fahrenheit":
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown units %q", s)
	}
}

// Toggle returns the other unit system
func (u Units) Toggle() Units {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

// TemperatureSuffix returns the degree suffix shown after a temperature
func (u Units) TemperatureSuffix() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// WindSuffix returns the suffix shown after a wind speed
func (u Units) WindSuffix() string {
	if u == Imperial {
		return " mph"
	}
	return " m/s"
}
