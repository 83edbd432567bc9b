package models

import (
	"fmt"
	"strings"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinates are within range
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Query identifies what a weather lookup is for: a city name or a position
type Query struct {
	City   string       `json:"city,omitempty"`
	Coords *Coordinates `json:"coords,omitempty"`
}

// CityQuery builds a query by city name
func CityQuery(city string) Query {
	return Query{City: strings.TrimSpace(city)}
}

// CoordsQuery builds a query by coordinates
func CoordsQuery(lat, lon float64) Query {
	return Query{Coords: &Coordinates{Lat: lat, Lon: lon}}
}

// IsZero reports whether the query has no target
func (q Query) IsZero() bool {
	return q.Coords == nil && q.City == ""
}

func (q Query) String() string {
	if q.Coords != nil {
		return fmt.Sprintf("%.4f,%.4f", q.Coords.Lat, q.Coords.Lon)
	}
	return q.City
}
