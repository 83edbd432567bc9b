package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrCityNotFound is returned when the provider does not know the requested location
	ErrCityNotFound = errors.New("city not found")
	// ErrEmptyQuery is returned for a query with neither a city nor coordinates
	ErrEmptyQuery = errors.New("query has no city or coordinates")
)

// APIError is a non-success answer from the provider
type APIError struct {
	Provider string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error (status %d)", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Message)
}
