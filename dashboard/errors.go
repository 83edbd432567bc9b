package dashboard

import (
	"errors"
	"fmt"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

// Messages shown to the user when a query fails
const (
	MessageNotFound    = "City not found"
	MessageUnavailable = "Weather service unavailable"
)

// QueryError reports a failed dashboard query
type QueryError struct {
	Query models.Query
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q failed: %v", e.Query.String(), e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the provider did not know the location
func (e *QueryError) NotFound() bool {
	return errors.Is(e.Err, datasource.ErrCityNotFound)
}

// Message is the text to show the user
func (e *QueryError) Message() string {
	if e.NotFound() {
		return MessageNotFound
	}
	return MessageUnavailable
}
