package dashboard

import (
	"context"
	"errors"
	"log"
	"time"

	"weather-dashboard/models"
)

// ErrLocationUnavailable is returned by locators that have no position to offer
var ErrLocationUnavailable = errors.New("location unavailable")

// Locator supplies the user's current position
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// LocatorFunc adapts a function to the Locator interface
type LocatorFunc func(ctx context.Context) (models.Coordinates, error)

// Locate calls f
func (f LocatorFunc) Locate(ctx context.Context) (models.Coordinates, error) {
	return f(ctx)
}

// StaticLocator always reports the same position
func StaticLocator(c models.Coordinates) Locator {
	return LocatorFunc(func(context.Context) (models.Coordinates, error) {
		return c, nil
	})
}

// ResolveTarget asks locator for the current position and waits at most timeout.
// A nil locator, an error, invalid coordinates or a timeout select fallbackCity.
func ResolveTarget(ctx context.Context, locator Locator, timeout time.Duration, fallbackCity string) models.Query {
	fallback := models.CityQuery(fallbackCity)
	if locator == nil {
		return fallback
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		coords models.Coordinates
		err    error
	}
	// buffered: the send must not block once we have stopped waiting
	done := make(chan result, 1)
	go func() {
		coords, err := locator.Locate(ctx)
		done <- result{coords: coords, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			log.Printf("Geolocation failed, using %s: %v", fallbackCity, r.err)
			return fallback
		}
		if !r.coords.Valid() {
			log.Printf("Geolocation returned invalid coordinates %+v, using %s", r.coords, fallbackCity)
			return fallback
		}
		return models.CoordsQuery(r.coords.Lat, r.coords.Lon)
	case <-ctx.Done():
		log.Printf("Geolocation did not answer in time, using %s", fallbackCity)
		return fallback
	}
}
