package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"weather-dashboard/models"
)

func TestResolveTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("position", func(t *testing.T) {
		q := ResolveTarget(ctx, StaticLocator(models.Coordinates{Lat: 51.5, Lon: -0.12}), time.Second, "Pune")
		assert.Equal(t, models.CoordsQuery(51.5, -0.12), q)
	})

	t.Run("no locator", func(t *testing.T) {
		assert.Equal(t, models.CityQuery("Pune"), ResolveTarget(ctx, nil, time.Second, "Pune"))
	})

	t.Run("denied", func(t *testing.T) {
		denied := LocatorFunc(func(context.Context) (models.Coordinates, error) {
			return models.Coordinates{}, errors.New("permission denied")
		})
		assert.Equal(t, models.CityQuery("Pune"), ResolveTarget(ctx, denied, time.Second, "Pune"))
	})

	t.Run("unavailable", func(t *testing.T) {
		unavailable := LocatorFunc(func(context.Context) (models.Coordinates, error) {
			return models.Coordinates{}, ErrLocationUnavailable
		})
		assert.Equal(t, models.CityQuery("Pune"), ResolveTarget(ctx, unavailable, time.Second, "Pune"))
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		q := ResolveTarget(ctx, StaticLocator(models.Coordinates{Lat: 120, Lon: 0}), time.Second, "Pune")
		assert.Equal(t, models.CityQuery("Pune"), q)
	})

	t.Run("timeout", func(t *testing.T) {
		stuck := LocatorFunc(func(context.Context) (models.Coordinates, error) {
			time.Sleep(time.Second)
			return models.Coordinates{Lat: 1, Lon: 1}, nil
		})

		start := time.Now()
		q := ResolveTarget(ctx, stuck, 20*time.Millisecond, "Pune")

		assert.Equal(t, models.CityQuery("Pune"), q)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})
}
