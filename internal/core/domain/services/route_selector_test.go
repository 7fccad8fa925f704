package services_test

import (
	"testing"

	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/core/domain/services"
	"pickdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *relaypoint.Catalog {
	t.Helper()
	points, err := relaypoint.FromRecords([]relaypoint.Record{
		{ID: "1", Name: "Relais Market Bastos", Address: "Rue 1756", Lat: 3.8686, Lng: 11.5184, Type: "office"},
		{ID: "2", Name: "Boutique Bastos", Address: "Carrefour Bastos", Lat: 3.8672, Lng: 11.5165, Type: "shop"},
		{ID: "4", Name: "Point Relais Emana", Address: "Carrefour Emana", Lat: 3.9120, Lng: 11.5240, Type: "shop"},
	})
	require.NoError(t, err)

	c := relaypoint.NewCatalog()
	require.NoError(t, c.Load(points))
	return c
}

func TestRouteSelector_SelectRoute(t *testing.T) {
	catalog := testCatalog(t)
	selector := services.NewRouteSelector(catalog)

	t.Run("valid pair sets distance", func(t *testing.T) {
		route, err := selector.SelectRoute("1", " 4 ")

		require.NoError(t, err)
		assert.Equal(t, "1", route.DeparturePointID)
		assert.Equal(t, "4", route.ArrivalPointID)
		require.NotNil(t, route.DistanceKm)

		a, _ := catalog.Get("1")
		b, _ := catalog.Get("4")
		assert.Equal(t, catalog.DistanceKm(a, b), *route.DistanceKm)
	})

	t.Run("same endpoint", func(t *testing.T) {
		_, err := selector.SelectRoute("2", "2")

		require.ErrorIs(t, err, services.ErrSameEndpoint)
		var routeErr *services.RouteError
		require.ErrorAs(t, err, &routeErr)
		assert.Equal(t, "arrivalPointId", routeErr.Field)
	})

	t.Run("unknown arrival", func(t *testing.T) {
		_, err := selector.SelectRoute("1", "99")

		require.ErrorIs(t, err, services.ErrUnknownPoint)
		var routeErr *services.RouteError
		require.ErrorAs(t, err, &routeErr)
		assert.Equal(t, "arrivalPointId", routeErr.Field)
		assert.Equal(t, "99", routeErr.ID)
	})

	t.Run("both unknown are reported", func(t *testing.T) {
		_, err := selector.SelectRoute("98", "99")

		require.ErrorIs(t, err, services.ErrUnknownPoint)
		assert.Contains(t, err.Error(), "departurePointId")
		assert.Contains(t, err.Error(), "arrivalPointId")
	})

	t.Run("blank ids are invalid input", func(t *testing.T) {
		_, err := selector.SelectRoute("", " ")
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("not in fixed mode", func(t *testing.T) {
		_, ok := selector.FixedDeparture()
		assert.False(t, ok)

		_, err := selector.SelectArrival("4")
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestRouteSelector_FixedDeparture(t *testing.T) {
	catalog := testCatalog(t)
	selector, err := services.NewFixedDepartureRouteSelector(catalog, "1")
	require.NoError(t, err)

	t.Run("reports the departure", func(t *testing.T) {
		id, ok := selector.FixedDeparture()
		assert.True(t, ok)
		assert.Equal(t, "1", id)
	})

	t.Run("select arrival", func(t *testing.T) {
		route, err := selector.SelectArrival("2")

		require.NoError(t, err)
		assert.Equal(t, "1", route.DeparturePointID)
		assert.Equal(t, "2", route.ArrivalPointID)
	})

	t.Run("arrival equal to fixed departure", func(t *testing.T) {
		_, err := selector.SelectArrival("1")
		require.ErrorIs(t, err, services.ErrSameEndpoint)
	})

	t.Run("other departure is rejected", func(t *testing.T) {
		_, err := selector.SelectRoute("2", "4")
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("fixed departure missing from catalog", func(t *testing.T) {
		orphan, err := services.NewFixedDepartureRouteSelector(catalog, "77")
		require.NoError(t, err)

		_, err = orphan.SelectArrival("2")
		require.ErrorIs(t, err, services.ErrUnknownPoint)
	})

	t.Run("blank fixed departure", func(t *testing.T) {
		_, err := services.NewFixedDepartureRouteSelector(catalog, " ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRouteSelector_EmptyCatalog(t *testing.T) {
	selector := services.NewRouteSelector(relaypoint.NewCatalog())

	_, err := selector.SelectRoute("1", "2")

	require.ErrorIs(t, err, services.ErrUnknownPoint)
}
