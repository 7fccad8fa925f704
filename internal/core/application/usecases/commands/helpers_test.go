package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pickdrop/internal/adapters/out/memstore"
	"pickdrop/internal/adapters/out/payment"
	"pickdrop/internal/core/application/orderflow"
	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/core/domain/services"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) (*orderflow.Engine, *memstore.Store) {
	t.Helper()
	points, err := relaypoint.FromRecords([]relaypoint.Record{
		{ID: "1", Name: "Relais Market Bastos", Address: "Rue 1756", Lat: 3.8686, Lng: 11.5184, Type: "office"},
		{ID: "4", Name: "Point Relais Emana", Address: "Carrefour Emana", Lat: 3.9120, Lng: 11.5240, Type: "shop"},
	})
	require.NoError(t, err)
	catalog := relaypoint.NewCatalog()
	require.NoError(t, catalog.Load(points))

	tracking, err := services.NewTrackingNumberGenerator(services.DefaultTrackingPrefix)
	require.NoError(t, err)

	store := memstore.NewStore()
	engine, err := orderflow.NewEngine(orderflow.Dependencies{
		Store:    store,
		Archiver: store,
		Pricing:  services.NewPricingEngine(services.DefaultTariff()),
		Routes:   services.NewRouteSelector(catalog),
		Payments: payment.NewOfflineGateway(0, 0, nil),
		Tracking: tracking,
	}, orderflow.WithClock(func() time.Time { return t0 }))
	require.NoError(t, err)
	return engine, store
}
