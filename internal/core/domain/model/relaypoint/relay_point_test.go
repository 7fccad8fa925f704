package relaypoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickdrop/internal/core/domain/model/kernel"
	"pickdrop/internal/core/domain/model/relaypoint"
	"pickdrop/internal/pkg/errs"
)

func TestNewRelayPoint(t *testing.T) {
	coords := kernel.MustNewCoordinates(3.8686, 11.5184)

	t.Run("valid point", func(t *testing.T) {
		p, err := relaypoint.NewRelayPoint("1", " Relais Bastos ", "Rue 1756, Bastos", coords, relaypoint.TypeOffice, "Mon-Fri 8-19")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "1", p.ID())
		assert.Equal(t, "Relais Bastos", p.Name())
		assert.Equal(t, "Rue 1756, Bastos", p.Address())
		assert.Equal(t, relaypoint.TypeOffice, p.Type())
		assert.Equal(t, "Mon-Fri 8-19", p.OperatingHours())
		assert.Equal(t, coords, p.Coordinates())
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		_, err := relaypoint.NewRelayPoint(" ", "", "x", kernel.Coordinates{}, relaypoint.Type("kiosk"), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "id")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "coordinates")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p relaypoint.RelayPoint
		require.ErrorIs(t, p.Validate(), relaypoint.ErrRelayPointIsNotConstructed)
	})

	t.Run("with district keeps the original untouched", func(t *testing.T) {
		p, err := relaypoint.NewRelayPoint("1", "Relais", "Rue", coords, relaypoint.TypeShop, "")
		require.NoError(t, err)

		withDistrict := p.WithDistrict("Bastos")

		assert.Equal(t, "Bastos", withDistrict.District())
		assert.Empty(t, p.District())
	})
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    relaypoint.Type
		wantErr bool
	}{
		{in: "office", want: relaypoint.TypeOffice},
		{in: "Shop", want: relaypoint.TypeShop},
		{in: "agency", want: relaypoint.TypeAgency},
		{in: "bureau", want: relaypoint.TypeOffice},
		{in: "commerce", want: relaypoint.TypeShop},
		{in: "agence", want: relaypoint.TypeAgency},
		{in: "kiosk", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := relaypoint.ParseType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromRecords(t *testing.T) {
	t.Run("converts valid records", func(t *testing.T) {
		points, err := relaypoint.FromRecords([]relaypoint.Record{
			{ID: "1", Name: "Relais Bastos", Address: "Rue 1756", District: "Bastos", Lat: 3.8686, Lng: 11.5184, Type: "bureau"},
		})

		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, "Bastos", points[0].District())
		assert.Equal(t, relaypoint.TypeOffice, points[0].Type())

		assert.Equal(t, relaypoint.Record{
			ID: "1", Name: "Relais Bastos", Address: "Rue 1756", District: "Bastos",
			Lat: 3.8686, Lng: 11.5184, Type: "office",
		}, relaypoint.ToRecord(points[0]))
	})

	t.Run("fails the batch on out of range coordinates", func(t *testing.T) {
		points, err := relaypoint.FromRecords([]relaypoint.Record{
			{ID: "1", Name: "A", Lat: 3.8, Lng: 11.5, Type: "shop"},
			{ID: "2", Name: "B", Lat: 95, Lng: 11.5, Type: "shop"},
		})

		require.ErrorIs(t, err, relaypoint.ErrInvalidCatalog)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, points)
	})
}
