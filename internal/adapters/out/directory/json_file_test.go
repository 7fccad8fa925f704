package directory

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickdrop/internal/core/domain/model/relaypoint"
)

func Test_SeedFileLoadsIntoCatalog(t *testing.T) {
	points, err := SeedFile().Fetch(t.Context())
	require.NoError(t, err)
	require.Len(t, points, 8)

	catalog := relaypoint.NewCatalog()
	require.NoError(t, catalog.Load(points))

	bastos, err := catalog.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Relais Market Bastos", bastos.Name())
	assert.Equal(t, "Bastos", bastos.District())
	assert.Equal(t, relaypoint.TypeOffice, bastos.Type())
}

func Test_JSONFileRejectsInvalidRecords(t *testing.T) {
	fsys := fstest.MapFS{
		"points.json": {Data: []byte(`[{"id":"1","name":"Relais","lat":95,"lng":11.5,"type":"kiosk"}]`)},
	}

	_, err := NewJSONFileFS(fsys, "points.json").Fetch(t.Context())

	assert.ErrorIs(t, err, relaypoint.ErrInvalidCatalog)
}

func Test_JSONFileReportsDecodeAndMissingFile(t *testing.T) {
	fsys := fstest.MapFS{"broken.json": {Data: []byte(`{"id":`)}}

	_, err := NewJSONFileFS(fsys, "broken.json").Fetch(t.Context())
	assert.ErrorContains(t, err, "decode")

	_, err = NewJSONFile("/nonexistent/points.json").Fetch(t.Context())
	assert.ErrorContains(t, err, "open")
}
