package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildingsGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[12.3, 45.4], [12.4, 45.4], [12.4, 45.5], [12.3, 45.4]]]},
			"properties": {"listing_count": 5, "price": 420.5, "host_since": "2012-06-15"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[12.1, 45.1], [12.2, 45.1], [12.2, 45.2], [12.1, 45.1]]]},
			"properties": {"listing_count": null}
		}
	]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGeoJSONFile(t *testing.T) {
	path := writeTemp(t, "buildings.geojson", buildingsGeoJSON)

	col, err := Load(context.Background(), Buildings, path, time.Second)
	require.NoError(t, err)
	assert.Equal(t, Buildings, col.Kind)
	require.Len(t, col.Features, 2)

	v := col.Features[0].Value(AttrListingCount)
	require.NotNil(t, v)
	assert.Equal(t, 5.0, *v)
	assert.NotNil(t, col.Features[0].Geometry)

	// null attribute flows through as no-data, never an error
	assert.Nil(t, col.Features[1].Value(AttrListingCount))
}

func TestLoadGeoJSONURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(buildingsGeoJSON))
	}))
	defer srv.Close()

	col, err := Load(context.Background(), Buildings, srv.URL, time.Second)
	require.NoError(t, err)
	assert.Len(t, col.Features, 2)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), Buildings, "/nonexistent/buildings.geojson", time.Second)
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeTemp(t, "broken.geojson", `{"type": "FeatureCollection", "features": [`)
		_, err := Load(context.Background(), Buildings, path, time.Second)
		assert.Error(t, err)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := Load(context.Background(), Neighborhoods, srv.URL, time.Second)
		assert.Error(t, err)
	})
}
