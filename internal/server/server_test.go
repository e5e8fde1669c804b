package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartolab/venicemap/internal/classify"
	"github.com/cartolab/venicemap/internal/dataset"
)

func testFixtures() (*dataset.Collection, *dataset.Collection, *classify.Store) {
	buildings := &dataset.Collection{
		Kind: dataset.Buildings,
		Features: []dataset.Feature{
			{Properties: map[string]any{
				dataset.AttrListingCount: 5.0,
				dataset.AttrPrice:        120.0,
				dataset.AttrAccommodates: 2.0,
			}},
			{Properties: map[string]any{dataset.AttrListingCount: 0.0}},
			{Properties: map[string]any{
				dataset.AttrListingCount: 40.0,
				dataset.AttrPrice:        300.0,
				dataset.AttrAccommodates: 6.0,
			}},
		},
	}
	neighborhoods := &dataset.Collection{
		Kind: dataset.Neighborhoods,
		Features: []dataset.Feature{
			{Properties: map[string]any{"neighbourhood": "Dorsoduro", dataset.AttrListingsTotal: 45.0}},
			{Properties: map[string]any{"neighbourhood": "Giudecca", dataset.AttrListingsTotal: 0.0}},
		},
	}

	store := classify.NewStore(10)
	for _, attr := range dataset.BuildingAttrs {
		store.Set(string(dataset.Buildings), attr, buildings.Values(attr))
	}
	for _, attr := range dataset.NeighborhoodAttrs {
		store.Set(string(dataset.Neighborhoods), attr, neighborhoods.Values(attr))
	}
	return buildings, neighborhoods, store
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	buildings, neighborhoods, store := testFixtures()
	srv := httptest.NewServer(New(buildings, neighborhoods, store, opts).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})

	var body map[string]any
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["buildings_available"])
}

func TestStyles(t *testing.T) {
	srv := newTestServer(t, Options{})

	tests := []struct {
		name   string
		path   string
		status int
		count  float64
	}{
		{name: "buildings default mode", path: "/api/styles/buildings", status: http.StatusOK, count: 3},
		{name: "buildings price mode", path: "/api/styles/buildings?mode=price", status: http.StatusOK, count: 3},
		{name: "buildings suppressed by neighborhood layer", path: "/api/styles/buildings?neighborhoods=true", status: http.StatusOK, count: 3},
		{name: "neighborhoods with key", path: "/api/styles/neighborhoods?key=listings_total", status: http.StatusOK, count: 2},
		{name: "unknown mode rejected", path: "/api/styles/buildings?mode=bogus", status: http.StatusBadRequest},
		{name: "unknown dataset rejected", path: "/api/styles/venice", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			status := getJSON(t, srv.URL+tt.path, &body)
			assert.Equal(t, tt.status, status)
			if status == http.StatusOK {
				assert.Equal(t, tt.count, body["count"])
				styles, ok := body["styles"].([]any)
				require.True(t, ok)
				assert.Len(t, styles, int(tt.count))
			}
		})
	}
}

func TestStylesSuppressedFill(t *testing.T) {
	srv := newTestServer(t, Options{})

	var body struct {
		Styles []struct {
			FillColor string `json:"fillColor"`
		} `json:"styles"`
	}
	status := getJSON(t, srv.URL+"/api/styles/buildings?neighborhoods=true", &body)
	require.Equal(t, http.StatusOK, status)
	for _, s := range body.Styles {
		assert.Equal(t, "#999999", s.FillColor)
	}
}

func TestLegend(t *testing.T) {
	srv := newTestServer(t, Options{})

	var body map[string]any
	status := getJSON(t, srv.URL+"/api/legend/buildings?mode=listings", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, dataset.AttrListingCount, body["attr"])
	rows, ok := body["rows"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, rows)

	// neighborhoods require an explicit classification key
	status = getJSON(t, srv.URL+"/api/legend/neighborhoods", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = getJSON(t, srv.URL+"/api/legend/neighborhoods?key=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSummary(t *testing.T) {
	srv := newTestServer(t, Options{})

	var body map[string]any
	status := getJSON(t, srv.URL+"/api/summary/buildings?mode=listings", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 45.0, body["total"])
	assert.Equal(t, "45 listings", body["text"])
	assert.Equal(t, 1.0, body["no_data"])
	assert.Equal(t, 3.0, body["features"])
}

func TestUnavailableDataset(t *testing.T) {
	_, neighborhoods, store := testFixtures()
	srv := httptest.NewServer(New(nil, neighborhoods, store, Options{}).Handler())
	defer srv.Close()

	status := getJSON(t, srv.URL+"/api/styles/buildings", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)

	// the other dataset keeps serving
	status = getJSON(t, srv.URL+"/api/styles/neighborhoods?key=listings_total", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, Options{RateLimit: 1, RateBurst: 1})

	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, getJSON(t, srv.URL+"/health", nil))
}
