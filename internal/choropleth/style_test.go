package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartolab/venicemap/internal/classify"
	"github.com/cartolab/venicemap/internal/dataset"
)

func newTestResolver() *Resolver {
	store := classify.NewStore(10)
	store.Set(string(dataset.Buildings), dataset.AttrListingCount, []float64{1, 2, 5, 8, 12, 20, 35, 50, 80, 120})
	store.Set(string(dataset.Neighborhoods), dataset.AttrListingsTotal, []float64{10, 50, 120, 300, 700})
	return NewResolver(store)
}

func buildingFeature(listingCount any) *dataset.Feature {
	props := map[string]any{}
	if listingCount != nil {
		props[dataset.AttrListingCount] = listingCount
	}
	return &dataset.Feature{Properties: props}
}

func TestBuildingStyleSuppressedWhileNeighborhoodsVisible(t *testing.T) {
	r := newTestResolver()
	f := buildingFeature(12.0)

	for _, mode := range Modes {
		view := ViewState{BuildingMode: mode, NeighborhoodsVisible: true}
		style := r.BuildingStyle(f, view)
		assert.Equal(t, "#999999", style.FillColor, mode)
		assert.Equal(t, suppressedBuilding, style)
	}
}

func TestBuildingStyle(t *testing.T) {
	r := newTestResolver()

	style := r.BuildingStyle(buildingFeature(12.0), DefaultView)
	assert.NotEqual(t, NoDataColor, style.FillColor)
	assert.Equal(t, 0.7, style.FillOpacity)
	assert.Equal(t, "#333333", style.StrokeColor)

	// Zero participates as no-data under the positive-value rule.
	noData := r.BuildingStyle(buildingFeature(0.0), DefaultView)
	assert.Equal(t, NoDataColor, noData.FillColor)

	missing := r.BuildingStyle(buildingFeature(nil), DefaultView)
	assert.Equal(t, NoDataColor, missing.FillColor)
}

func TestBuildingStyleIdempotent(t *testing.T) {
	r := newTestResolver()
	f := buildingFeature(12.0)

	first := r.BuildingStyle(f, DefaultView)
	second := r.BuildingStyle(f, DefaultView)
	assert.Equal(t, first, second)
}

func TestNeighborhoodStyle(t *testing.T) {
	r := newTestResolver()
	classified := &dataset.Feature{Properties: map[string]any{dataset.AttrListingsTotal: 120.0}}

	tests := []struct {
		name    string
		feature *dataset.Feature
		view    ViewState
		check   func(t *testing.T, s Style)
	}{
		{
			name:    "no active key returns the default blue style",
			feature: classified,
			view:    ViewState{},
			check: func(t *testing.T, s Style) {
				assert.Equal(t, defaultNeighborhood, s)
			},
		},
		{
			name:    "unknown key falls back to the default style",
			feature: classified,
			view:    ViewState{NeighborhoodKey: "bogus"},
			check: func(t *testing.T, s Style) {
				assert.Equal(t, defaultNeighborhood, s)
			},
		},
		{
			name:    "absent value overrides the fill with the no-data color",
			feature: &dataset.Feature{Properties: map[string]any{}},
			view:    ViewState{NeighborhoodKey: dataset.AttrListingsTotal},
			check: func(t *testing.T, s Style) {
				assert.Equal(t, NoDataColor, s.FillColor)
				assert.Equal(t, defaultNeighborhood.StrokeColor, s.StrokeColor)
				assert.Equal(t, defaultNeighborhood.FillOpacity, s.FillOpacity)
			},
		},
		{
			name:    "classified value resolves a ramp color",
			feature: classified,
			view:    ViewState{NeighborhoodKey: dataset.AttrListingsTotal},
			check: func(t *testing.T, s Style) {
				require.NotEqual(t, NoDataColor, s.FillColor)
				assert.Equal(t, 0.6, s.FillOpacity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, r.NeighborhoodStyle(tt.feature, tt.view))
		})
	}
}

func TestModeMapping(t *testing.T) {
	assert.Equal(t, dataset.AttrListingCount, ModeListings.Attr())
	assert.Equal(t, dataset.AttrAccommodates, ModeCapacity.Attr())
	assert.Equal(t, dataset.AttrPrice, ModePrice.Attr())
	assert.Equal(t, dataset.AttrHostSince, ModeTenure.Attr())

	for _, mode := range Modes {
		assert.True(t, mode.Valid())
		assert.NotEmpty(t, mode.Recipe())
	}
	assert.False(t, Mode("bogus").Valid())

	for _, attr := range dataset.NeighborhoodAttrs {
		assert.Contains(t, NeighborhoodRecipes, attr)
	}
}
