package choropleth

import (
	"github.com/cartolab/venicemap/internal/classify"
	"github.com/cartolab/venicemap/internal/dataset"
	"github.com/cartolab/venicemap/internal/palette"
)

// Style is a render descriptor. The map client applies it as-is; the
// engine never touches layers or DOM directly.
type Style struct {
	StrokeColor   string  `json:"strokeColor"`
	StrokeWeight  float64 `json:"strokeWeight"`
	StrokeOpacity float64 `json:"strokeOpacity"`
	FillColor     string  `json:"fillColor"`
	FillOpacity   float64 `json:"fillOpacity"`
}

// suppressedBuilding flattens every building to neutral gray while the
// neighborhood layer is visible, regardless of the active mode.
var suppressedBuilding = Style{
	StrokeColor:   "#666666",
	StrokeWeight:  0.5,
	StrokeOpacity: 1,
	FillColor:     "#999999",
	FillOpacity:   0.35,
}

// defaultNeighborhood is the unclassified neighborhood outline.
var defaultNeighborhood = Style{
	StrokeColor:   "#3388ff",
	StrokeWeight:  2,
	StrokeOpacity: 1,
	FillColor:     "#3388ff",
	FillOpacity:   0.2,
}

// Resolver derives per-feature styles from the classification store.
type Resolver struct {
	store *classify.Store
}

// NewResolver creates a style resolver over cached classifications.
func NewResolver(store *classify.Store) *Resolver {
	return &Resolver{store: store}
}

// BuildingStyle resolves the render style for a building feature under
// the given view state.
func (r *Resolver) BuildingStyle(f *dataset.Feature, view ViewState) Style {
	if view.NeighborhoodsVisible {
		return suppressedBuilding
	}

	mode := view.BuildingMode
	attr := mode.Attr()
	breaks := r.store.Breaks(string(dataset.Buildings), attr)
	pal := palette.MustGenerate(mode.Recipe(), palette.Size)

	return Style{
		StrokeColor:   "#333333",
		StrokeWeight:  1,
		StrokeOpacity: 1,
		FillColor:     ColorFor(f.Value(attr), breaks, pal),
		FillOpacity:   0.7,
	}
}

// NeighborhoodStyle resolves the render style for a neighborhood feature
// under the given view state.
func (r *Resolver) NeighborhoodStyle(f *dataset.Feature, view ViewState) Style {
	key := view.NeighborhoodKey
	if key == "" {
		return defaultNeighborhood
	}

	recipe, ok := NeighborhoodRecipes[key]
	if !ok {
		return defaultNeighborhood
	}

	v := f.Value(key)
	if v == nil {
		s := defaultNeighborhood
		s.FillColor = NoDataColor
		return s
	}

	breaks := r.store.Breaks(string(dataset.Neighborhoods), key)
	pal := palette.MustGenerate(recipe, palette.Size)

	return Style{
		StrokeColor:   "#3388ff",
		StrokeWeight:  2,
		StrokeOpacity: 1,
		FillColor:     ColorFor(v, breaks, pal),
		FillOpacity:   0.6,
	}
}
