package choropleth

import (
	"github.com/cartolab/venicemap/internal/dataset"
	"github.com/cartolab/venicemap/internal/palette"
)

// Mode selects the building attribute driving building colors.
type Mode string

// Building color modes.
const (
	ModeListings Mode = "listings"
	ModeCapacity Mode = "capacity"
	ModePrice    Mode = "price"
	ModeTenure   Mode = "tenure"
)

// Modes lists every building mode.
var Modes = []Mode{ModeListings, ModeCapacity, ModePrice, ModeTenure}

// Valid reports whether m names a known building mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeListings, ModeCapacity, ModePrice, ModeTenure:
		return true
	}
	return false
}

// Attr returns the dataset attribute backing the mode.
func (m Mode) Attr() string {
	switch m {
	case ModeCapacity:
		return dataset.AttrAccommodates
	case ModePrice:
		return dataset.AttrPrice
	case ModeTenure:
		return dataset.AttrHostSince
	default:
		return dataset.AttrListingCount
	}
}

// Recipe returns the palette recipe coloring the mode.
func (m Mode) Recipe() string {
	switch m {
	case ModeCapacity:
		return palette.Cool
	case ModePrice:
		return palette.Autumn
	case ModeTenure:
		return palette.Wistia
	default:
		return palette.SpringReversed
	}
}

// NeighborhoodRecipes maps each neighborhood classification key to its
// dedicated palette recipe.
var NeighborhoodRecipes = map[string]string{
	dataset.AttrListingsTotal:      palette.Spectral,
	dataset.AttrGuestsPerNight:     palette.RdYlBu,
	dataset.AttrGuestNightCapacity: palette.PiYG,
	dataset.AttrPricePerNight:      palette.RdYlGn,
	dataset.AttrMedianPricePerUnit: palette.BrBG,
	dataset.AttrMaxPricePerUnit:    palette.PuOr,
	dataset.AttrMinPricePerUnit:    palette.Set2,
}

// ViewState is the immutable view selection threaded through style and
// aggregation calls. A zero NeighborhoodKey means no neighborhood
// classification is active.
type ViewState struct {
	BuildingMode         Mode
	NeighborhoodKey      string
	NeighborhoodsVisible bool
}

// DefaultView is the state at load: listing-count coloring and no
// neighborhood classification.
var DefaultView = ViewState{BuildingMode: ModeListings}
