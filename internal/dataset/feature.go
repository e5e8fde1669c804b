// Package dataset loads the two Venice feature collections and exposes
// typed access to their statistical attributes. Geometries stay opaque
// to the classification engine; only attribute values are read.
package dataset

import (
	"encoding/json"
	"math"
	"time"

	"github.com/twpayne/go-geom"
)

// Kind identifies one of the two datasets.
type Kind string

// The two dataset kinds.
const (
	Buildings     Kind = "buildings"
	Neighborhoods Kind = "neighborhoods"
)

// Building attribute names.
const (
	AttrListingCount = "listing_count"
	AttrPrice        = "price"
	AttrAccommodates = "accommodates"
	AttrHostSince    = "host_since"
	AttrAvailability = "availability_365"
)

// Neighborhood attribute names.
const (
	AttrListingsTotal      = "listings_total"
	AttrGuestsPerNight     = "total_guests_per_night"
	AttrGuestNightCapacity = "guest_night_capacity_per_year"
	AttrPricePerNight      = "total_price_per_night"
	AttrMedianPricePerUnit = "median_price_per_unit"
	AttrMaxPricePerUnit    = "max_price_per_unit"
	AttrMinPricePerUnit    = "min_price_per_unit"
)

// BuildingAttrs lists the building attributes that get classified at load.
var BuildingAttrs = []string{AttrListingCount, AttrPrice, AttrAccommodates, AttrHostSince}

// NeighborhoodAttrs lists the neighborhood attributes that get classified
// at load.
var NeighborhoodAttrs = []string{
	AttrListingsTotal,
	AttrGuestsPerNight,
	AttrGuestNightCapacity,
	AttrPricePerNight,
	AttrMedianPricePerUnit,
	AttrMaxPricePerUnit,
	AttrMinPricePerUnit,
}

// tenureEpoch anchors host-tenure values: fractional years since 2000.
var tenureEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// hoursPerYear averages leap years into the year length.
const hoursPerYear = 365.25 * 24

// Feature is one immutable geographic record.
type Feature struct {
	Geometry   geom.T
	Properties map[string]any
}

// Collection is an ordered set of features from one dataset.
type Collection struct {
	Kind     Kind
	Features []Feature
}

// Name returns the display name of a neighborhood feature, preferring
// "neighbourhood" over "name".
func (f *Feature) Name() string {
	for _, key := range []string{"neighbourhood", "name"} {
		if v, ok := f.Properties[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Value extracts the classification value for attr, or nil for no-data.
// Count, price and capacity attributes participate only when strictly
// positive: zero, negative, missing and non-finite values all land in
// the no-data bucket. host_since is derived from the listing date
// instead of read directly.
func (f *Feature) Value(attr string) *float64 {
	if attr == AttrHostSince {
		return f.tenure()
	}
	raw, ok := f.Properties[attr]
	if !ok {
		return nil
	}
	v, ok := asFloat(raw)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}

// tenure parses host_since and converts it to fractional years since
// 2000-01-01 UTC. Unparseable dates are no-data; the parse error never
// propagates further.
func (f *Feature) tenure() *float64 {
	raw, ok := f.Properties[AttrHostSince].(string)
	if !ok || raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	years := t.Sub(tenureEpoch).Hours() / hoursPerYear
	return &years
}

// Values collects the participating values for attr across the
// collection, in feature order. This feeds break computation.
func (c *Collection) Values(attr string) []float64 {
	out := make([]float64, 0, len(c.Features))
	for i := range c.Features {
		if v := c.Features[i].Value(attr); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
