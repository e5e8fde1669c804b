// Package aggregate derives the histograms, totals and legend data that
// feed the dashboard's legend and donut chart.
package aggregate

import (
	"github.com/cartolab/venicemap/internal/classify"
	"github.com/cartolab/venicemap/internal/choropleth"
	"github.com/cartolab/venicemap/internal/dataset"
)

// Result holds a one-pass aggregation of a feature collection for one
// active attribute.
type Result struct {
	Mode choropleth.Mode // building mode, empty for neighborhood keys
	Attr string

	Breaks    []float64
	Histogram []int
	NoData    int

	// GuestCounts tracks accommodates×listing_count per class; only the
	// price mode fills it, for tooltip display next to the price bars.
	GuestCounts []float64

	Total    float64
	HasTotal bool
}

// FeatureCount returns the number of features the pass observed.
func (r Result) FeatureCount() int {
	n := r.NoData
	for _, c := range r.Histogram {
		n += c
	}
	return n
}

// Buildings walks the building collection once for the active mode.
// Mode totals: capacity sums value×listing_count (guest capacity),
// listings and price sum the raw value, tenure produces no total.
func Buildings(col *dataset.Collection, mode choropleth.Mode, store *classify.Store) Result {
	attr := mode.Attr()
	breaks := store.Breaks(string(dataset.Buildings), attr)

	res := Result{
		Mode:     mode,
		Attr:     attr,
		Breaks:   breaks,
		HasTotal: mode != choropleth.ModeTenure,
	}
	if len(breaks) >= 2 {
		res.Histogram = make([]int, len(breaks)-1)
		if mode == choropleth.ModePrice {
			res.GuestCounts = make([]float64, len(breaks)-1)
		}
	}

	for i := range col.Features {
		f := &col.Features[i]
		v := f.Value(attr)
		if v == nil || len(res.Histogram) == 0 {
			res.NoData++
			continue
		}
		idx := classify.IntervalIndex(*v, breaks)
		if idx < 0 {
			res.NoData++
			continue
		}
		res.Histogram[idx]++

		switch mode {
		case choropleth.ModeListings:
			res.Total += *v
		case choropleth.ModeCapacity:
			res.Total += *v * numeric(f, dataset.AttrListingCount)
		case choropleth.ModePrice:
			res.Total += *v
			res.GuestCounts[idx] += numeric(f, dataset.AttrAccommodates) * numeric(f, dataset.AttrListingCount)
		}
	}
	return res
}

// Neighborhoods walks the neighborhood collection once for a
// classification key, summing the raw key values as the total.
func Neighborhoods(col *dataset.Collection, key string, store *classify.Store) Result {
	breaks := store.Breaks(string(dataset.Neighborhoods), key)

	res := Result{Attr: key, Breaks: breaks, HasTotal: true}
	if len(breaks) >= 2 {
		res.Histogram = make([]int, len(breaks)-1)
	}

	for i := range col.Features {
		f := &col.Features[i]
		v := f.Value(key)
		if v == nil || len(res.Histogram) == 0 {
			res.NoData++
			continue
		}
		idx := classify.IntervalIndex(*v, breaks)
		if idx < 0 {
			res.NoData++
			continue
		}
		res.Histogram[idx]++
		res.Total += *v
	}
	return res
}

// numeric reads a participating attribute value, or 0 when the feature
// has none. Used for cross-attribute products.
func numeric(f *dataset.Feature, attr string) float64 {
	if v := f.Value(attr); v != nil {
		return *v
	}
	return 0
}
