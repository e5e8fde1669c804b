package aggregate

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cartolab/venicemap/internal/choropleth"
	"github.com/cartolab/venicemap/internal/dataset"
	"github.com/cartolab/venicemap/internal/palette"
)

// Row is one legend entry: a color swatch, its value range and the
// number of features in the class.
type Row struct {
	Swatch string `json:"swatch"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// NoDataLabel names the trailing legend row for unclassified features.
const NoDataLabel = "no data"

// priceAttrs denominate their labels and totals in euro.
var priceAttrs = map[string]bool{
	dataset.AttrPrice:              true,
	dataset.AttrPricePerNight:      true,
	dataset.AttrMedianPricePerUnit: true,
	dataset.AttrMaxPricePerUnit:    true,
	dataset.AttrMinPricePerUnit:    true,
}

var printer = message.NewPrinter(language.English)

// Legend renders the aggregation as ordered rows, highest class first,
// with a trailing no-data row when any feature lacked a value.
func Legend(res Result, pal []palette.Color) []Row {
	rows := make([]Row, 0, len(res.Histogram)+1)
	for i := len(res.Histogram) - 1; i >= 0; i-- {
		swatch := choropleth.NoDataColor
		if len(pal) > 0 {
			pi := i
			if pi > len(pal)-1 {
				pi = len(pal) - 1
			}
			swatch = pal[pi].Hex()
		}
		rows = append(rows, Row{
			Swatch: swatch,
			Label:  rangeLabel(res.Attr, res.Breaks[i], res.Breaks[i+1]),
			Count:  res.Histogram[i],
		})
	}
	if res.NoData > 0 {
		rows = append(rows, Row{Swatch: choropleth.NoDataColor, Label: NoDataLabel, Count: res.NoData})
	}
	return rows
}

// rangeLabel formats a class range: euro-prefixed for price attributes,
// calendar years for host tenure (breaks are years since 2000), plain
// integers otherwise.
func rangeLabel(attr string, lo, hi float64) string {
	switch {
	case attr == dataset.AttrHostSince:
		return fmt.Sprintf("%d-%d", 2000+int(lo), 2000+int(hi))
	case priceAttrs[attr]:
		return fmt.Sprintf("€%d-€%d", int(lo), int(hi))
	default:
		return fmt.Sprintf("%d-%d", int(lo), int(hi))
	}
}

// Summary formats the aggregate total for the center of the donut chart.
// Price totals are shown in millions with a two-decimal ceiling; the
// tenure mode has no meaningful total and yields an empty string.
func (r Result) Summary() string {
	if !r.HasTotal {
		return ""
	}
	if priceAttrs[r.Attr] {
		mln := math.Ceil(r.Total/1e6*100) / 100
		return printer.Sprintf("€%.2fmln Total", mln)
	}
	switch r.Mode {
	case choropleth.ModeCapacity:
		return printer.Sprintf("%d guests", int64(math.Round(r.Total)))
	case choropleth.ModeListings:
		return printer.Sprintf("%d listings", int64(math.Round(r.Total)))
	}
	return printer.Sprintf("%d", int64(math.Round(r.Total)))
}
