// Package choropleth resolves per-feature render colors and styles from
// cached classifications and palette ramps.
package choropleth

import (
	"github.com/cartolab/venicemap/internal/classify"
	"github.com/cartolab/venicemap/internal/palette"
)

// NoDataColor fills features whose value is missing, non-finite or
// excluded by the positive-participation rule. It is distinct from every
// palette color.
const NoDataColor = "#cccccc"

// ColorFor maps a value onto the palette ramp for its class interval,
// blending toward the next class color by the value's position inside
// the interval. A nil value gets the neutral no-data color; breaks with
// fewer than two entries degrade to the first palette color.
func ColorFor(value *float64, breaks []float64, pal []palette.Color) string {
	if value == nil || len(pal) == 0 {
		return NoDataColor
	}
	if len(breaks) < 2 {
		return pal[0].Hex()
	}

	i := classify.IntervalIndex(*value, breaks)
	if i < 0 {
		return pal[0].Hex()
	}
	pi := i
	if pi > len(pal)-1 {
		pi = len(pal) - 1
	}

	// The last interval and the last palette entry stay unblended.
	if i == len(breaks)-2 || pi == len(pal)-1 {
		return pal[pi].Hex()
	}

	lo, hi := breaks[i], breaks[i+1]
	if hi == lo {
		return pal[pi].Hex()
	}
	factor := (*value - lo) / (hi - lo)
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return pal[pi].Lerp(pal[pi+1], factor).Hex()
}
