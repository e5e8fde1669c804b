// Package palette generates the named color ramps used for choropleth
// fills. Recipes are pure functions of a count; ramps are cheap to build
// and never cached.
package palette

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
)

// Size is the standard ramp length used by the dashboard.
const Size = 10

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex returns the 6-hex-digit encoding, e.g. "#ff8800".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lerp blends c toward o by t in [0,1], per channel.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: uint8(math.Round(float64(c.R) + t*(float64(o.R)-float64(c.R)))),
		G: uint8(math.Round(float64(c.G) + t*(float64(o.G)-float64(c.G)))),
		B: uint8(math.Round(float64(c.B) + t*(float64(o.B)-float64(c.B)))),
	}
}

// Recipe names. The first four color the building modes; the rest color
// the neighborhood metrics.
const (
	SpringReversed = "spring-reversed"
	Cool           = "cool"
	Autumn         = "autumn"
	Wistia         = "wistia"
	PiYG           = "PiYG"
	RdYlBu         = "RdYlBu"
	Spectral       = "Spectral"
	RdYlGn         = "RdYlGn"
	BrBG           = "BrBG"
	PuOr           = "PuOr"
	Set2           = "Set2"
)

// recipes maps each name to its anchor colors in blend order.
var recipes = map[string][]Color{
	// yellow -> cyan -> magenta
	SpringReversed: {{255, 255, 0}, {0, 255, 255}, {255, 0, 255}},
	// dark blue -> blue -> light blue -> cyan
	Cool: {{0, 0, 139}, {0, 0, 255}, {173, 216, 230}, {0, 255, 255}},
	// dark red -> red -> orange -> yellow -> brown
	Autumn: {{139, 0, 0}, {255, 0, 0}, {255, 165, 0}, {255, 255, 0}, {139, 69, 19}},
	// pale yellow-green -> saturated yellow-orange
	Wistia: {{228, 255, 122}, {255, 232, 26}, {255, 189, 0}, {255, 160, 0}},
	PiYG: {
		{197, 27, 125}, {233, 163, 201}, {253, 224, 239}, {247, 247, 247},
		{230, 245, 208}, {161, 215, 106}, {77, 146, 33},
	},
	RdYlBu: {
		{215, 48, 39}, {252, 141, 89}, {254, 224, 144}, {255, 255, 191},
		{224, 243, 248}, {145, 191, 219}, {69, 117, 180},
	},
	Spectral: {
		{213, 62, 79}, {252, 141, 89}, {254, 224, 139}, {255, 255, 191},
		{230, 245, 152}, {153, 213, 148}, {50, 136, 189},
	},
	RdYlGn: {
		{215, 48, 39}, {252, 141, 89}, {254, 224, 139}, {255, 255, 191},
		{217, 239, 139}, {145, 207, 96}, {26, 152, 80},
	},
	BrBG: {
		{140, 81, 10}, {216, 179, 101}, {246, 232, 195}, {245, 245, 245},
		{199, 234, 229}, {90, 180, 172}, {1, 102, 94},
	},
	PuOr: {
		{179, 88, 6}, {241, 163, 64}, {254, 224, 182}, {247, 247, 247},
		{216, 218, 235}, {153, 142, 195}, {84, 39, 136},
	},
	// qualitative anchors blended sequentially
	Set2: {
		{102, 194, 165}, {252, 141, 98}, {141, 160, 203}, {231, 138, 195},
		{166, 216, 84}, {255, 217, 47}, {229, 196, 148}, {179, 179, 179},
	},
}

// Generate produces count colors along the named recipe. The anchors
// divide [0,1] into equal-width segments and each output index i
// interpolates per channel within the segment containing i/(count-1).
// Set2 is the exception: it blends on a continuous index across its
// discrete anchor list rather than fixed segment boundaries.
func Generate(recipe string, count int) ([]Color, error) {
	anchors, ok := recipes[recipe]
	if !ok {
		return nil, eris.Errorf("palette: unknown recipe %q", recipe)
	}
	if count < 1 {
		return nil, eris.Errorf("palette: invalid color count %d", count)
	}

	out := make([]Color, count)
	for i := 0; i < count; i++ {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		if recipe == Set2 {
			out[i] = blendIndex(anchors, t)
		} else {
			out[i] = blendSegments(anchors, t)
		}
	}
	return out, nil
}

// MustGenerate is Generate for recipe names known at compile time.
func MustGenerate(recipe string, count int) []Color {
	colors, err := Generate(recipe, count)
	if err != nil {
		panic(err)
	}
	return colors
}

// Names lists every recipe name.
func Names() []string {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	return names
}

// Hexes renders a ramp as hex strings.
func Hexes(colors []Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}

// blendSegments interpolates within the equal-width segment containing t.
func blendSegments(anchors []Color, t float64) Color {
	segs := len(anchors) - 1
	if segs == 0 || t <= 0 {
		return anchors[0]
	}
	if t >= 1 {
		return anchors[segs]
	}
	seg := int(t * float64(segs))
	if seg >= segs {
		seg = segs - 1
	}
	local := t*float64(segs) - float64(seg)
	return anchors[seg].Lerp(anchors[seg+1], local)
}

// blendIndex interpolates between the nearest anchor pair on the
// continuous index t*(len-1).
func blendIndex(anchors []Color, t float64) Color {
	if t <= 0 {
		return anchors[0]
	}
	pos := t * float64(len(anchors)-1)
	lo := int(pos)
	if lo >= len(anchors)-1 {
		return anchors[len(anchors)-1]
	}
	return anchors[lo].Lerp(anchors[lo+1], pos-float64(lo))
}
