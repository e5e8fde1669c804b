package choropleth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cartolab/venicemap/internal/palette"
)

func ptr(v float64) *float64 { return &v }

func TestColorFor(t *testing.T) {
	pal := []palette.Color{{R: 0, G: 0, B: 0}, {R: 100, G: 200, B: 50}}
	breaks := []float64{0, 10, 20}

	tests := []struct {
		name     string
		value    *float64
		breaks   []float64
		expected string
	}{
		{
			name:     "nil value gets the no-data color",
			value:    nil,
			breaks:   breaks,
			expected: NoDataColor,
		},
		{
			name:     "degenerate breaks fall back to the first palette color",
			value:    ptr(7),
			breaks:   []float64{5},
			expected: "#000000",
		},
		{
			name:     "value blends toward the next class color",
			value:    ptr(5),
			breaks:   breaks,
			expected: "#326419", // halfway between the two palette colors
		},
		{
			name:     "interval start uses the class color unblended",
			value:    ptr(0),
			breaks:   breaks,
			expected: "#000000",
		},
		{
			name:     "maximum value lands in the final class via epsilon",
			value:    ptr(20),
			breaks:   breaks,
			expected: "#64c832",
		},
		{
			name:     "value above all breaks falls back to the last color",
			value:    ptr(999),
			breaks:   breaks,
			expected: "#64c832",
		},
		{
			name:     "zero-width interval skips interpolation",
			value:    ptr(5),
			breaks:   []float64{5, 5, 10},
			expected: "#000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorFor(tt.value, tt.breaks, pal))
		})
	}
}

func TestColorForNoPalette(t *testing.T) {
	assert.Equal(t, NoDataColor, ColorFor(ptr(5), []float64{0, 10}, nil))
}
