// Package classify computes natural-breaks classifications for the
// dashboard's statistical attributes and caches them per dataset.
package classify

import (
	"math"
	"sort"
)

// topEpsilon widens the final class interval so a value exactly equal to
// the maximum break still lands in the last class.
const topEpsilon = 0.0001

// ComputeBreaks returns classification thresholds for values using an
// approximate natural-breaks heuristic: sorted unique values are sampled
// at equal index steps, with a linear resampling fallback when
// deduplication shrinks the result below classCount+1 entries.
//
// This is intentionally not a variance-minimizing Jenks optimization.
// Legend boundaries and histograms depend on this exact bucketing.
func ComputeBreaks(values []float64, classCount int) []float64 {
	filtered := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.Float64s(filtered)
	min, max := filtered[0], filtered[len(filtered)-1]
	if min == max {
		return []float64{min, max}
	}

	unique := dedupe(filtered)
	if len(unique) <= classCount {
		return unique
	}

	classSize := len(unique) / classCount
	breaks := make([]float64, 0, classCount+1)
	breaks = append(breaks, min)
	for i := 1; i < classCount; i++ {
		idx := i * classSize
		if idx > len(unique)-1 {
			idx = len(unique) - 1
		}
		breaks = append(breaks, unique[idx])
	}
	breaks = append(breaks, max)

	sort.Float64s(breaks)
	breaks = dedupe(breaks)
	if len(breaks) < classCount+1 {
		breaks = resample(breaks, classCount)
	}
	return breaks
}

// resample stretches a short break list back to classCount+1 values by
// linear interpolation between neighboring breaks.
func resample(breaks []float64, classCount int) []float64 {
	out := make([]float64, 0, classCount+1)
	span := float64(len(breaks) - 1)
	for i := 0; i <= classCount; i++ {
		pos := float64(i) * span / float64(classCount)
		lo := int(math.Floor(pos))
		frac := pos - float64(lo)
		if lo+1 < len(breaks) {
			out = append(out, breaks[lo]+frac*(breaks[lo+1]-breaks[lo]))
		} else {
			out = append(out, breaks[lo])
		}
	}
	return out
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []float64) []float64 {
	out := make([]float64, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// IntervalIndex returns the class interval containing value. Intervals
// are scanned in order with inclusive upper bounds, so a value tied to a
// boundary resolves to the lower class; the last interval's bound gains
// topEpsilon so the global maximum is captured. Values above every break
// fall into the last interval. Returns -1 when breaks has fewer than two
// entries (nothing to classify).
func IntervalIndex(value float64, breaks []float64) int {
	if len(breaks) < 2 {
		return -1
	}
	last := len(breaks) - 2
	for i := 0; i <= last; i++ {
		upper := breaks[i+1]
		if i == last {
			upper += topEpsilon
		}
		if value <= upper {
			return i
		}
	}
	return last
}
