package s2z

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// IndexRange is a half-open range [Start, End).
type IndexRange struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() int { return r.End - r.Start }

// DepthWindow is the vertical part of a query window.
type DepthWindow struct {
	// Layers is the layer window implied by the nearest table entries,
	// counted like table indices from the surface. Sigma layers are stored
	// bottom first, so regridding reads Window.LayerSpan instead.
	Layers IndexRange
	// Levels selects rows of the target depth table carried by the result.
	Levels IndexRange
}

// Degenerate reports whether the result collapses through the diagonal path.
func (w DepthWindow) Degenerate() bool { return w.Levels.Len() <= 2 }

// ResolveDepthWindow maps requested depths z (non-positive, metres) onto a
// sigma layer range and a window of the descending target depth table.
// z must be non-empty.
func ResolveDepthWindow(z, table []float64, verticalBuffer, numLayers int) DepthWindow {
	var w DepthWindow
	verticalBuffer = max(verticalBuffer, 0)

	// Layer window from the nearest table entry of every requested depth.
	lo, hi := math.MaxInt, math.MinInt
	diff := make([]float64, len(table))
	for _, d := range z {
		for i, t := range table {
			diff[i] = math.Abs(t - d)
		}
		idx := floats.MinIdx(diff)
		lo = min(lo, idx)
		hi = max(hi, idx)
	}
	w.Layers = IndexRange{Start: max(0, lo-verticalBuffer), End: min(numLayers, hi+verticalBuffer)}
	if w.Layers.Start >= numLayers {
		w.Layers.Start = max(numLayers-1, 0)
	}
	if w.Layers.End <= w.Layers.Start {
		w.Layers.End = min(numLayers, w.Layers.Start+1)
	}

	// Any surface request pins the layer window to the first two layers.
	for _, d := range z {
		if d == 0 {
			w.Layers = IndexRange{Start: 0, End: min(2, numLayers)}
			break
		}
	}

	w.Levels = levelWindow(z, table)
	return w
}

// levelWindow brackets [min(z), max(z)] in the target table using binary
// searches over the negated (ascending) table. A window holding at most one
// level is widened by one entry on each side and clamped to the table.
func levelWindow(z, table []float64) IndexRange {
	neg := make([]float64, len(table))
	for i, t := range table {
		neg[i] = -t
	}
	top := -floats.Max(z)
	bottom := -floats.Min(z)

	zi1 := sort.SearchFloat64s(neg, top)
	zi2 := sort.Search(len(neg), func(i int) bool { return neg[i] > bottom })
	zi1 = max(0, zi1)
	zi2 = min(len(table), zi2)

	if zi2-zi1 <= 1 {
		zi1--
		zi2++
	}
	return IndexRange{Start: max(0, zi1), End: min(len(table), zi2)}
}
