package s2z

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// IndexWindow is an inclusive, contiguous range of array indices.
type IndexWindow struct {
	Start int
	End   int // inclusive
}

// Len returns the number of indices in the window.
func (w IndexWindow) Len() int { return w.End - w.Start + 1 }

// Indices expands the window into its index sequence.
func (w IndexWindow) Indices() []int {
	out := make([]int, 0, w.Len())
	for i := w.Start; i <= w.End; i++ {
		out = append(out, i)
	}
	return out
}

// resolveAxis converts positions along one native axis into an index window
// widened by buffer and clipped to [0, n-1]. Out-of-range queries are
// clipped, never rejected.
func resolveAxis(pos []float64, origin, delta float64, n, buffer, clipped int) IndexWindow {
	lo := cellIndex(floats.Min(pos), origin, delta, n+buffer) + clipped - buffer
	hi := cellIndex(floats.Max(pos), origin, delta, n+buffer) + clipped + buffer
	w := IndexWindow{Start: clamp(lo, 0, n-1), End: clamp(hi, 0, n-1)}
	w.End = max(w.End, w.Start)
	return w
}

// cellIndex floors (v-origin)/delta, saturating at [-1-limit, limit] before
// the conversion to int so huge or infinite positions cannot overflow.
// NaN maps to cell 0.
func cellIndex(v, origin, delta float64, limit int) int {
	p := math.Floor((v - origin) / delta)
	if math.IsNaN(p) {
		return 0
	}
	p = math.Max(-1-float64(limit), math.Min(p, float64(limit)))
	return int(p)
}

// HorizontalWindow resolves requested native x/y positions into column and
// row windows on grid g. Both x and y must be non-empty.
func HorizontalWindow(g *domain.Grid, x, y []float64, buffer, clipped int) (cols, rows IndexWindow, err error) {
	if len(x) == 0 || len(y) == 0 {
		return IndexWindow{}, IndexWindow{}, domain.ErrEmptyQuery
	}
	buffer = max(buffer, 0)
	cols = resolveAxis(x, g.XMin, g.DeltaX, g.Nx(), buffer, clipped)
	rows = resolveAxis(y, g.YMin, g.DeltaY, g.Ny(), buffer, clipped)
	return cols, rows, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
