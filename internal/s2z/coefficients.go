package s2z

import (
	"fmt"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// Coefficients holds vertical interpolation weights for every target level
// and every water column of the domain. Per-level arrays are laid out
// [level*Columns + column].
type Coefficients struct {
	Levels  int   // number of target levels
	Columns int   // number of water columns (Ny*Nx)
	Shape   []int // horizontal shape

	A       []float64 // blend weight in [0, 1]
	C       []int     // upper bracketing layer, in [1, layers-1]
	I       []int     // flattened column index (identity)
	Outside []bool    // target level below the seafloor or above the column
	KMax    []int     // populated target levels per column
}

// ComputeCoefficients brackets every target depth with the pair of sigma
// layers whose physical depths straddle it, for every column. depths is the
// SigmaDepths field ([L, ...horizontal]) and h the bathymetry it was built
// from.
func ComputeCoefficients(depths, h *domain.Field, targets []float64) (*Coefficients, error) {
	layers := depths.Shape[0]
	if layers < 2 {
		return nil, fmt.Errorf("need at least two sigma layers, got %d", layers)
	}
	cols := depths.Size() / layers
	if h.Size() != cols {
		return nil, fmt.Errorf("bathymetry has %d columns, depth field has %d", h.Size(), cols)
	}

	k := len(targets)
	c := &Coefficients{
		Levels:  k,
		Columns: cols,
		Shape:   append([]int(nil), depths.Shape[1:]...),
		A:       make([]float64, k*cols),
		C:       make([]int, k*cols),
		I:       make([]int, cols),
		Outside: make([]bool, k*cols),
		KMax:    make([]int, cols),
	}

	column := make([]float64, layers)
	for m := 0; m < cols; m++ {
		c.I[m] = m
		for l := 0; l < layers; l++ {
			column[l] = depths.Values[l*cols+m]
		}
		bottom := -h.Values[m]
		top := max(0, column[layers-1])

		for lev, z := range targets {
			// Number of layers lying below z gives the upper bracket.
			below := 0
			for _, s := range column {
				if s < z {
					below++
				}
			}
			upper := clamp(below, 1, layers-1)
			lo, hi := column[upper-1], column[upper]

			a := 0.0
			if hi != lo {
				a = (z - lo) / (hi - lo)
			}
			a = min(max(a, 0), 1)

			idx := lev*cols + m
			c.A[idx] = a
			c.C[idx] = upper
			c.Outside[idx] = h.Values[m] <= 0 || z < bottom || z > top
			if !c.Outside[idx] {
				c.KMax[m]++
			}
		}
	}
	return c, nil
}

// Window is the part of Coefficients covering one query. Arrays are laid out
// [level*Columns + column] over the window's own columns.
type Window struct {
	Levels  int
	Columns int
	A       []float64
	C       []int
	I       []int
	Outside []bool
}

// Window copies the coefficients for target levels in levels and the
// horizontal block rows x cols. The cache itself is not modified.
func (c *Coefficients) Window(levels IndexRange, rows, cols IndexWindow) *Window {
	nx := c.Shape[len(c.Shape)-1]
	n := rows.Len() * cols.Len()
	w := &Window{
		Levels:  levels.Len(),
		Columns: n,
		A:       make([]float64, 0, levels.Len()*n),
		C:       make([]int, 0, levels.Len()*n),
		I:       make([]int, n),
		Outside: make([]bool, 0, levels.Len()*n),
	}
	for lev := levels.Start; lev < levels.End; lev++ {
		for j := rows.Start; j <= rows.End; j++ {
			for i := cols.Start; i <= cols.End; i++ {
				idx := lev*c.Columns + j*nx + i
				w.A = append(w.A, c.A[idx])
				w.C = append(w.C, c.C[idx])
				w.Outside = append(w.Outside, c.Outside[idx])
			}
		}
	}
	for m := range w.I {
		w.I[m] = m
	}
	return w
}

// LayerSpan returns the sigma layers the window brackets, [min(C)-1, max(C)].
// A slice read over exactly this span, optionally extended downwards, keeps
// Align exact: its top layer is max(C).
func (w *Window) LayerSpan() IndexRange {
	if len(w.C) == 0 {
		return IndexRange{Start: 0, End: 2}
	}
	lo, hi := w.C[0], w.C[0]
	for _, v := range w.C {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return IndexRange{Start: lo - 1, End: hi + 1}
}

// Align re-biases the bracketing indices to a field slice holding only
// sourceLayers layers: C = max(1, C - max(C) + sourceLayers - 1).
func (w *Window) Align(sourceLayers int) *Window {
	out := *w
	out.C = make([]int, len(w.C))
	if len(w.C) == 0 {
		return &out
	}
	cmax := w.C[0]
	for _, v := range w.C {
		cmax = max(cmax, v)
	}
	for i, v := range w.C {
		out.C[i] = max(1, v-cmax+sourceLayers-1)
	}
	return &out
}
