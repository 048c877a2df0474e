// Package interp samples regridded windows at arbitrary native positions.
package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// ErrShape is returned when a field's trailing axes do not match the window.
var ErrShape = errors.New("field does not span the window")

// Cell is one grid rectangle with values at its four corners.
// V10 is the value at (X1, Y0), V01 at (X0, Y1).
type Cell struct {
	X0, X1 float64
	Y0, Y1 float64

	V00, V10, V01, V11 float64
}

// At interpolates bilinearly inside c:
//
//	f(x,y) ≈ (1-t)(1-u)V00 + t(1-u)V10 + (1-t)u V01 + tu V11
//
// with t and u the normalized offsets, clamped to [0, 1]. A collapsed axis
// (X0 == X1 or Y0 == Y1) contributes only its first corner.
func (c Cell) At(x, y float64) float64 {
	t := fraction(x, c.X0, c.X1)
	u := fraction(y, c.Y0, c.Y1)
	return (1-t)*(1-u)*c.V00 +
		t*(1-u)*c.V10 +
		(1-t)*u*c.V01 +
		t*u*c.V11
}

func fraction(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
}

// Window is the horizontal extent of a regridded field: the native x of
// every column and the native y of every row, both strictly increasing.
type Window struct {
	X []float64
	Y []float64
}

// Validate checks that both axes are non-empty and strictly increasing.
func (w Window) Validate() error {
	if len(w.X) == 0 || len(w.Y) == 0 {
		return errors.New("window must have at least one column and one row")
	}
	for i := 1; i < len(w.X); i++ {
		if w.X[i] <= w.X[i-1] {
			return errors.New("x coordinates must be strictly increasing")
		}
	}
	for i := 1; i < len(w.Y); i++ {
		if w.Y[i] <= w.Y[i-1] {
			return errors.New("y coordinates must be strictly increasing")
		}
	}
	return nil
}

// bracket returns the cell [i, i+1] of axis containing v. Positions beyond
// the axis fall into the outermost cell, and a single-entry axis yields
// the collapsed cell [0, 0].
func bracket(axis []float64, v float64) (int, int) {
	if len(axis) == 1 {
		return 0, 0
	}
	i := sort.SearchFloat64s(axis, v) - 1
	i = max(0, min(i, len(axis)-2))
	return i, i + 1
}

// Sample interpolates f at (x, y). f is shaped [..., len(w.Y), len(w.X)];
// one value is returned per leading index, so a [levels, rows, cols] field
// yields a vertical profile and a [rows, cols] field a single value.
func Sample(f *domain.Field, w Window, x, y float64) ([]float64, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid window: %w", err)
	}
	r := f.Rank()
	if r < 2 || f.Shape[r-2] != len(w.Y) || f.Shape[r-1] != len(w.X) {
		return nil, fmt.Errorf("%w: shape %v, window %dx%d", ErrShape, f.Shape, len(w.Y), len(w.X))
	}

	i0, i1 := bracket(w.X, x)
	j0, j1 := bracket(w.Y, y)
	nx := len(w.X)
	plane := len(w.Y) * nx
	out := make([]float64, f.Size()/plane)
	for k := range out {
		base := k * plane
		c := Cell{
			X0: w.X[i0], X1: w.X[i1],
			Y0: w.Y[j0], Y1: w.Y[j1],
			V00: f.Values[base+j0*nx+i0],
			V10: f.Values[base+j0*nx+i1],
			V01: f.Values[base+j1*nx+i0],
			V11: f.Values[base+j1*nx+i1],
		}
		out[k] = c.At(x, y)
	}
	return out, nil
}
