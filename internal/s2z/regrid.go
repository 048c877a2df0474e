package s2z

import (
	"fmt"
	"math"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// Regrid interpolates a sigma-space slice f, shaped [N, ...horizontal], onto
// the target levels of w:
//
//	R[k, m] = (1 - A[k, m]) * F[C[k, m]-1, m] + A[k, m] * F[C[k, m], m]
//
// w must already be aligned to f (see Window.Align). Levels flagged as
// outside the water column yield domain.FillValue. The result is shaped
// [w.Levels, ...horizontal].
func Regrid(f *domain.Field, w *Window) (*domain.Field, error) {
	if f.Rank() < 1 || f.Shape[0] < 2 {
		return nil, fmt.Errorf("regrid needs at least two source layers, got shape %v", f.Shape)
	}
	n := f.Shape[0]
	m := f.Size() / n
	if m != w.Columns {
		return nil, fmt.Errorf("field has %d columns, coefficients have %d", m, w.Columns)
	}

	out := make([]float64, w.Levels*m)
	for k := 0; k < w.Levels; k++ {
		for col := 0; col < m; col++ {
			idx := k*m + col
			if w.Outside[idx] {
				out[idx] = domain.FillValue
				continue
			}
			c := w.C[idx]
			if c >= n {
				return nil, fmt.Errorf("bracketing layer %d outside %d source layers", c, n)
			}
			a := w.A[idx]
			i := w.I[col]
			out[idx] = (1-a)*f.Values[(c-1)*m+i] + a*f.Values[c*m+i]
		}
	}

	shape := append([]int{w.Levels}, f.Shape[1:]...)
	return domain.NewField(shape, out)
}

// MaskSentinels replaces values whose magnitude exceeds
// domain.SentinelThreshold with NaN, in place.
func MaskSentinels(f *domain.Field) {
	for i, v := range f.Values {
		if math.Abs(v) > domain.SentinelThreshold {
			f.Values[i] = math.NaN()
		}
	}
}

// NaNToNum replaces NaN with zero and infinities with the largest finite
// values, in place.
func NaNToNum(f *domain.Field) {
	for i, v := range f.Values {
		switch {
		case math.IsNaN(v):
			f.Values[i] = 0
		case math.IsInf(v, 1):
			f.Values[i] = math.MaxFloat64
		case math.IsInf(v, -1):
			f.Values[i] = -math.MaxFloat64
		}
	}
}
