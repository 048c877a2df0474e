package s2z

import (
	"fmt"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// SigmaDepths returns the physical depth of every sigma layer in every water
// column, shaped (L,) + h.Shape:
//
//	z[k, m] = (S[k] - sigma[k]) + sigma[k] * H[m],  S[k] = -1 + (k + 0.5)/L
//
// sigma is ordered from the bottom layer (-1) to the surface (~0).
func SigmaDepths(sigma []float64, h *domain.Field) (*domain.Field, error) {
	layers := len(sigma)
	if layers == 0 {
		return nil, fmt.Errorf("empty sigma table")
	}
	cols := h.Size()

	values := make([]float64, layers*cols)
	for k, s := range sigma {
		center := -1.0 + (float64(k)+0.5)/float64(layers)
		offset := center - s
		row := values[k*cols : (k+1)*cols]
		for m, depth := range h.Values {
			row[m] = offset + s*depth
		}
	}

	shape := append([]int{layers}, h.Shape...)
	return domain.NewField(shape, values)
}

// LayerCenters returns the sigma value at the centre of each of n layers,
// bottom first. It is used when a dataset carries a sigma dimension but no
// sigma variable.
func LayerCenters(n int) []float64 {
	out := make([]float64, n)
	for k := range out {
		out[k] = (float64(k) + 0.5 - float64(n)) / float64(n)
	}
	return out
}
