package reader

import (
	"fmt"
	"time"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset"
	"go.ngs.io/ocean-s2z/internal/domain"
	"go.ngs.io/ocean-s2z/internal/s2z"
)

// query holds the index windows resolved for one call.
type query struct {
	tIdx       int
	time       time.Time
	cols, rows s2z.IndexWindow
	depth      s2z.DepthWindow
}

// GetVariables extracts the requested variables (standard names) at the
// dataset time nearest t, over the index window covering x/y plus the
// configured buffer. Fields with a sigma dimension are regridded onto the
// target depths bracketing z. An empty z means the surface.
//
// Requesting one component of a vector pair adds the other. The call fails
// as a whole on an unknown name or an unsupported variable rank.
func (r *Reader) GetVariables(requested []string, t time.Time, x, y, z []float64) (*domain.ResultSet, error) {
	start := time.Now()

	if len(x) == 0 || len(y) == 0 {
		return nil, domain.ErrEmptyQuery
	}
	if len(z) == 0 {
		z = []float64{0}
	}

	names, err := r.resolveNames(requested)
	if err != nil {
		return nil, err
	}

	q := query{}
	q.tIdx, q.time, err = r.NearestTime(t)
	if err != nil {
		return nil, err
	}
	q.cols, q.rows, err = s2z.HorizontalWindow(r.grid, x, y, r.opts.Buffer, r.opts.Clipped)
	if err != nil {
		return nil, err
	}
	q.depth = s2z.ResolveDepthWindow(z, domain.TargetDepths, r.opts.VerticalBuffer, r.numLayers)
	r.log.Debugw("Resolved query window",
		"cols", q.cols, "rows", q.rows, "layers", q.depth.Layers, "levels", q.depth.Levels, "time", q.time)

	rs := &domain.ResultSet{
		Variables: make(map[string]*domain.Field, len(names)),
		X:         indexCoords(q.cols),
		Y:         indexCoords(q.rows),
		Z:         append([]float64(nil), domain.TargetDepths[q.depth.Levels.Start:q.depth.Levels.End]...),
		Time:      q.time,
	}

	for _, name := range names {
		f, err := r.extract(name, q)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", name, err)
		}
		// A window of at most two target levels collapses over its first
		// two axes, pairing level i with row i. This only lines up with the
		// query when the level and row counts happen to match.
		if q.depth.Degenerate() && f.Rank() > 1 {
			f = f.Diagonal()
		}
		rs.Variables[name] = f.AtLeast2D()
	}

	for name, f := range rs.Variables {
		if domain.IsNaNSanitized(name) {
			s2z.NaNToNum(f)
		}
	}
	for _, name := range requested {
		if f, ok := rs.Variables[name]; ok {
			s2z.NaNToNum(f)
		}
	}

	r.log.Debugw("Extracted variables", "variables", names, "elapsed", time.Since(start))
	return rs, nil
}

// resolveNames completes vector pairs and validates every name before any
// data is read. Partners added for a pair are skipped when the dataset
// lacks them.
func (r *Reader) resolveNames(requested []string) ([]string, error) {
	asked := make(map[string]bool, len(requested))
	for _, name := range requested {
		asked[name] = true
	}

	all := domain.CompleteVectorPairs(requested)
	names := make([]string, 0, len(all))
	for _, name := range all {
		e, ok := r.catalog[name]
		switch {
		case !ok && !asked[name]:
			r.log.Debugw("Vector partner not in dataset", "variable", name)
			continue
		case !ok:
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownVariable, name)
		case name != domain.LandBinaryMask && !e.ok:
			return nil, fmt.Errorf("%w: %s has rank %d", domain.ErrUnsupportedShape, name, len(e.shape))
		}
		names = append(names, name)
	}
	return names, nil
}

func (r *Reader) extract(name string, q query) (*domain.Field, error) {
	rs, rl := q.rows.Start, q.rows.Len()
	cs, cl := q.cols.Start, q.cols.Len()

	if name == domain.LandBinaryMask {
		mask, err := r.landMask()
		if err != nil {
			return nil, err
		}
		return mask.Slice([]int{rs, cs}, []int{rl, cl})
	}

	e := r.catalog[name]
	v, err := r.ds.Var(e.native)
	if err != nil {
		return nil, err
	}

	switch e.kind {
	case domain.Static2D:
		return dataset.ReadField(v, []int{rs, cs}, []int{rl, cl})

	case domain.TimeVarying3D:
		f, err := dataset.ReadField(v, []int{q.tIdx, rs, cs}, []int{1, rl, cl})
		if err != nil {
			return nil, err
		}
		return f.Reshape(rl, cl)

	case domain.TimeDepth4D:
		return r.regrid(v, q)

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedShape, name)
	}
}

// regrid reads the sigma layers bracketing the target levels and
// interpolates them onto those levels.
func (r *Reader) regrid(v dataset.Variable, q query) (*domain.Field, error) {
	if r.coeffs == nil {
		return nil, fmt.Errorf("%w: %s has a sigma axis but the model has %d layer(s)",
			domain.ErrUnsupportedShape, v.Name(), r.numLayers)
	}
	c, err := r.coeffs.Coefficients()
	if err != nil {
		return nil, err
	}

	w := c.Window(q.depth.Levels, q.rows, q.cols)
	layers := readLayers(w, r.opts.VerticalBuffer, v.Shape()[1])
	rs, rl := q.rows.Start, q.rows.Len()
	cs, cl := q.cols.Start, q.cols.Len()
	f, err := dataset.ReadField(v,
		[]int{q.tIdx, layers.Start, rs, cs},
		[]int{1, layers.Len(), rl, cl})
	if err != nil {
		return nil, err
	}
	if f, err = f.Reshape(layers.Len(), rl, cl); err != nil {
		return nil, err
	}

	out, err := s2z.Regrid(f, w.Align(layers.Len()))
	if err != nil {
		return nil, err
	}
	s2z.MaskSentinels(out)
	return out, nil
}

// readLayers picks the sigma layers read for a regrid: the span bracketed by
// w, extended downwards by the vertical buffer. Layers are stored bottom
// first, so the slice ends at the highest bracket and Align maps it exactly.
func readLayers(w *s2z.Window, verticalBuffer, n int) s2z.IndexRange {
	span := w.LayerSpan()
	span.End = min(span.End, n)
	span.Start = max(0, min(span.Start-max(verticalBuffer, 0), span.End-2))
	return span
}

func indexCoords(w s2z.IndexWindow) []float64 {
	out := make([]float64, 0, w.Len())
	for _, i := range w.Indices() {
		out = append(out, float64(i))
	}
	return out
}
