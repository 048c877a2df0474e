// Package reader implements the ECOM sigma-to-z reader: it opens a model
// output, builds the grid, sigma and bathymetry state once, and serves
// windowed, depth-regridded extractions through GetVariables.
package reader

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset"
	"go.ngs.io/ocean-s2z/internal/adapter/dataset/cdf"
	"go.ngs.io/ocean-s2z/internal/adapter/dataset/native"
	"go.ngs.io/ocean-s2z/internal/adapter/gridfile"
	"go.ngs.io/ocean-s2z/internal/domain"
	"go.ngs.io/ocean-s2z/internal/s2z"
)

// Backends accepted by Options.Backend.
const (
	BackendCDF    = "cdf"
	BackendNative = "native"
)

// Options configures a Reader.
type Options struct {
	// Name labels the reader; defaults to the file path.
	Name string
	// GridFile supplies lon/lat when the model output has none.
	GridFile string
	// Backend selects the file library: BackendCDF (default) or BackendNative.
	Backend string

	Buffer         int // horizontal cells added around the query
	VerticalBuffer int // sigma layers added around the query
	Clipped        int // offset of a previously clipped sub-grid

	Logger *zap.SugaredLogger
}

// Opener returns the dataset opener for backend.
func Opener(backend string) (dataset.Opener, error) {
	switch backend {
	case "", BackendCDF:
		return cdf.Open, nil
	case BackendNative:
		return native.Open, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", domain.ErrConfiguration, backend)
	}
}

type catalogEntry struct {
	native string
	shape  []int
	kind   domain.VarKind
	ok     bool // rank is one of 2, 3, 4
}

// Reader serves extractions from one ECOM output. It is safe for concurrent
// use once constructed.
type Reader struct {
	name string
	ds   dataset.Dataset
	opts Options
	log  *zap.SugaredLogger

	grid      *domain.Grid
	sigma     []float64
	depth     *domain.Field // [Ny, Nx]
	numLayers int
	coeffs    *s2z.Cache // nil for 2-D models
	times     []time.Time
	catalog   map[string]catalogEntry

	landOnce sync.Once
	land     *domain.Field
	landErr  error
}

// Open opens path with the configured backend and builds a Reader that owns
// the dataset.
func Open(path string, opts Options) (*Reader, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: need a model output file", domain.ErrConfiguration)
	}
	open, err := Opener(opts.Backend)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = path
	}
	logger(opts).Infow("Opening dataset", "path", path, "backend", opts.Backend)
	ds, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	r, err := New(ds, opts)
	if err != nil {
		_ = ds.Close()
		return nil, err
	}
	return r, nil
}

// New builds a Reader over an already opened dataset.
func New(ds dataset.Dataset, opts Options) (*Reader, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: no dataset", domain.ErrConfiguration)
	}
	r := &Reader{
		name: opts.Name,
		ds:   ds,
		opts: opts,
		log:  logger(opts),
	}
	if r.name == "" {
		r.name = "ECOM"
	}

	if err := r.loadGrid(); err != nil {
		return nil, err
	}
	if err := r.loadSigma(); err != nil {
		return nil, err
	}
	if err := r.loadDepth(); err != nil {
		return nil, err
	}
	if err := r.loadTimes(); err != nil {
		return nil, err
	}
	r.buildCatalog()

	if r.numLayers >= 2 {
		start := time.Now()
		depths, err := s2z.SigmaDepths(r.sigma, r.depth)
		if err != nil {
			return nil, fmt.Errorf("failed to compute sigma depths: %w", err)
		}
		r.coeffs = s2z.NewCache(depths, r.depth, domain.TargetDepths)
		r.log.Debugw("Computed sigma depth field", "layers", r.numLayers, "elapsed", time.Since(start))
	}
	return r, nil
}

func logger(opts Options) *zap.SugaredLogger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return zap.NewNop().Sugar()
}

func (r *Reader) loadGrid() error {
	g, err := gridfile.FromDataset(r.ds)
	if err == nil {
		r.grid = g
		return nil
	}
	if !errors.Is(err, gridfile.ErrMissing) {
		return fmt.Errorf("failed to read grid: %w", err)
	}
	if r.opts.GridFile == "" {
		return fmt.Errorf("%w: %s does not contain lon/lat arrays, supply a grid file", domain.ErrConfiguration, r.name)
	}
	open, err := Opener(r.opts.Backend)
	if err != nil {
		return err
	}
	g, err = gridfile.Load(r.opts.GridFile, open)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	r.grid = g
	return nil
}

// loadSigma reads the sigma table. Without a sigma variable the table is
// built from the sigma dimension; without either the model is 2-D.
func (r *Reader) loadSigma() error {
	if v, err := r.ds.Var(domain.SigmaVarName); err == nil {
		f, err := dataset.ReadAll(v)
		if err != nil {
			return fmt.Errorf("failed to read sigma: %w", err)
		}
		r.sigma = f.Values
		for i, s := range r.sigma {
			if math.IsNaN(s) {
				r.sigma[i] = 0
			}
		}
		r.numLayers = len(r.sigma)
		return nil
	}
	if n, ok := r.ds.Dim(domain.SigmaVarName); ok && n > 0 {
		r.log.Warnw("sigma not available in dataset, constructing from number of layers", "layers", n)
		r.sigma = make([]float64, n)
		for k := range r.sigma {
			r.sigma[k] = (float64(k) + 0.5 - float64(n)) / float64(n)
		}
		r.numLayers = n
		return nil
	}
	r.numLayers = 1
	return nil
}

// loadDepth reads the bathymetry; a scalar depth is broadcast over the grid.
func (r *Reader) loadDepth() error {
	v, err := r.ds.Var(domain.DepthVarName)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	f, err := dataset.ReadAll(v)
	if err != nil {
		return fmt.Errorf("failed to read depth: %w", err)
	}
	ny, nx := r.grid.Ny(), r.grid.Nx()
	switch {
	case f.Size() == 1:
		values := make([]float64, ny*nx)
		for i := range values {
			values[i] = f.Values[0]
		}
		f, _ = domain.NewField([]int{ny, nx}, values)
	case f.Rank() != 2 || f.Shape[0] != ny || f.Shape[1] != nx:
		return fmt.Errorf("%w: depth shape %v does not match grid %dx%d", domain.ErrConfiguration, f.Shape, ny, nx)
	}
	r.depth = f
	return nil
}

func (r *Reader) loadTimes() error {
	v, err := r.ds.Var(domain.TimeVarName)
	if err != nil {
		return nil
	}
	times, err := dataset.DecodeTimes(v)
	if err != nil {
		return fmt.Errorf("failed to decode time axis: %w", err)
	}
	r.times = times
	return nil
}

// buildCatalog records every mapped variable present in the dataset, with
// its layout fixed once here.
func (r *Reader) buildCatalog() {
	r.catalog = make(map[string]catalogEntry)
	for _, native := range domain.NativeNames() {
		v, err := r.ds.Var(native)
		if err != nil {
			continue
		}
		e := catalogEntry{native: native, shape: v.Shape()}
		e.kind, e.ok = domain.KindForRank(len(e.shape))
		r.catalog[domain.ECOMVariables[native]] = e
	}
}

// Name returns the reader label.
func (r *Reader) Name() string { return r.name }

// Grid returns the horizontal grid.
func (r *Reader) Grid() *domain.Grid { return r.grid }

// NumLayers returns the number of sigma layers, 1 for 2-D models.
func (r *Reader) NumLayers() int { return r.numLayers }

// Sigma returns a copy of the sigma table.
func (r *Reader) Sigma() []float64 { return append([]float64(nil), r.sigma...) }

// Variables lists the standard names available from the dataset.
func (r *Reader) Variables() []string {
	names := make([]string, 0, len(r.catalog))
	for name := range r.catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kind returns the layout of a cataloged variable.
func (r *Reader) Kind(name string) (domain.VarKind, bool) {
	e, ok := r.catalog[name]
	if !ok || !e.ok {
		return 0, false
	}
	return e.kind, true
}

// Coverage describes the time axis.
func (r *Reader) Coverage() domain.Coverage {
	c := domain.Coverage{Times: append([]time.Time(nil), r.times...)}
	if len(r.times) == 0 {
		return c
	}
	c.Start = r.times[0]
	c.End = r.times[len(r.times)-1]
	if len(r.times) > 1 {
		c.TimeStep = r.times[1].Sub(r.times[0])
	}
	return c
}

// NearestTime returns the index and value of the dataset time closest to t.
// A zero t selects the first time. Datasets without a time axis echo t.
func (r *Reader) NearestTime(t time.Time) (int, time.Time, error) {
	if len(r.times) == 0 {
		return 0, t, nil
	}
	if t.IsZero() {
		return 0, r.times[0], nil
	}
	if t.Before(r.times[0]) || t.After(r.times[len(r.times)-1]) {
		return 0, time.Time{}, fmt.Errorf("%w: %s not in [%s, %s]", domain.ErrTimeOutOfRange,
			t.Format(time.RFC3339), r.times[0].Format(time.RFC3339), r.times[len(r.times)-1].Format(time.RFC3339))
	}
	diff := make([]float64, len(r.times))
	for i, ti := range r.times {
		diff[i] = math.Abs(ti.Sub(t).Seconds())
	}
	idx := floats.MinIdx(diff)
	return idx, r.times[idx], nil
}

// Close releases the dataset.
func (r *Reader) Close() error {
	return r.ds.Close()
}

// landMask derives land = 1 - sea fraction for the whole domain, once.
func (r *Reader) landMask() (*domain.Field, error) {
	r.landOnce.Do(func() {
		v, err := r.ds.Var(domain.SeaFractionVarName)
		if err != nil {
			r.landErr = fmt.Errorf("%w: %w", domain.ErrUnknownVariable, err)
			return
		}
		f, err := dataset.ReadAll(v)
		if err != nil {
			r.landErr = err
			return
		}
		for i, s := range f.Values {
			f.Values[i] = 1 - s
		}
		r.land = f
	})
	return r.land, r.landErr
}
