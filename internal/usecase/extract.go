package usecase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.ngs.io/ocean-s2z/internal/adapter/interp"
	"go.ngs.io/ocean-s2z/internal/domain"
)

// VariableReader is the reader capability the use case depends on.
type VariableReader interface {
	Name() string
	Variables() []string
	Coverage() domain.Coverage
	Grid() *domain.Grid
	NumLayers() int
	GetVariables(requested []string, t time.Time, x, y, z []float64) (*domain.ResultSet, error)
}

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Request limits.
const (
	MaxVariables = 20
	MaxPoints    = 1000
)

// ExtractionRequest asks for variables at a set of native grid positions.
type ExtractionRequest struct {
	Variables []string
	Time      time.Time // zero selects the first model time
	X         []float64
	Y         []float64
	Z         []float64 // metres, non-positive; empty means the surface
}

// ExtractionResponse is the windowed result plus a profile at every point.
type ExtractionResponse struct {
	Reader    string                   `json:"reader"`
	Time      string                   `json:"time"`
	X         []float64                `json:"x"`
	Y         []float64                `json:"y"`
	Z         []float64                `json:"z"`
	Variables map[string]FieldResponse `json:"variables"`
	Profiles  []PointProfile           `json:"profiles"`
	Meta      map[string]string        `json:"meta"`
}

// FieldResponse is one extracted array in row-major order.
type FieldResponse struct {
	Shape  []int     `json:"shape"`
	Values []float64 `json:"values"`
}

// PointProfile holds the values interpolated at one requested position.
// Regridded variables carry one value per entry of ExtractionResponse.Z.
type PointProfile struct {
	X      float64              `json:"x"`
	Y      float64              `json:"y"`
	Lon    float64              `json:"lon"`
	Lat    float64              `json:"lat"`
	Values map[string][]float64 `json:"values"`
}

// ReaderInfo describes the dataset behind the use case.
type ReaderInfo struct {
	Name      string    `json:"name"`
	Variables []string  `json:"variables"`
	Start     string    `json:"start,omitempty"`
	End       string    `json:"end,omitempty"`
	TimeStep  string    `json:"time_step,omitempty"`
	Times     int       `json:"times"`
	Nx        int       `json:"nx"`
	Ny        int       `json:"ny"`
	Layers    int       `json:"layers"`
	ZLevels   []float64 `json:"zlevels"`
}

// ExtractionUseCase orchestrates extractions against one reader.
type ExtractionUseCase struct {
	reader VariableReader
}

// NewExtractionUseCase creates a new extraction use case.
func NewExtractionUseCase(reader VariableReader) *ExtractionUseCase {
	return &ExtractionUseCase{reader: reader}
}

// Validate checks if the request is valid.
func (r *ExtractionRequest) Validate() error {
	if len(r.Variables) == 0 {
		return errors.New("at least one variable must be requested")
	}
	if len(r.Variables) > MaxVariables {
		return fmt.Errorf("at most %d variables may be requested", MaxVariables)
	}
	if len(r.X) == 0 || len(r.Y) == 0 {
		return errors.New("x and y must be provided")
	}
	if len(r.X) != len(r.Y) {
		return fmt.Errorf("x and y must have the same length (%d != %d)", len(r.X), len(r.Y))
	}
	if len(r.X) > MaxPoints {
		return fmt.Errorf("too many points (%d), at most %d", len(r.X), MaxPoints)
	}
	for _, v := range append(append([]float64(nil), r.X...), r.Y...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("x and y must be finite")
		}
	}
	for _, z := range r.Z {
		if math.IsNaN(z) || z > 0 {
			return fmt.Errorf("depth %v must be zero or negative", z)
		}
	}
	return nil
}

// Execute runs one extraction.
func (uc *ExtractionUseCase) Execute(req ExtractionRequest) (*ExtractionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	rs, err := uc.reader.GetVariables(req.Variables, req.Time, req.X, req.Y, req.Z)
	if err != nil {
		return nil, err
	}

	resp := &ExtractionResponse{
		Reader:    uc.reader.Name(),
		X:         rs.X,
		Y:         rs.Y,
		Z:         rs.Z,
		Variables: make(map[string]FieldResponse, len(rs.Variables)),
		Profiles:  make([]PointProfile, len(req.X)),
		Meta:      map[string]string{"model": "ECOM", "vertical": "sigma to z"},
	}
	if !rs.Time.IsZero() {
		resp.Time = rs.Time.UTC().Format(time.RFC3339)
	}
	for name, f := range rs.Variables {
		resp.Variables[name] = FieldResponse{Shape: f.Shape, Values: f.Values}
	}

	grid := uc.reader.Grid()
	gridWindow := interp.Window{X: axis(grid.Nx()), Y: axis(grid.Ny())}
	window := interp.Window{X: rs.X, Y: rs.Y}
	collapsed := false
	for i := range req.X {
		p := PointProfile{X: req.X[i], Y: req.Y[i], Values: make(map[string][]float64, len(rs.Variables))}
		if lon, err := interp.Sample(grid.Lon, gridWindow, p.X, p.Y); err == nil {
			p.Lon = lon[0]
		}
		if lat, err := interp.Sample(grid.Lat, gridWindow, p.X, p.Y); err == nil {
			p.Lat = lat[0]
		}
		for name, f := range rs.Variables {
			values, err := interp.Sample(f, window, p.X, p.Y)
			if errors.Is(err, interp.ErrShape) {
				collapsed = true
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to sample %s: %w", name, err)
			}
			p.Values[name] = values
		}
		resp.Profiles[i] = p
	}
	if collapsed {
		resp.Meta["profiles"] = "omitted for variables collapsed over a window of two depth levels or fewer"
	}
	return resp, nil
}

// Info describes the reader.
func (uc *ExtractionUseCase) Info() ReaderInfo {
	c := uc.reader.Coverage()
	g := uc.reader.Grid()
	info := ReaderInfo{
		Name:      uc.reader.Name(),
		Variables: uc.reader.Variables(),
		Times:     len(c.Times),
		Nx:        g.Nx(),
		Ny:        g.Ny(),
		Layers:    uc.reader.NumLayers(),
		ZLevels:   domain.TargetDepths,
	}
	if len(c.Times) > 0 {
		info.Start = c.Start.UTC().Format(time.RFC3339)
		info.End = c.End.UTC().Format(time.RFC3339)
	}
	if c.TimeStep > 0 {
		info.TimeStep = c.TimeStep.String()
	}
	return info
}

func axis(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
