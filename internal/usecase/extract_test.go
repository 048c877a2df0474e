package usecase

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.ngs.io/ocean-s2z/internal/domain"
	"go.ngs.io/ocean-s2z/internal/reader"
	"go.ngs.io/ocean-s2z/internal/synthetic"
)

func newUseCase(t *testing.T) (*synthetic.Model, *ExtractionUseCase) {
	t.Helper()
	m := synthetic.New(synthetic.DefaultConfig())
	r, err := reader.New(m.Memory(), reader.Options{Name: "synthetic", Buffer: 1, VerticalBuffer: 1})
	if err != nil {
		t.Fatalf("reader.New: %v", err)
	}
	return m, NewExtractionUseCase(r)
}

func TestExtractionRequestValidate(t *testing.T) {
	vars := []string{domain.SeaWaterTemperature}
	tests := []struct {
		name    string
		req     ExtractionRequest
		wantErr string
	}{
		{"valid", ExtractionRequest{Variables: vars, X: []float64{1}, Y: []float64{2}, Z: []float64{0, -10}}, ""},
		{"no variables", ExtractionRequest{X: []float64{1}, Y: []float64{2}}, "at least one variable"},
		{"no points", ExtractionRequest{Variables: vars}, "x and y must be provided"},
		{"unpaired", ExtractionRequest{Variables: vars, X: []float64{1, 2}, Y: []float64{2}}, "same length"},
		{"positive depth", ExtractionRequest{Variables: vars, X: []float64{1}, Y: []float64{2}, Z: []float64{5}}, "zero or negative"},
		{"nan position", ExtractionRequest{Variables: vars, X: []float64{math.NaN()}, Y: []float64{2}}, "finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExecuteProfiles(t *testing.T) {
	m, uc := newUseCase(t)
	resp, err := uc.Execute(ExtractionRequest{
		Variables: []string{domain.SeaWaterTemperature, domain.SeaSurfaceHeight},
		Time:      m.Config.Start.Add(time.Hour),
		X:         []float64{9.5, 10},
		Y:         []float64{4, 4.5},
		Z:         []float64{-10, -50},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if resp.Reader != "synthetic" || resp.Time != "2020-01-01T01:00:00Z" {
		t.Errorf("reader %q time %q", resp.Reader, resp.Time)
	}
	if len(resp.Z) != 5 || len(resp.Profiles) != 2 {
		t.Fatalf("Z = %v, %d profiles", resp.Z, len(resp.Profiles))
	}

	p := resp.Profiles[1]
	temp := p.Values[domain.SeaWaterTemperature]
	if len(temp) != len(resp.Z) {
		t.Fatalf("temperature profile has %d values, want %d", len(temp), len(resp.Z))
	}
	// Column (4, 10) and (5, 10) share a depth, so -50 m is exact at x = 10.
	if want := synthetic.Temperature(-50, 1); math.Abs(temp[4]-want) > 1e-9 {
		t.Errorf("temperature at -50 m = %v, want %v", temp[4], want)
	}
	if elev := p.Values[domain.SeaSurfaceHeight]; len(elev) != 1 {
		t.Errorf("elevation profile = %v, want a single value", elev)
	}

	wantLon := m.Config.Lon0 + 10*m.Config.Res
	wantLat := m.Config.Lat0 + 4.5*m.Config.Res
	if math.Abs(p.Lon-wantLon) > 1e-9 || math.Abs(p.Lat-wantLat) > 1e-9 {
		t.Errorf("position = (%v, %v), want (%v, %v)", p.Lon, p.Lat, wantLon, wantLat)
	}
	if _, ok := resp.Meta["profiles"]; ok {
		t.Error("profiles should not be reported as omitted")
	}
}

func TestExecuteCollapsedWindow(t *testing.T) {
	_, uc := newUseCase(t)
	resp, err := uc.Execute(ExtractionRequest{
		Variables: []string{domain.SeaWaterSalinity},
		X:         []float64{5},
		Y:         []float64{5},
		Z:         []float64{0},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := resp.Meta["profiles"]; !ok {
		t.Error("expected collapsed profiles to be reported")
	}
	if _, ok := resp.Variables[domain.SeaWaterSalinity]; !ok {
		t.Error("missing salinity field")
	}
}

func TestExecuteErrors(t *testing.T) {
	m, uc := newUseCase(t)
	_, err := uc.Execute(ExtractionRequest{
		Variables: []string{"sea_water_colour"},
		Time:      m.Config.Start,
		X:         []float64{1},
		Y:         []float64{1},
	})
	if !errors.Is(err, domain.ErrUnknownVariable) {
		t.Errorf("err = %v, want ErrUnknownVariable", err)
	}
}

func TestInfo(t *testing.T) {
	m, uc := newUseCase(t)
	info := uc.Info()
	if info.Name != "synthetic" || info.Nx != m.Config.Nx || info.Ny != m.Config.Ny || info.Layers != m.Config.Layers {
		t.Errorf("Info = %+v", info)
	}
	if info.Start != "2020-01-01T00:00:00Z" || info.TimeStep != "1h0m0s" || info.Times != m.Config.Times {
		t.Errorf("time coverage = %s %s %d", info.Start, info.TimeStep, info.Times)
	}
	if len(info.ZLevels) != len(domain.TargetDepths) {
		t.Errorf("zlevels = %v", info.ZLevels)
	}
}
