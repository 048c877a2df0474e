package gridfile

import (
	"errors"
	"path/filepath"
	"testing"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset"
	"go.ngs.io/ocean-s2z/internal/adapter/dataset/cdf"
	"go.ngs.io/ocean-s2z/internal/adapter/dataset/memory"
	"go.ngs.io/ocean-s2z/internal/synthetic"
)

func TestLoadGridFile(t *testing.T) {
	m := synthetic.New(synthetic.DefaultConfig())
	path := filepath.Join(t.TempDir(), "grid.nc")
	if err := m.WriteGridFile(path); err != nil {
		t.Fatalf("WriteGridFile: %v", err)
	}

	g, err := Load(path, cdf.Open)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Nx() != m.Config.Nx || g.Ny() != m.Config.Ny {
		t.Fatalf("grid %dx%d, want %dx%d", g.Ny(), g.Nx(), m.Config.Ny, m.Config.Nx)
	}
	if got, want := g.Lon.At(2, 3), m.Lon[2*m.Config.Nx+3]; got != want {
		t.Errorf("lon[2,3] = %v, want %v", got, want)
	}
	if g.XMin != 0 || g.DeltaX != 1 || g.XMax() != float64(m.Config.Nx-1) {
		t.Errorf("unexpected extents xmin=%v dx=%v xmax=%v", g.XMin, g.DeltaX, g.XMax())
	}
}

func TestFromDatasetAxes(t *testing.T) {
	ds := memory.New()
	ds.Add("longitude", []int{3}, []float64{-48, -47, -46})
	ds.Add("latitude", []int{2}, []float64{-26, -25})

	g, err := FromDataset(ds)
	if err != nil {
		t.Fatalf("FromDataset: %v", err)
	}
	if g.Ny() != 2 || g.Nx() != 3 {
		t.Fatalf("grid %dx%d, want 2x3", g.Ny(), g.Nx())
	}
	if g.Lon.At(1, 2) != -46 || g.Lat.At(1, 2) != -25 {
		t.Errorf("meshgrid corner = (%v, %v)", g.Lon.At(1, 2), g.Lat.At(1, 2))
	}
}

func TestFromDatasetErrors(t *testing.T) {
	if _, err := FromDataset(memory.New()); !errors.Is(err, ErrMissing) {
		t.Errorf("empty dataset err = %v, want ErrMissing", err)
	}

	ds := memory.New()
	ds.Add("lon", []int{2, 3}, make([]float64, 6))
	ds.Add("lat", []int{3, 2}, make([]float64, 6))
	if _, err := FromDataset(ds); err == nil {
		t.Error("expected shape mismatch error")
	}

	failing := func(string) (dataset.Dataset, error) { return nil, errors.New("boom") }
	if _, err := Load("missing.nc", failing); err == nil {
		t.Error("expected open error")
	}
}
