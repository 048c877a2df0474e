package s2z

import (
	"errors"
	"math"
	"testing"

	"go.ngs.io/ocean-s2z/internal/domain"
)

func indexGrid(ny, nx int) *domain.Grid {
	lon, _ := domain.NewField([]int{ny, nx}, make([]float64, ny*nx))
	lat, _ := domain.NewField([]int{ny, nx}, make([]float64, ny*nx))
	return domain.NewIndexGrid(lon, lat)
}

func TestHorizontalWindow(t *testing.T) {
	g := indexGrid(20, 30)

	tests := []struct {
		name     string
		x, y     []float64
		buffer   int
		clipped  int
		wantCols IndexWindow
		wantRows IndexWindow
	}{
		{"interior", []float64{10.2, 12.7}, []float64{5.5}, 2, 0, IndexWindow{8, 14}, IndexWindow{3, 7}},
		{"no buffer", []float64{3}, []float64{4}, 0, 0, IndexWindow{3, 3}, IndexWindow{4, 4}},
		{"clipped low", []float64{0.5}, []float64{1}, 5, 0, IndexWindow{0, 5}, IndexWindow{0, 6}},
		{"clipped high", []float64{29}, []float64{19.9}, 3, 0, IndexWindow{26, 29}, IndexWindow{16, 19}},
		{"outside domain", []float64{100}, []float64{-50}, 1, 0, IndexWindow{29, 29}, IndexWindow{0, 0}},
		{"clip offset", []float64{4}, []float64{4}, 1, 2, IndexWindow{5, 7}, IndexWindow{5, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, err := HorizontalWindow(g, tt.x, tt.y, tt.buffer, tt.clipped)
			if err != nil {
				t.Fatalf("HorizontalWindow: %v", err)
			}
			if cols != tt.wantCols {
				t.Errorf("cols = %+v, want %+v", cols, tt.wantCols)
			}
			if rows != tt.wantRows {
				t.Errorf("rows = %+v, want %+v", rows, tt.wantRows)
			}
		})
	}
}

func TestHorizontalWindowContainment(t *testing.T) {
	g := indexGrid(7, 9)
	positions := []float64{-20, -1, 0, 0.4, 3, 6.9, 8, 8.99, 42,
		1e300, -1e300, math.Inf(1), math.Inf(-1), math.MaxFloat64}
	for buffer := 0; buffer < 12; buffer++ {
		for _, x := range positions {
			for _, y := range positions {
				cols, rows, err := HorizontalWindow(g, []float64{x}, []float64{y}, buffer, 0)
				if err != nil {
					t.Fatalf("HorizontalWindow: %v", err)
				}
				if cols.Start < 0 || cols.End > g.Nx()-1 || cols.Start > cols.End {
					t.Fatalf("cols %+v escape [0, %d] for x=%v buffer=%d", cols, g.Nx()-1, x, buffer)
				}
				if rows.Start < 0 || rows.End > g.Ny()-1 || rows.Start > rows.End {
					t.Fatalf("rows %+v escape [0, %d] for y=%v buffer=%d", rows, g.Ny()-1, y, buffer)
				}
			}
		}
	}
}

func TestHorizontalWindowHugePositions(t *testing.T) {
	g := indexGrid(20, 30)
	tests := []struct {
		name     string
		x, y     []float64
		clipped  int
		wantCols IndexWindow
		wantRows IndexWindow
	}{
		{"far east", []float64{1e300}, []float64{5}, 0, IndexWindow{29, 29}, IndexWindow{4, 6}},
		{"far west", []float64{-1e300}, []float64{5}, 0, IndexWindow{0, 0}, IndexWindow{4, 6}},
		{"span", []float64{-1e300, 1e300}, []float64{math.Inf(-1), math.Inf(1)}, 0, IndexWindow{0, 29}, IndexWindow{0, 19}},
		{"far east with offset", []float64{1e300}, []float64{1}, 3, IndexWindow{29, 29}, IndexWindow{3, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, err := HorizontalWindow(g, tt.x, tt.y, 1, tt.clipped)
			if err != nil {
				t.Fatalf("HorizontalWindow: %v", err)
			}
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("cols, rows = %+v, %+v, want %+v, %+v", cols, rows, tt.wantCols, tt.wantRows)
			}
			if n := len(cols.Indices()); n != cols.Len() || n < 1 {
				t.Errorf("cols.Indices() has %d entries, Len() = %d", n, cols.Len())
			}
		})
	}
}

func TestHorizontalWindowEmptyQuery(t *testing.T) {
	g := indexGrid(3, 3)
	if _, _, err := HorizontalWindow(g, nil, []float64{1}, 1, 0); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("empty x: err = %v, want ErrEmptyQuery", err)
	}
	if _, _, err := HorizontalWindow(g, []float64{1}, []float64{}, 1, 0); !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("empty y: err = %v, want ErrEmptyQuery", err)
	}
}

func TestIndexWindowIndices(t *testing.T) {
	w := IndexWindow{Start: 3, End: 6}
	got := w.Indices()
	if len(got) != 4 || got[0] != 3 || got[3] != 6 {
		t.Errorf("Indices() = %v, want [3 4 5 6]", got)
	}
}
