package s2z

import (
	"math"
	"testing"

	"go.ngs.io/ocean-s2z/internal/domain"
)

func TestRegridSentinelBecomesNaN(t *testing.T) {
	// Two layers, two columns; column 1 carries a fill value in the top layer.
	f, _ := domain.NewField([]int{2, 1, 2}, []float64{1, 1, 3, 1e20})
	w := &Window{
		Levels:  1,
		Columns: 2,
		A:       []float64{0.5, 0.5},
		C:       []int{1, 1},
		I:       []int{0, 1},
		Outside: []bool{false, false},
	}
	got, err := Regrid(f, w)
	if err != nil {
		t.Fatalf("Regrid: %v", err)
	}
	if v := got.At(0, 0, 0); v != 2 {
		t.Errorf("column 0 = %v, want 2", v)
	}
	if v := got.At(0, 0, 1); v <= domain.SentinelThreshold {
		t.Fatalf("column 1 = %v, want a value above the sentinel threshold", v)
	}

	MaskSentinels(got)
	if !math.IsNaN(got.At(0, 0, 1)) {
		t.Errorf("column 1 after masking = %v, want NaN", got.At(0, 0, 1))
	}
	NaNToNum(got)
	if got.At(0, 0, 1) != 0 {
		t.Errorf("column 1 after NaNToNum = %v, want 0", got.At(0, 0, 1))
	}
	if got.At(0, 0, 0) != 2 {
		t.Errorf("column 0 changed by sanitizing: %v", got.At(0, 0, 0))
	}
}

func TestRegridOutsideYieldsFillValue(t *testing.T) {
	f, _ := domain.NewField([]int{2, 1}, []float64{4, 8})
	w := &Window{Levels: 2, Columns: 1, A: []float64{0.25, 0}, C: []int{1, 1}, I: []int{0}, Outside: []bool{false, true}}
	got, err := Regrid(f, w)
	if err != nil {
		t.Fatalf("Regrid: %v", err)
	}
	if got.Values[0] != 5 {
		t.Errorf("inside level = %v, want 5", got.Values[0])
	}
	if got.Values[1] != domain.FillValue {
		t.Errorf("outside level = %v, want fill value", got.Values[1])
	}
}

func TestRegridShapeErrors(t *testing.T) {
	one, _ := domain.NewField([]int{1, 2}, []float64{1, 2})
	w := &Window{Levels: 1, Columns: 2, A: []float64{0, 0}, C: []int{1, 1}, I: []int{0, 1}, Outside: []bool{false, false}}
	if _, err := Regrid(one, w); err == nil {
		t.Error("expected error for a single source layer")
	}

	two, _ := domain.NewField([]int{2, 3}, make([]float64, 6))
	if _, err := Regrid(two, w); err == nil {
		t.Error("expected error for a column count mismatch")
	}
}

func TestNaNToNum(t *testing.T) {
	f, _ := domain.NewField([]int{4}, []float64{math.NaN(), math.Inf(1), math.Inf(-1), 7})
	NaNToNum(f)
	want := []float64{0, math.MaxFloat64, -math.MaxFloat64, 7}
	for i := range want {
		if f.Values[i] != want[i] {
			t.Errorf("value %d = %v, want %v", i, f.Values[i], want[i])
		}
	}
}
