package domain

import (
	"reflect"
	"testing"
)

func TestFieldDiagonal(t *testing.T) {
	tests := []struct {
		name      string
		shape     []int
		wantShape []int
		want      []float64
	}{
		{"square 2d", []int{2, 2}, []int{2}, []float64{0, 3}},
		{"wide 2d", []int{2, 3}, []int{2}, []float64{0, 4}},
		{"tall 2d", []int{3, 2}, []int{2}, []float64{0, 3}},
		// out[r, i] = f[i, i, r]
		{"3d", []int{2, 2, 3}, []int{3, 2}, []float64{0, 9, 1, 10, 2, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := shapeSize(tt.shape)
			values := make([]float64, n)
			for i := range values {
				values[i] = float64(i)
			}
			f, err := NewField(tt.shape, values)
			if err != nil {
				t.Fatalf("NewField: %v", err)
			}
			d := f.Diagonal()
			if !reflect.DeepEqual(d.Shape, tt.wantShape) {
				t.Fatalf("shape = %v, want %v", d.Shape, tt.wantShape)
			}
			if !reflect.DeepEqual(d.Values, tt.want) {
				t.Errorf("values = %v, want %v", d.Values, tt.want)
			}
		})
	}
}

func TestFieldAtLeast2D(t *testing.T) {
	f, _ := NewField([]int{3}, []float64{1, 2, 3})
	if got := f.AtLeast2D().Shape; !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("1d shape = %v, want [1 3]", got)
	}
	if got := Scalar(4).AtLeast2D().Shape; !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("scalar shape = %v, want [1 1]", got)
	}
}

func TestFieldReshapeAndAt(t *testing.T) {
	f, _ := NewField([]int{2, 3}, []float64{0, 1, 2, 3, 4, 5})
	if got := f.At(1, 2); got != 5 {
		t.Errorf("At(1,2) = %v, want 5", got)
	}
	r, err := f.Reshape(3, 2)
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	if got := r.At(2, 0); got != 4 {
		t.Errorf("reshaped At(2,0) = %v, want 4", got)
	}
	if _, err := f.Reshape(4, 2); err == nil {
		t.Error("expected error for incompatible reshape")
	}
}

func TestNewFieldSizeMismatch(t *testing.T) {
	if _, err := NewField([]int{2, 2}, []float64{1}); err == nil {
		t.Error("expected size mismatch error")
	}
}
