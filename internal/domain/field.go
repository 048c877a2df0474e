package domain

import "fmt"

// Field is a dense row-major N-D array with an optional mask.
// Mask has the same length as Values; a true entry marks a missing value.
type Field struct {
	Shape  []int
	Values []float64
	Mask   []bool
}

// NewField wraps values in a field of the given shape.
func NewField(shape []int, values []float64) (*Field, error) {
	if size := shapeSize(shape); size != len(values) {
		return nil, fmt.Errorf("shape %v holds %d values, got %d", shape, size, len(values))
	}
	return &Field{
		Shape:  append([]int(nil), shape...),
		Values: values,
		Mask:   make([]bool, len(values)),
	}, nil
}

// Scalar returns a rank-0 field holding v.
func Scalar(v float64) *Field {
	return &Field{Shape: []int{}, Values: []float64{v}, Mask: []bool{false}}
}

// Rank returns the number of dimensions.
func (f *Field) Rank() int { return len(f.Shape) }

// Size returns the number of elements.
func (f *Field) Size() int { return len(f.Values) }

// At returns the element at the given multi-index.
func (f *Field) At(idx ...int) float64 {
	return f.Values[f.offset(idx)]
}

// Set stores v at the given multi-index.
func (f *Field) Set(v float64, idx ...int) {
	f.Values[f.offset(idx)] = v
}

func (f *Field) offset(idx []int) int {
	if len(idx) != len(f.Shape) {
		panic(fmt.Sprintf("field: index rank %d, field rank %d", len(idx), len(f.Shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= f.Shape[d] {
			panic(fmt.Sprintf("field: index %d out of range for axis %d of size %d", i, d, f.Shape[d]))
		}
		off = off*f.Shape[d] + i
	}
	return off
}

// Reshape returns a view of the same values with a new shape.
func (f *Field) Reshape(shape ...int) (*Field, error) {
	if shapeSize(shape) != len(f.Values) {
		return nil, fmt.Errorf("cannot reshape %v into %v", f.Shape, shape)
	}
	return &Field{Shape: append([]int(nil), shape...), Values: f.Values, Mask: f.Mask}, nil
}

// Diagonal extracts the diagonal over the first two axes, following the
// numpy convention: the result drops axes 0 and 1 and appends a final axis
// of length min(Shape[0], Shape[1]), so out[r..., i] = f[i, i, r...].
func (f *Field) Diagonal() *Field {
	if f.Rank() < 2 {
		return f
	}
	n0, n1 := f.Shape[0], f.Shape[1]
	n := min(n0, n1)
	rest := f.Shape[2:]
	inner := shapeSize(rest)

	shape := append(append([]int(nil), rest...), n)
	out := &Field{
		Shape:  shape,
		Values: make([]float64, inner*n),
		Mask:   make([]bool, inner*n),
	}
	for r := 0; r < inner; r++ {
		for i := 0; i < n; i++ {
			src := (i*n1+i)*inner + r
			out.Values[r*n+i] = f.Values[src]
			out.Mask[r*n+i] = f.Mask != nil && f.Mask[src]
		}
	}
	return out
}

// Slice copies the block [start, start+count) into a new field shaped like
// count.
func (f *Field) Slice(start, count []int) (*Field, error) {
	shape := f.Shape
	if len(start) != len(shape) || len(count) != len(shape) {
		return nil, fmt.Errorf("slice rank mismatch: shape %v start %v count %v", shape, start, count)
	}
	for d := range shape {
		if start[d] < 0 || count[d] < 0 || start[d]+count[d] > shape[d] {
			return nil, fmt.Errorf("slice [%d, %d) outside axis %d of size %d", start[d], start[d]+count[d], d, shape[d])
		}
	}
	total := shapeSize(count)
	out := &Field{
		Shape:  append([]int(nil), count...),
		Values: make([]float64, 0, total),
		Mask:   make([]bool, 0, total),
	}
	if total == 0 {
		return out, nil
	}

	idx := make([]int, len(shape))
	for {
		off := 0
		for d := range shape {
			off = off*shape[d] + start[d] + idx[d]
		}
		out.Values = append(out.Values, f.Values[off])
		out.Mask = append(out.Mask, f.Mask != nil && f.Mask[off])

		// Odometer, last axis fastest.
		d := len(shape) - 1
		for ; d >= 0; d-- {
			idx[d]++
			if idx[d] < count[d] {
				break
			}
			idx[d] = 0
		}
		if d < 0 {
			return out, nil
		}
	}
}

// AtLeast2D prepends unit axes until the field has rank two.
func (f *Field) AtLeast2D() *Field {
	if f.Rank() >= 2 {
		return f
	}
	shape := append([]int(nil), f.Shape...)
	for len(shape) < 2 {
		shape = append([]int{1}, shape...)
	}
	return &Field{Shape: shape, Values: f.Values, Mask: f.Mask}
}

func shapeSize(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}
