// Package memory provides an in-memory dataset, used for synthetic runs and tests.
package memory

import (
	"fmt"
	"sort"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset"
	"go.ngs.io/ocean-s2z/internal/domain"
)

// Dataset holds variables and dimensions in memory.
type Dataset struct {
	vars map[string]*Var
	dims map[string]int
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{vars: make(map[string]*Var), dims: make(map[string]int)}
}

// Var is an in-memory variable.
type Var struct {
	name   string
	shape  []int
	values []float64
	text   map[string]string
	nums   map[string]float64
}

// Add stores a variable. len(values) must equal the product of shape.
func (d *Dataset) Add(name string, shape []int, values []float64) *Var {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n != len(values) {
		panic(fmt.Sprintf("memory: %s has shape %v but %d values", name, shape, len(values)))
	}
	v := &Var{
		name:   name,
		shape:  append([]int(nil), shape...),
		values: values,
		text:   make(map[string]string),
		nums:   make(map[string]float64),
	}
	d.vars[name] = v
	return v
}

// AddDim records a dimension length.
func (d *Dataset) AddDim(name string, n int) { d.dims[name] = n }

// SetText sets a character attribute and returns v for chaining.
func (v *Var) SetText(name, value string) *Var {
	v.text[name] = value
	return v
}

// SetFloat sets a numeric attribute and returns v for chaining.
func (v *Var) SetFloat(name string, value float64) *Var {
	v.nums[name] = value
	return v
}

// Names lists the stored variables in sorted order.
func (d *Dataset) Names() []string {
	names := make([]string, 0, len(d.vars))
	for n := range d.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Var implements dataset.Dataset.
func (d *Dataset) Var(name string) (dataset.Variable, error) {
	v, ok := d.vars[name]
	if !ok {
		return nil, fmt.Errorf("variable %s: %w", name, dataset.ErrNotFound)
	}
	return v, nil
}

// Dim implements dataset.Dataset.
func (d *Dataset) Dim(name string) (int, bool) {
	n, ok := d.dims[name]
	return n, ok
}

// Close implements dataset.Dataset.
func (d *Dataset) Close() error { return nil }

// Name implements dataset.Variable.
func (v *Var) Name() string { return v.name }

// Shape implements dataset.Variable.
func (v *Var) Shape() []int { return append([]int(nil), v.shape...) }

// TextAttr implements dataset.Variable.
func (v *Var) TextAttr(name string) (string, bool) {
	s, ok := v.text[name]
	return s, ok
}

// FloatAttr implements dataset.Variable.
func (v *Var) FloatAttr(name string) (float64, bool) {
	f, ok := v.nums[name]
	return f, ok
}

// Read implements dataset.Variable.
func (v *Var) Read(start, count []int) ([]float64, error) {
	return Hyperslab(v.shape, v.values, start, count)
}

// Hyperslab copies the block [start, start+count) out of a row-major array.
func Hyperslab(shape []int, values []float64, start, count []int) ([]float64, error) {
	f := &domain.Field{Shape: shape, Values: values}
	out, err := f.Slice(start, count)
	if err != nil {
		return nil, fmt.Errorf("hyperslab: %w", err)
	}
	return out.Values, nil
}
