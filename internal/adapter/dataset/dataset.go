// Package dataset defines the narrow read-only view of a model output file
// that the regridding core depends on. Backends live in sub-packages.
package dataset

import (
	"errors"
	"fmt"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// ErrNotFound is returned when a variable or dimension does not exist.
var ErrNotFound = errors.New("not found")

// Dataset is an opened model output.
type Dataset interface {
	// Var returns the named variable, or an error wrapping ErrNotFound.
	Var(name string) (Variable, error)

	// Dim returns the length of the named dimension.
	Dim(name string) (int, bool)

	// Close releases the underlying file.
	Close() error
}

// Variable is a named N-D array inside a Dataset.
type Variable interface {
	Name() string

	// Shape returns the length of every dimension. Scalars have an empty shape.
	Shape() []int

	// Read returns the hyperslab [start, start+count) as float64 in row-major order.
	Read(start, count []int) ([]float64, error)

	// TextAttr returns a character attribute such as "units".
	TextAttr(name string) (string, bool)

	// FloatAttr returns the first value of a numeric attribute.
	FloatAttr(name string) (float64, bool)
}

// Opener opens a dataset by path.
type Opener func(path string) (Dataset, error)

// Rank returns the number of dimensions of v.
func Rank(v Variable) int { return len(v.Shape()) }

// ReadAll reads the whole variable into a field.
func ReadAll(v Variable) (*domain.Field, error) {
	shape := v.Shape()
	return ReadField(v, make([]int, len(shape)), shape)
}

// ReadField reads a hyperslab into a field shaped like count.
func ReadField(v Variable, start, count []int) (*domain.Field, error) {
	if len(start) != len(v.Shape()) || len(count) != len(v.Shape()) {
		return nil, fmt.Errorf("variable %s has rank %d, got start %v count %v", v.Name(), len(v.Shape()), start, count)
	}
	values, err := v.Read(start, count)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", v.Name(), err)
	}
	return domain.NewField(count, values)
}

// Unpack applies the CF scale_factor and add_offset attributes in place.
func Unpack(v Variable, values []float64) {
	scale, hasScale := v.FloatAttr("scale_factor")
	offset, hasOffset := v.FloatAttr("add_offset")
	if (!hasScale || scale == 0 || scale == 1) && (!hasOffset || offset == 0) {
		return
	}
	if !hasScale || scale == 0 {
		scale = 1
	}
	for i := range values {
		values[i] = values[i]*scale + offset
	}
}
