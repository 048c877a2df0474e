// Package native reads NetCDF classic and NetCDF-4 files without cgo.
package native

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-thrower"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset"
	"go.ngs.io/ocean-s2z/internal/adapter/dataset/memory"
)

// Dataset is a file opened with the pure Go reader.
type Dataset struct {
	g api.Group
}

// Open opens a NetCDF file.
func Open(path string) (dataset.Dataset, error) {
	g, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	return &Dataset{g: g}, nil
}

// Var implements dataset.Dataset.
func (d *Dataset) Var(name string) (dataset.Variable, error) {
	vg, err := d.g.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", name, dataset.ErrNotFound)
	}
	dims := vg.Dimensions()
	shape := make([]int, len(dims))
	for i, dim := range dims {
		n, ok := d.g.GetDimension(dim)
		if !ok {
			return nil, fmt.Errorf("variable %s: dimension %s: %w", name, dim, dataset.ErrNotFound)
		}
		shape[i] = int(n) //nolint:gosec // G115: NetCDF dimension lengths fit in int.
	}
	// The record dimension reports zero; its length is the record count.
	if len(shape) > 0 && shape[0] == 0 {
		shape[0] = int(vg.Len())
	}
	return &Var{vg: vg, name: name, shape: shape}, nil
}

// Dim implements dataset.Dataset.
func (d *Dataset) Dim(name string) (int, bool) {
	n, ok := d.g.GetDimension(name)
	return int(n), ok //nolint:gosec // G115: NetCDF dimension lengths fit in int.
}

// Close implements dataset.Dataset.
func (d *Dataset) Close() error {
	d.g.Close()
	return nil
}

// Var is a variable read through api.VarGetter.
type Var struct {
	vg    api.VarGetter
	name  string
	shape []int
}

// Name implements dataset.Variable.
func (v *Var) Name() string { return v.name }

// Shape implements dataset.Variable.
func (v *Var) Shape() []int { return append([]int(nil), v.shape...) }

// Read implements dataset.Variable. The reader slices only along the outer
// axis, so the inner block is cut from the outer slab in memory.
func (v *Var) Read(start, count []int) (values []float64, err error) {
	defer thrower.RecoverError(&err)

	if len(start) != len(v.shape) || len(count) != len(v.shape) {
		return nil, fmt.Errorf("rank mismatch for %s: shape %v start %v count %v", v.name, v.shape, start, count)
	}

	var raw any
	if len(v.shape) == 0 {
		raw, err = v.vg.Values()
	} else {
		raw, err = v.vg.GetSlice(int64(start[0]), int64(start[0]+count[0]))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", v.name, err)
	}
	flat, err := flatten(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", v.name, err)
	}

	if len(v.shape) > 0 {
		slab := append([]int{count[0]}, v.shape[1:]...)
		inner := append([]int{0}, start[1:]...)
		flat, err = memory.Hyperslab(slab, flat, inner, count)
		if err != nil {
			return nil, err
		}
	}
	dataset.Unpack(v, flat)
	return flat, nil
}

// TextAttr implements dataset.Variable.
func (v *Var) TextAttr(name string) (string, bool) {
	a, ok := v.vg.Attributes().Get(name)
	if !ok {
		return "", false
	}
	s, ok := a.(string)
	if !ok {
		return "", false
	}
	return strings.TrimRight(s, "\x00"), true
}

// FloatAttr implements dataset.Variable.
func (v *Var) FloatAttr(name string) (float64, bool) {
	a, ok := v.vg.Attributes().Get(name)
	if !ok {
		return 0, false
	}
	if _, isText := a.(string); isText {
		return 0, false
	}
	values, err := flatten(a)
	if err != nil || len(values) == 0 {
		return 0, false
	}
	return values[0], true
}

var errNotNumeric = errors.New("not a numeric value")

// flatten walks nested slices of any numeric element type in row-major order.
func flatten(x any) ([]float64, error) {
	var out []float64
	var walk func(rv reflect.Value) error
	walk = func(rv reflect.Value) error {
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				if err := walk(rv.Index(i)); err != nil {
					return err
				}
			}
		case reflect.Float32, reflect.Float64:
			out = append(out, rv.Float())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out = append(out, float64(rv.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			out = append(out, float64(rv.Uint()))
		case reflect.Interface:
			return walk(rv.Elem())
		default:
			return fmt.Errorf("%w: %s", errNotNumeric, rv.Type())
		}
		return nil
	}
	if err := walk(reflect.ValueOf(x)); err != nil {
		return nil, err
	}
	return out, nil
}
