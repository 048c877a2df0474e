// Package cdf reads model output through the NetCDF C library.
package cdf

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset"
)

// Dataset is a NetCDF file opened read-only.
type Dataset struct {
	nc netcdf.Dataset
}

// Open opens a NetCDF file.
func Open(path string) (dataset.Dataset, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	return &Dataset{nc: nc}, nil
}

// Var implements dataset.Dataset.
func (d *Dataset) Var(name string) (dataset.Variable, error) {
	v, err := d.nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", name, dataset.ErrNotFound)
	}
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions of %s: %w", name, err)
	}
	shape := make([]int, len(dims))
	for i, dim := range dims {
		n, err := dim.Len()
		if err != nil {
			return nil, fmt.Errorf("failed to get dim%d length of %s: %w", i, name, err)
		}
		shape[i] = int(n) //nolint:gosec // G115: NetCDF dimension lengths fit in int.
	}
	return &Var{v: v, name: name, shape: shape}, nil
}

// Dim implements dataset.Dataset.
func (d *Dataset) Dim(name string) (int, bool) {
	dim, err := d.nc.Dim(name)
	if err != nil {
		return 0, false
	}
	n, err := dim.Len()
	if err != nil {
		return 0, false
	}
	return int(n), true //nolint:gosec // G115: NetCDF dimension lengths fit in int.
}

// Close implements dataset.Dataset.
func (d *Dataset) Close() error {
	return d.nc.Close()
}

// Var is a NetCDF variable.
type Var struct {
	v     netcdf.Var
	name  string
	shape []int
}

// Name implements dataset.Variable.
func (v *Var) Name() string { return v.name }

// Shape implements dataset.Variable.
func (v *Var) Shape() []int { return append([]int(nil), v.shape...) }

// Read implements dataset.Variable. Values are unpacked with scale_factor
// and add_offset when present.
func (v *Var) Read(start, count []int) ([]float64, error) {
	if len(start) != len(v.shape) || len(count) != len(v.shape) {
		return nil, fmt.Errorf("rank mismatch for %s: shape %v start %v count %v", v.name, v.shape, start, count)
	}
	total := 1
	for _, c := range count {
		total *= c
	}
	if total == 0 {
		return []float64{}, nil
	}

	var (
		values []float64
		err    error
	)
	if len(v.shape) == 0 {
		values, err = readAll(v.v, 1)
	} else {
		values, err = readSlice(v.v, toUint64(start), toUint64(count), total)
	}
	if err != nil {
		return nil, err
	}
	dataset.Unpack(v, values)
	return values, nil
}

// TextAttr implements dataset.Variable.
func (v *Var) TextAttr(name string) (string, bool) {
	a := v.v.Attr(name)
	n, err := a.Len()
	if err != nil || n == 0 {
		return "", false
	}
	t, err := a.Type()
	if err != nil || t != netcdf.CHAR {
		return "", false
	}
	buf := make([]byte, n)
	if err := a.ReadBytes(buf); err != nil {
		return "", false
	}
	// C strings may carry a trailing NUL.
	for len(buf) > 0 && buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf), true
}

// FloatAttr implements dataset.Variable.
func (v *Var) FloatAttr(name string) (float64, bool) {
	a := v.v.Attr(name)
	n, err := a.Len()
	if err != nil || n == 0 {
		return 0, false
	}
	buf64 := make([]float64, n)
	if err := a.ReadFloat64s(buf64); err == nil {
		return buf64[0], true
	}
	buf32 := make([]float32, n)
	if err := a.ReadFloat32s(buf32); err == nil {
		return float64(buf32[0]), true
	}
	bufi := make([]int32, n)
	if err := a.ReadInt32s(bufi); err == nil {
		return float64(bufi[0]), true
	}
	bufs := make([]int16, n)
	if err := a.ReadInt16s(bufs); err == nil {
		return float64(bufs[0]), true
	}
	return 0, false
}

func toUint64(v []int) []uint64 {
	out := make([]uint64, len(v))
	for i, x := range v {
		out[i] = uint64(x) //nolint:gosec // G115: hyperslab indices are non-negative.
	}
	return out
}

// readSlice reads a hyperslab of any supported numeric type as float64.
func readSlice(v netcdf.Var, start, count []uint64, total int) ([]float64, error) {
	varType, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get variable type: %w", err)
	}

	out := make([]float64, total)
	switch varType {
	case netcdf.DOUBLE:
		if err := v.ReadFloat64Slice(out, start, count); err != nil {
			return nil, fmt.Errorf("failed to read float64 subset: %w", err)
		}
	case netcdf.FLOAT:
		buf := make([]float32, total)
		if err := v.ReadFloat32Slice(buf, start, count); err != nil {
			return nil, fmt.Errorf("failed to read float32 subset: %w", err)
		}
		for i, x := range buf {
			out[i] = float64(x)
		}
	case netcdf.INT:
		buf := make([]int32, total)
		if err := v.ReadInt32Slice(buf, start, count); err != nil {
			return nil, fmt.Errorf("failed to read int32 subset: %w", err)
		}
		for i, x := range buf {
			out[i] = float64(x)
		}
	case netcdf.SHORT:
		buf := make([]int16, total)
		if err := v.ReadInt16Slice(buf, start, count); err != nil {
			return nil, fmt.Errorf("failed to read int16 subset: %w", err)
		}
		for i, x := range buf {
			out[i] = float64(x)
		}
	case netcdf.BYTE, netcdf.UBYTE, netcdf.CHAR, netcdf.USHORT, netcdf.UINT, netcdf.INT64, netcdf.UINT64, netcdf.STRING:
		return nil, fmt.Errorf("unsupported data type: %v (expected DOUBLE, FLOAT, INT, or SHORT)", varType)
	default:
		return nil, fmt.Errorf("unsupported data type: %v", varType)
	}
	return out, nil
}

// readAll reads a whole (scalar) variable as float64.
func readAll(v netcdf.Var, total int) ([]float64, error) {
	varType, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get variable type: %w", err)
	}

	out := make([]float64, total)
	switch varType {
	case netcdf.DOUBLE:
		if err := v.ReadFloat64s(out); err != nil {
			return nil, err
		}
	case netcdf.FLOAT:
		buf := make([]float32, total)
		if err := v.ReadFloat32s(buf); err != nil {
			return nil, err
		}
		for i, x := range buf {
			out[i] = float64(x)
		}
	case netcdf.INT:
		buf := make([]int32, total)
		if err := v.ReadInt32s(buf); err != nil {
			return nil, err
		}
		for i, x := range buf {
			out[i] = float64(x)
		}
	case netcdf.SHORT:
		buf := make([]int16, total)
		if err := v.ReadInt16s(buf); err != nil {
			return nil, err
		}
		for i, x := range buf {
			out[i] = float64(x)
		}
	default:
		return nil, fmt.Errorf("unsupported var type: %v", varType)
	}
	return out, nil
}
