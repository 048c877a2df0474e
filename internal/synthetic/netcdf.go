package synthetic

import (
	"fmt"

	"github.com/fhs/go-netcdf/netcdf"
)

type ncVar struct {
	name   string
	dims   []netcdf.Dim
	values []float64
	double bool
}

// WriteNetCDF writes the model as an ECOM-style NetCDF file. When withLonLat
// is false the lon/lat variables are omitted, as in outputs that need a
// separate grid file.
func (m *Model) WriteNetCDF(path string, withLonLat bool) (err error) {
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("failed to create NetCDF file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	c := m.Config
	timeDim, err := f.AddDim("time", uint64(c.Times)) //nolint:gosec // G115: small positive sizes.
	if err != nil {
		return err
	}
	sigmaDim, err := f.AddDim("sigma", uint64(c.Layers)) //nolint:gosec // G115: small positive sizes.
	if err != nil {
		return err
	}
	yDim, err := f.AddDim("y", uint64(c.Ny)) //nolint:gosec // G115: small positive sizes.
	if err != nil {
		return err
	}
	xDim, err := f.AddDim("x", uint64(c.Nx)) //nolint:gosec // G115: small positive sizes.
	if err != nil {
		return err
	}

	horiz := []netcdf.Dim{yDim, xDim}
	surf := []netcdf.Dim{timeDim, yDim, xDim}
	vol := []netcdf.Dim{timeDim, sigmaDim, yDim, xDim}
	vars := []ncVar{
		{"time", []netcdf.Dim{timeDim}, m.Time, true},
		{"sigma", []netcdf.Dim{sigmaDim}, m.Sigma, true},
		{"depth", horiz, m.Depth, false},
		{"FSM", horiz, m.FSM, false},
		{"elev", surf, m.Elev, false},
		{"wu", surf, m.WU, false},
		{"wv", surf, m.WV, false},
		{"u", vol, m.U, false},
		{"v", vol, m.V, false},
		{"temp", vol, m.Temp, false},
		{"salt", vol, m.Salt, false},
	}
	if withLonLat {
		vars = append(vars,
			ncVar{"lon", horiz, m.Lon, true},
			ncVar{"lat", horiz, m.Lat, true},
		)
	}

	handles := make([]netcdf.Var, len(vars))
	for i, v := range vars {
		t := netcdf.FLOAT
		if v.double {
			t = netcdf.DOUBLE
		}
		handles[i], err = f.AddVar(v.name, t, v.dims)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", v.name, err)
		}
	}
	if err := handles[0].Attr("units").WriteBytes([]byte(m.TimeUnits())); err != nil {
		return fmt.Errorf("failed to write time units: %w", err)
	}

	if err := f.EndDef(); err != nil {
		return fmt.Errorf("enddef: %w", err)
	}

	for i, v := range vars {
		if v.double {
			err = handles[i].WriteFloat64s(v.values)
		} else {
			err = handles[i].WriteFloat32s(toFloat32(v.values))
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", v.name, err)
		}
	}
	return nil
}

// WriteGridFile writes only the lon/lat arrays.
func (m *Model) WriteGridFile(path string) (err error) {
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return fmt.Errorf("failed to create grid file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	yDim, err := f.AddDim("y", uint64(m.Config.Ny)) //nolint:gosec // G115: small positive sizes.
	if err != nil {
		return err
	}
	xDim, err := f.AddDim("x", uint64(m.Config.Nx)) //nolint:gosec // G115: small positive sizes.
	if err != nil {
		return err
	}
	vlon, err := f.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{yDim, xDim})
	if err != nil {
		return err
	}
	vlat, err := f.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{yDim, xDim})
	if err != nil {
		return err
	}
	if err := f.EndDef(); err != nil {
		return fmt.Errorf("enddef: %w", err)
	}
	if err := vlon.WriteFloat64s(m.Lon); err != nil {
		return fmt.Errorf("write lon: %w", err)
	}
	if err := vlat.WriteFloat64s(m.Lat); err != nil {
		return fmt.Errorf("write lat: %w", err)
	}
	return nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
