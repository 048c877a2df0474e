// Package gridfile loads the horizontal longitude/latitude arrays of a model
// grid, either from the model output itself or from a separate grid file.
package gridfile

import (
	"errors"
	"fmt"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset"
	"go.ngs.io/ocean-s2z/internal/domain"
)

// Common variable names for grid coordinates.
var (
	latNames = []string{domain.LatitudeVarName, "latitude", "lat_rho", "LAT"}
	lonNames = []string{domain.LongitudeVarName, "longitude", "lon_rho", "LON"}
)

// ErrMissing is returned when a dataset holds no longitude/latitude pair.
var ErrMissing = errors.New("longitude/latitude arrays not found")

// Load opens path with open and reads its coordinate arrays.
func Load(path string, open dataset.Opener) (*domain.Grid, error) {
	ds, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid file: %w", err)
	}
	defer func() { _ = ds.Close() }()

	g, err := FromDataset(ds)
	if err != nil {
		return nil, fmt.Errorf("grid file %s: %w", path, err)
	}
	return g, nil
}

// FromDataset reads the coordinate arrays held by ds.
func FromDataset(ds dataset.Dataset) (*domain.Grid, error) {
	lat, err := readFirst(ds, latNames)
	if err != nil {
		return nil, err
	}
	lon, err := readFirst(ds, lonNames)
	if err != nil {
		return nil, err
	}
	return FromFields(lon, lat)
}

// FromFields builds an index grid from 2-D lon/lat arrays. 1-D axes are
// expanded to [len(lat), len(lon)].
func FromFields(lon, lat *domain.Field) (*domain.Grid, error) {
	switch {
	case lon.Rank() == 1 && lat.Rank() == 1:
		lon, lat = meshgrid(lon.Values, lat.Values)
	case lon.Rank() == 2 && lat.Rank() == 2:
		if lon.Shape[0] != lat.Shape[0] || lon.Shape[1] != lat.Shape[1] {
			return nil, fmt.Errorf("lon shape %v differs from lat shape %v", lon.Shape, lat.Shape)
		}
	default:
		return nil, fmt.Errorf("unsupported lon/lat ranks %d and %d", lon.Rank(), lat.Rank())
	}
	if lon.Size() == 0 {
		return nil, errors.New("empty grid")
	}
	return domain.NewIndexGrid(lon, lat), nil
}

func readFirst(ds dataset.Dataset, names []string) (*domain.Field, error) {
	for _, name := range names {
		v, err := ds.Var(name)
		if err != nil {
			continue
		}
		f, err := dataset.ReadAll(v)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w (tried: %v)", ErrMissing, names)
}

func meshgrid(x, y []float64) (lon, lat *domain.Field) {
	nx, ny := len(x), len(y)
	lonV := make([]float64, nx*ny)
	latV := make([]float64, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			lonV[j*nx+i] = x[i]
			latV[j*nx+i] = y[j]
		}
	}
	lon, _ = domain.NewField([]int{ny, nx}, lonV)
	lat, _ = domain.NewField([]int{ny, nx}, latV)
	return lon, lat
}
