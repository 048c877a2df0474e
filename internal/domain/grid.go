package domain

import "time"

// TargetDepths are the absolute depths (metres, negative down) that sigma
// layers are regridded onto. Index 0 is the surface.
var TargetDepths = []float64{
	0, -5, -10, -15, -25, -30, -50, -75, -100, -150, -200,
	-250, -300, -400, -500, -600, -700, -800, -900, -1000, -1500,
	-2000,
}

// Grid describes the horizontal model grid. It is immutable once built.
type Grid struct {
	Lon *Field // [Ny, Nx]
	Lat *Field // [Ny, Nx]

	// Native index coordinates: x is the column, y the row.
	XMin, YMin     float64
	DeltaX, DeltaY float64
}

// NewIndexGrid returns a grid whose native coordinates are array indices.
func NewIndexGrid(lon, lat *Field) *Grid {
	return &Grid{Lon: lon, Lat: lat, DeltaX: 1, DeltaY: 1}
}

// Nx returns the number of columns.
func (g *Grid) Nx() int { return g.Lon.Shape[1] }

// Ny returns the number of rows.
func (g *Grid) Ny() int { return g.Lon.Shape[0] }

// XMax returns the largest native x coordinate.
func (g *Grid) XMax() float64 { return g.XMin + float64(g.Nx()-1)*g.DeltaX }

// YMax returns the largest native y coordinate.
func (g *Grid) YMax() float64 { return g.YMin + float64(g.Ny()-1)*g.DeltaY }

// ResultSet is the output of one extraction call.
type ResultSet struct {
	Variables map[string]*Field
	X         []float64 // native x of each returned column
	Y         []float64 // native y of each returned row
	Z         []float64 // target depths carried by regridded fields
	Time      time.Time
}

// Coverage describes the time axis of a dataset.
type Coverage struct {
	Start    time.Time
	End      time.Time
	TimeStep time.Duration // zero when the dataset holds a single time
	Times    []time.Time
}
