// Package synthetic builds small ECOM-like model outputs with analytic
// fields, in memory or as NetCDF files.
package synthetic

import (
	"math"
	"time"

	"go.ngs.io/ocean-s2z/internal/adapter/dataset/memory"
)

// Config describes a synthetic model domain.
type Config struct {
	Nx, Ny int
	Layers int
	Times  int

	// Depth returns the bottom depth (metres, positive) of column (j, i).
	// A non-positive depth marks land.
	Depth func(j, i int) float64

	Start time.Time
	Step  time.Duration

	// Lon0, Lat0 and Res place the grid geographically.
	Lon0, Lat0, Res float64
}

// DefaultConfig returns a 12 x 10 domain with 10 layers, 4 hourly time steps
// and a shelf deepening eastwards from 20 m to 220 m with one land column.
func DefaultConfig() Config {
	return Config{
		Nx:     12,
		Ny:     10,
		Layers: 10,
		Times:  4,
		Depth: func(_, i int) float64 {
			if i == 0 {
				return 0
			}
			return 20 * float64(i)
		},
		Start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Step:  time.Hour,
		Lon0:  -48.5,
		Lat0:  -27.5,
		Res:   0.05,
	}
}

// Model holds the generated arrays in row-major order.
type Model struct {
	Config Config

	Sigma []float64 // [L], bottom first
	Depth []float64 // [Ny, Nx]
	FSM   []float64 // [Ny, Nx], 1 for sea
	Lon   []float64 // [Ny, Nx]
	Lat   []float64 // [Ny, Nx]
	Time  []float64 // seconds since Start

	Elev []float64 // [T, Ny, Nx]
	WU   []float64 // [T, Ny, Nx]
	WV   []float64 // [T, Ny, Nx]
	U    []float64 // [T, L, Ny, Nx]
	V    []float64 // [T, L, Ny, Nx]
	Temp []float64 // [T, L, Ny, Nx]
	Salt []float64 // [T, L, Ny, Nx]
}

// TimeUnits is the CF units string of Model.Time.
func (m *Model) TimeUnits() string {
	return "seconds since " + m.Config.Start.UTC().Format("2006-01-02 15:04:05")
}

// LayerDepth returns the physical depth of layer k in column (j, i).
func (m *Model) LayerDepth(k, j, i int) float64 {
	l := m.Config.Layers
	center := -1 + (float64(k)+0.5)/float64(l)
	h := m.Depth[j*m.Config.Nx+i]
	return center - m.Sigma[k] + m.Sigma[k]*h
}

// Temperature is the analytic temperature at depth z and time step t.
func Temperature(z float64, t int) float64 {
	return 20 + 0.05*z + 0.5*float64(t)
}

// New generates a model from cfg.
func New(cfg Config) *Model {
	nx, ny, nl, nt := cfg.Nx, cfg.Ny, cfg.Layers, cfg.Times
	hz := nx * ny
	m := &Model{
		Config: cfg,
		Sigma:  make([]float64, nl),
		Depth:  make([]float64, hz),
		FSM:    make([]float64, hz),
		Lon:    make([]float64, hz),
		Lat:    make([]float64, hz),
		Time:   make([]float64, nt),
		Elev:   make([]float64, nt*hz),
		WU:     make([]float64, nt*hz),
		WV:     make([]float64, nt*hz),
		U:      make([]float64, nt*nl*hz),
		V:      make([]float64, nt*nl*hz),
		Temp:   make([]float64, nt*nl*hz),
		Salt:   make([]float64, nt*nl*hz),
	}

	for k := range m.Sigma {
		m.Sigma[k] = -1 + float64(k)/float64(nl)
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			c := j*nx + i
			m.Depth[c] = cfg.Depth(j, i)
			if m.Depth[c] > 0 {
				m.FSM[c] = 1
			} else {
				m.Depth[c] = 0
			}
			m.Lon[c] = cfg.Lon0 + float64(i)*cfg.Res
			m.Lat[c] = cfg.Lat0 + float64(j)*cfg.Res
		}
	}

	for t := 0; t < nt; t++ {
		m.Time[t] = (time.Duration(t) * cfg.Step).Seconds()
		phase := 2 * math.Pi * float64(t) / 12
		for c := 0; c < hz; c++ {
			m.Elev[t*hz+c] = 0.5 * math.Sin(phase) * m.FSM[c]
			m.WU[t*hz+c] = 5 + math.Cos(phase)
			m.WV[t*hz+c] = -2
		}
		for k := 0; k < nl; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < nx; i++ {
					c := j*nx + i
					idx := (t*nl+k)*hz + c
					if m.FSM[c] == 0 {
						m.U[idx], m.V[idx] = 0, 0
						m.Temp[idx], m.Salt[idx] = 0, 0
						continue
					}
					z := m.LayerDepth(k, j, i)
					m.U[idx] = 0.3 + 0.001*z
					m.V[idx] = 0.1 * math.Cos(phase)
					m.Temp[idx] = Temperature(z, t)
					m.Salt[idx] = 35 - 0.002*z
				}
			}
		}
	}
	return m
}

// Memory returns the model as an in-memory dataset with ECOM variable names.
func (m *Model) Memory() *memory.Dataset {
	c := m.Config
	nx, ny, nl, nt := c.Nx, c.Ny, c.Layers, c.Times
	ds := memory.New()
	ds.AddDim("x", nx)
	ds.AddDim("y", ny)
	ds.AddDim("sigma", nl)
	ds.AddDim("time", nt)

	ds.Add("sigma", []int{nl}, m.Sigma)
	ds.Add("depth", []int{ny, nx}, m.Depth)
	ds.Add("FSM", []int{ny, nx}, m.FSM)
	ds.Add("lon", []int{ny, nx}, m.Lon)
	ds.Add("lat", []int{ny, nx}, m.Lat)
	ds.Add("time", []int{nt}, m.Time).SetText("units", m.TimeUnits())
	ds.Add("elev", []int{nt, ny, nx}, m.Elev)
	ds.Add("wu", []int{nt, ny, nx}, m.WU)
	ds.Add("wv", []int{nt, ny, nx}, m.WV)
	for name, values := range map[string][]float64{"u": m.U, "v": m.V, "temp": m.Temp, "salt": m.Salt} {
		ds.Add(name, []int{nt, nl, ny, nx}, values)
	}
	return ds
}
