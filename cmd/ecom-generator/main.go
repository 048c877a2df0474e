// Package main writes a synthetic ECOM-style NetCDF output for local runs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.ngs.io/ocean-s2z/internal/logging"
	"go.ngs.io/ocean-s2z/internal/synthetic"
)

func main() {
	out := flag.String("out", "./data/ecom.nc", "Output NetCDF file")
	gridOut := flag.String("grid-out", "", "Also write lon/lat to this grid file and omit them from -out")
	nx := flag.Int("nx", 40, "Grid columns")
	ny := flag.Int("ny", 30, "Grid rows")
	layers := flag.Int("layers", 20, "Sigma layers")
	times := flag.Int("times", 24, "Time steps")
	step := flag.Duration("step", time.Hour, "Time step")
	start := flag.String("start", "2020-01-01T00:00:00Z", "First time (RFC3339)")
	maxDepth := flag.Float64("max-depth", 2500, "Depth of the easternmost column in metres")
	lon0 := flag.Float64("lon0", -48.5, "Longitude of column 0")
	lat0 := flag.Float64("lat0", -27.5, "Latitude of row 0")
	res := flag.Float64("resolution", 0.05, "Grid resolution in degrees")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	log, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	t0, err := time.Parse(time.RFC3339, *start)
	if err != nil {
		log.Fatalf("Invalid start time: %v", err)
	}
	if *nx < 2 || *ny < 1 || *layers < 2 || *times < 1 {
		log.Fatalf("Grid must have at least 2 columns, 1 row, 2 layers and 1 time step")
	}

	// Column 0 is land; depth grows linearly eastwards.
	cfg := synthetic.Config{
		Nx:     *nx,
		Ny:     *ny,
		Layers: *layers,
		Times:  *times,
		Depth: func(_, i int) float64 {
			return *maxDepth * float64(i) / float64(*nx-1)
		},
		Start: t0.UTC(),
		Step:  *step,
		Lon0:  *lon0,
		Lat0:  *lat0,
		Res:   *res,
	}
	model := synthetic.New(cfg)

	if dir := filepath.Dir(*out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}
	if err := model.WriteNetCDF(*out, *gridOut == ""); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Infow("Generated model output", "path", *out,
		"nx", *nx, "ny", *ny, "layers", *layers, "times", *times, "units", model.TimeUnits())

	if *gridOut != "" {
		if err := model.WriteGridFile(*gridOut); err != nil {
			log.Fatalf("Failed to write %s: %v", *gridOut, err)
		}
		log.Infow("Generated grid file", "path", *gridOut)
	}
}
