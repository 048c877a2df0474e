// Package main runs one sigma-to-z extraction and prints the result.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"go.ngs.io/ocean-s2z/internal/adapter/export/csv"
	"go.ngs.io/ocean-s2z/internal/logging"
	"go.ngs.io/ocean-s2z/internal/reader"
	"go.ngs.io/ocean-s2z/internal/usecase"
)

// config holds the command-line settings.
type config struct {
	file, grid, backend string
	vars, at            string
	xs, ys, zs          string
	buffer, vbuffer     int
	format, out         string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.file, "file", "", "ECOM NetCDF output (required)")
	flag.StringVar(&cfg.grid, "grid", "", "Grid file with lon/lat, when the output lacks them")
	flag.StringVar(&cfg.backend, "backend", reader.BackendCDF, "File library: cdf or native")
	flag.StringVar(&cfg.vars, "vars", "x_sea_water_velocity", "Comma-separated standard names")
	flag.StringVar(&cfg.at, "time", "", "Time (RFC3339); default is the first model time")
	flag.StringVar(&cfg.xs, "x", "", "Comma-separated native x positions (required)")
	flag.StringVar(&cfg.ys, "y", "", "Comma-separated native y positions (required)")
	flag.StringVar(&cfg.zs, "z", "0", "Comma-separated depths in metres")
	flag.IntVar(&cfg.buffer, "buffer", 1, "Horizontal buffer in grid cells")
	flag.IntVar(&cfg.vbuffer, "vbuffer", 1, "Vertical buffer in sigma layers")
	flag.StringVar(&cfg.format, "format", "json", "Output format: json or csv")
	flag.StringVar(&cfg.out, "out", "", "Output file (default: stdout)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	log, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = run(cfg, log, os.Stdout)
	if err != nil {
		log.Errorf("%v", err)
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run performs one extraction and writes it to cfg.out or stdout.
func run(cfg config, log *zap.SugaredLogger, stdout io.Writer) (err error) {
	if cfg.format != "json" && cfg.format != "csv" {
		return fmt.Errorf("unknown format %q (use json or csv)", cfg.format)
	}

	req := usecase.ExtractionRequest{Variables: strings.Split(cfg.vars, ",")}
	if req.X, err = parseFloats(cfg.xs); err != nil {
		return fmt.Errorf("invalid -x: %w", err)
	}
	if req.Y, err = parseFloats(cfg.ys); err != nil {
		return fmt.Errorf("invalid -y: %w", err)
	}
	if req.Z, err = parseFloats(cfg.zs); err != nil {
		return fmt.Errorf("invalid -z: %w", err)
	}
	if cfg.at != "" {
		if req.Time, err = time.Parse(time.RFC3339, cfg.at); err != nil {
			return fmt.Errorf("invalid -time: %w", err)
		}
	}

	r, err := reader.Open(cfg.file, reader.Options{
		GridFile:       cfg.grid,
		Backend:        cfg.backend,
		Buffer:         cfg.buffer,
		VerticalBuffer: cfg.vbuffer,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("failed to open reader: %w", err)
	}
	defer func() { _ = r.Close() }()

	w := stdout
	if cfg.out != "" {
		f, ferr := os.Create(cfg.out)
		if ferr != nil {
			return fmt.Errorf("failed to create %s: %w", cfg.out, ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to close %s: %w", cfg.out, cerr)
			}
		}()
		w = f
	}

	if cfg.format == "csv" {
		if err := req.Validate(); err != nil {
			return fmt.Errorf("%w: %w", usecase.ErrInvalidRequest, err)
		}
		rs, err := r.GetVariables(req.Variables, req.Time, req.X, req.Y, req.Z)
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}
		if err := csv.Write(w, rs, r.Grid()); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	}

	resp, err := usecase.NewExtractionUseCase(r).Execute(req)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
