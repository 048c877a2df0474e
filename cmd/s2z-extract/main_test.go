package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"go.ngs.io/ocean-s2z/internal/domain"
	"go.ngs.io/ocean-s2z/internal/synthetic"
	"go.ngs.io/ocean-s2z/internal/usecase"
)

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecom.nc")
	if err := synthetic.New(synthetic.DefaultConfig()).WriteNetCDF(path, true); err != nil {
		t.Fatalf("WriteNetCDF: %v", err)
	}
	return path
}

func baseConfig(file string) config {
	return config{
		file:    file,
		backend: "cdf",
		vars:    domain.SeaWaterTemperature,
		xs:      "5",
		ys:      "4",
		zs:      "-10,-50",
		buffer:  1,
		vbuffer: 1,
		format:  "json",
	}
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := run(baseConfig(writeModel(t)), zap.NewNop().Sugar(), &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	var resp usecase.ExtractionResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if _, ok := resp.Variables[domain.SeaWaterTemperature]; !ok {
		t.Errorf("output lacks %s: %s", domain.SeaWaterTemperature, buf.String())
	}
}

func TestRunCSVToFile(t *testing.T) {
	cfg := baseConfig(writeModel(t))
	cfg.format = "csv"
	cfg.out = filepath.Join(t.TempDir(), "out.csv")

	var stdout bytes.Buffer
	if err := run(cfg, zap.NewNop().Sugar(), &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout got %d bytes with -out set", stdout.Len())
	}
	data, err := os.ReadFile(cfg.out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "variable,") {
		t.Errorf("CSV output starts with %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestRunReturnsErrors(t *testing.T) {
	path := writeModel(t)
	tests := []struct {
		name   string
		modify func(*config)
		want   error
	}{
		{"unknown format", func(c *config) { c.format = "xml" }, nil},
		{"bad x", func(c *config) { c.xs = "east" }, nil},
		{"bad time", func(c *config) { c.at = "yesterday" }, nil},
		{"missing file", func(c *config) { c.file = "" }, domain.ErrConfiguration},
		{"unknown variable", func(c *config) { c.vars = "sea_water_colour" }, domain.ErrUnknownVariable},
		{"invalid csv request", func(c *config) { c.format = "csv"; c.ys = "1,2" }, usecase.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(path)
			tt.modify(&cfg)
			err := run(cfg, zap.NewNop().Sugar(), &bytes.Buffer{})
			if err == nil {
				t.Fatal("run returned nil error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
