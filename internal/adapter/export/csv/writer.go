// Package csv writes extraction results as long-format CSV.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"go.ngs.io/ocean-s2z/internal/domain"
)

// Header is the column layout written by Write.
var Header = []string{"variable", "time", "index", "z", "y", "x", "lon", "lat", "value"}

// Write emits one row per value of every variable in rs, variables in
// sorted order. Fields laid out [levels, rows, cols] or [rows, cols] over
// the result window get their z/y/x (and lon/lat when g is non-nil)
// columns filled; other layouts leave them empty.
func Write(w io.Writer, rs *domain.ResultSet, g *domain.Grid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	names := make([]string, 0, len(rs.Variables))
	for name := range rs.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	stamp := ""
	if !rs.Time.IsZero() {
		stamp = rs.Time.UTC().Format(time.RFC3339)
	}

	for _, name := range names {
		f := rs.Variables[name]
		layout := windowLayout(f, rs)
		for i, v := range f.Values {
			row := []string{name, stamp, strconv.Itoa(i), "", "", "", "", "", formatFloat(v)}
			if layout != nil {
				k, j, c := layout(i)
				if k >= 0 {
					row[3] = formatFloat(rs.Z[k])
				}
				row[4] = formatFloat(rs.Y[j])
				row[5] = formatFloat(rs.X[c])
				if g != nil {
					gy, gx := int(rs.Y[j]), int(rs.X[c])
					row[6] = formatFloat(g.Lon.At(gy, gx))
					row[7] = formatFloat(g.Lat.At(gy, gx))
				}
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", name, i, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// windowLayout maps a flat index to (level, row, col) when f spans the
// result window. level is -1 for horizontal fields.
func windowLayout(f *domain.Field, rs *domain.ResultSet) func(int) (int, int, int) {
	ny, nx := len(rs.Y), len(rs.X)
	switch {
	case f.Rank() == 2 && f.Shape[0] == ny && f.Shape[1] == nx:
		return func(i int) (int, int, int) { return -1, i / nx, i % nx }
	case f.Rank() == 3 && f.Shape[0] == len(rs.Z) && f.Shape[1] == ny && f.Shape[2] == nx:
		return func(i int) (int, int, int) { return i / (ny * nx), (i / nx) % ny, i % nx }
	default:
		return nil
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
