package csv

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"go.ngs.io/ocean-s2z/internal/domain"
)

func TestWrite(t *testing.T) {
	temp, _ := domain.NewField([]int{2, 1, 2}, []float64{20, 21, 18, 19})
	elev, _ := domain.NewField([]int{1, 2}, []float64{0.5, 0.25})
	collapsed, _ := domain.NewField([]int{1, 1}, []float64{7})
	rs := &domain.ResultSet{
		Variables: map[string]*domain.Field{
			domain.SeaWaterTemperature: temp,
			domain.SeaSurfaceHeight:    elev,
			"odd":                      collapsed,
		},
		X:    []float64{3, 4},
		Y:    []float64{5},
		Z:    []float64{-10, -15},
		Time: time.Date(2020, 1, 1, 6, 0, 0, 0, time.UTC),
	}
	lon, _ := domain.NewField([]int{6, 5}, make([]float64, 30))
	lat, _ := domain.NewField([]int{6, 5}, make([]float64, 30))
	lon.Set(-48.25, 5, 4)
	lat.Set(-27.0, 5, 4)

	var buf bytes.Buffer
	if err := Write(&buf, rs, domain.NewIndexGrid(lon, lat)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 1+1+2+4 {
		t.Fatalf("got %d rows, want 8", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		t.Errorf("header = %v", rows[0])
	}

	// Sorted: odd, sea_surface_height..., sea_water_temperature...
	if got := rows[1]; got[0] != "odd" || got[3] != "" || got[8] != "7" {
		t.Errorf("collapsed row = %v", got)
	}
	if got := rows[3]; got[0] != domain.SeaSurfaceHeight || got[3] != "" || got[5] != "4" || got[8] != "0.25" {
		t.Errorf("elevation row = %v", got)
	}
	last := rows[7]
	want := []string{domain.SeaWaterTemperature, "2020-01-01T06:00:00Z", "3", "-15", "5", "4", "-48.25", "-27", "19"}
	for i := range want {
		if last[i] != want[i] {
			t.Errorf("temperature row col %d = %q, want %q", i, last[i], want[i])
		}
	}
}
