package render

import (
	"bytes"
	"image/png"
	"testing"

	"hdfview/internal/models"
)

func TestStatistics(t *testing.T) {
	g := &models.Grid{Data: []float64{2, 4, 4, 4, 5, 5, 7, 9}, Height: 2, Width: 4, Dtype: "float64"}
	rows := Statistics(g)
	want := map[string]string{
		"Minimum":            "2",
		"Maximum":            "9",
		"Mean":               "5",
		"Standard deviation": "2",
		"Data type":          "float64",
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for _, row := range rows {
		if want[row.Name] != row.Value {
			t.Errorf("%s = %q, want %q", row.Name, row.Value, want[row.Name])
		}
	}
}

func TestStatisticsEmpty(t *testing.T) {
	if rows := Statistics(&models.Grid{}); rows != nil {
		t.Errorf("empty grid statistics = %v, want nil", rows)
	}
}

func TestHistogramBinCount(t *testing.T) {
	// Fewer values than the bin cap shrinks the bin count to fit.
	g := &models.Grid{Data: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Height: 2, Width: 5}
	data, err := Histogram(g)
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Histogram output is not PNG: %v", err)
	}
}

func TestHistogramConstantSlice(t *testing.T) {
	g := &models.Grid{Data: []float64{3, 3, 3, 3}, Height: 2, Width: 2}
	if _, err := Histogram(g); err != nil {
		t.Errorf("Histogram of constant slice failed: %v", err)
	}
}
