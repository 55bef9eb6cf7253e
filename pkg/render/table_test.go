package render

import (
	"testing"

	"hdfview/internal/models"
)

func TestFormatTableIndexPrefix(t *testing.T) {
	g := &models.Grid{Data: []float64{1, 2, 3, 4, 5, 6}, Height: 3, Width: 2}
	tbl := FormatTable(g)
	if tbl == nil {
		t.Fatal("FormatTable returned nil for a small array")
	}
	if len(tbl.Columns) != 3 {
		t.Fatalf("columns = %d, want 3 (Index + 2 data columns)", len(tbl.Columns))
	}
	if tbl.Columns[0].Name != "Index" || tbl.Columns[1].Name != "Column 0" {
		t.Errorf("column names = %q, %q", tbl.Columns[0].Name, tbl.Columns[1].Name)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(tbl.Rows))
	}
	if tbl.Rows[1]["Index"] != "1" {
		t.Errorf("row 1 index = %q, want \"1\"", tbl.Rows[1]["Index"])
	}
	if tbl.Rows[1]["Column 1"] != "4" {
		t.Errorf("row 1 column 1 = %q, want \"4\"", tbl.Rows[1]["Column 1"])
	}
}

func TestFormatTableTransposesWideArrays(t *testing.T) {
	// (2, 4) is wider than tall: the long dimension should run down the
	// page, giving 4 rows of 2 data columns.
	g := &models.Grid{Data: []float64{1, 2, 3, 4, 10, 20, 30, 40}, Height: 2, Width: 4}
	tbl := FormatTable(g)
	if tbl == nil {
		t.Fatal("FormatTable returned nil")
	}
	if len(tbl.Rows) != 4 || len(tbl.Columns) != 3 {
		t.Fatalf("shape = %d rows, %d columns, want 4 rows, 3 columns",
			len(tbl.Rows), len(tbl.Columns))
	}
	if tbl.Rows[2]["Column 0"] != "3" || tbl.Rows[2]["Column 1"] != "30" {
		t.Errorf("transposed row 2 = %v", tbl.Rows[2])
	}
}

func TestFormatTableCeiling(t *testing.T) {
	big := &models.Grid{Data: make([]float64, 1001*1001), Height: 1001, Width: 1001}
	if FormatTable(big) != nil {
		t.Error("array above the ceiling in both dimensions should yield nil")
	}

	// One long dimension alone stays renderable.
	tall := &models.Grid{Data: make([]float64, 2002), Height: 1001, Width: 2}
	if FormatTable(tall) == nil {
		t.Error("array above the ceiling in one dimension should still render")
	}
}

func TestFormatVector(t *testing.T) {
	tbl := FormatVector(models.Vector{7, 8, 9})
	if tbl == nil {
		t.Fatal("FormatVector returned nil")
	}
	if len(tbl.Columns) != 2 || len(tbl.Rows) != 3 {
		t.Fatalf("shape = %d columns, %d rows, want 2 columns, 3 rows",
			len(tbl.Columns), len(tbl.Rows))
	}
	if tbl.Rows[2]["Column 0"] != "9" {
		t.Errorf("row 2 = %v", tbl.Rows[2])
	}
}
