package render

import (
	"fmt"
	"strconv"

	"hdfview/internal/models"
)

// tableDim is the per-dimension ceiling above which table rendering is
// rejected to bound its cost.
const tableDim = 1000

// TableColumn describes one column of the data table.
type TableColumn struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Field string `json:"field"`
}

// TableModel is the row/column structure the browser table consumes.
type TableModel struct {
	Columns []TableColumn       `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// FormatTable converts a 2D array to an index-prefixed table. Arrays wider
// than tall are transposed so long dimensions run down the page. Arrays
// with both dimensions above the ceiling return nil instead of a table.
func FormatTable(g *models.Grid) *TableModel {
	if g.Height > tableDim && g.Width > tableDim {
		return nil
	}
	if g.Width > g.Height {
		g = transpose(g)
	}

	cols := make([]TableColumn, 0, g.Width+1)
	cols = append(cols, TableColumn{Name: "Index", Label: "Index", Field: "Index"})
	for j := 0; j < g.Width; j++ {
		name := fmt.Sprintf("Column %d", j)
		cols = append(cols, TableColumn{Name: name, Label: name, Field: name})
	}

	rows := make([]map[string]string, 0, g.Height)
	for i := 0; i < g.Height; i++ {
		row := make(map[string]string, g.Width+1)
		row["Index"] = strconv.Itoa(i)
		for j := 0; j < g.Width; j++ {
			row[cols[j+1].Name] = strconv.FormatFloat(g.At(i, j), 'g', -1, 64)
		}
		rows = append(rows, row)
	}
	return &TableModel{Columns: cols, Rows: rows}
}

// FormatVector converts a 1D array to a single-column table.
func FormatVector(v models.Vector) *TableModel {
	return FormatTable(&models.Grid{Data: v, Height: len(v), Width: 1})
}

func transpose(g *models.Grid) *models.Grid {
	out := make([]float64, len(g.Data))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out[x*g.Height+y] = g.At(y, x)
		}
	}
	return &models.Grid{Data: out, Height: g.Width, Width: g.Height, Dtype: g.Dtype}
}
