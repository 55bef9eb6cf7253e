package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"hdfview/internal/models"
)

// maxCSVCells bounds CSV export of 2D arrays; anything at or above this
// cell count is rejected before a file is created.
const maxCSVCells = 4000000

// SaveCSV writes a 2D array to a CSV file, one array row per record. The
// size ceiling is checked before any write so no partial file appears.
func SaveCSV(path string, g *models.Grid) error {
	if g.Height*g.Width >= maxCSVCells {
		return fmt.Errorf("array has more than 4,000,000 elements, operation not performed")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	record := make([]string, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			record[x] = strconv.FormatFloat(g.At(y, x), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// SaveCSVVector writes a 1D array to a CSV file, one value per line.
func SaveCSVVector(path string, v models.Vector) error {
	return SaveCSV(path, &models.Grid{Data: v, Height: len(v), Width: 1})
}
