package render

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"hdfview/internal/models"
)

// StatRow is one line of the statistics table.
type StatRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Statistics summarizes the displayed slice: min, max, mean, standard
// deviation and the element type name.
func Statistics(g *models.Grid) []StatRow {
	if len(g.Data) == 0 {
		return nil
	}
	return []StatRow{
		{Name: "Minimum", Value: fmt.Sprintf("%g", floats.Min(g.Data))},
		{Name: "Maximum", Value: fmt.Sprintf("%g", floats.Max(g.Data))},
		{Name: "Mean", Value: fmt.Sprintf("%g", stat.Mean(g.Data, nil))},
		{Name: "Standard deviation", Value: fmt.Sprintf("%g", stat.PopStdDev(g.Data, nil))},
		{Name: "Data type", Value: g.Dtype},
	}
}

// Histogram renders the value distribution of the displayed slice with at
// most 255 bins.
func Histogram(g *models.Grid) ([]byte, error) {
	if len(g.Data) == 0 {
		return nil, fmt.Errorf("empty slice")
	}
	bins := 255
	if len(g.Data) < bins {
		bins = len(g.Data)
	}
	if bins < 1 {
		bins = 1
	}
	lo := floats.Min(g.Data)
	hi := floats.Max(g.Data)
	if hi == lo {
		hi = lo + 1
	}
	counts := make([]float64, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range g.Data {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*width
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("Histogram (num bins: %d)", bins),
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 10}},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: centers, YValues: counts, Style: markerStyle(",")},
		},
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering histogram: %w", err)
	}
	return buf.Bytes(), nil
}
