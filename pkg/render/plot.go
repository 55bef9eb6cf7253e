package render

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"hdfview/internal/models"
)

// plotColor is the series color for 1D/2D plots.
var plotColor = drawing.Color{B: 255, A: 255}

// Markers lists the supported plot marker styles in display order.
func Markers() []string {
	return []string{",", ".", "o", "x"}
}

// markerStyle maps a marker name onto a series style: "," draws a line,
// the others draw points of increasing weight.
func markerStyle(marker string) chart.Style {
	switch marker {
	case ".":
		return chart.Style{StrokeWidth: chart.Disabled, DotWidth: 2, DotColor: plotColor}
	case "o":
		return chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5, DotColor: plotColor}
	case "x":
		return chart.Style{StrokeWidth: 1, StrokeColor: plotColor, DotWidth: 3, DotColor: plotColor}
	default:
		return chart.Style{StrokeWidth: 1.5, StrokeColor: plotColor}
	}
}

// CoordinatePair applies the dimensionality rule for 2D data: an array with
// exactly one dimension equal to 2 is explicit (x,y) pairs, taken from the
// length-2 axis. Any other 2D shape is a raster and routes to the image
// path instead.
func CoordinatePair(g *models.Grid) (x, y []float64, raster bool) {
	switch {
	case g.Height == 2:
		return g.Row(0), g.Row(1), false
	case g.Width == 2:
		return g.Column(0), g.Column(1), false
	default:
		return nil, nil, true
	}
}

// PlotSeries renders an (x,y) series as a PNG using the requested marker.
func PlotSeries(title string, x, y []float64, marker string) ([]byte, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("x and y lengths differ: %d vs %d", len(x), len(y))
	}
	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 10}},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: x, YValues: y, Style: markerStyle(marker)},
		},
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering plot: %w", err)
	}
	return buf.Bytes(), nil
}

// PlotVector renders a 1D array against its implicit index.
func PlotVector(title string, v models.Vector, marker string) ([]byte, error) {
	x := make([]float64, len(v))
	for i := range x {
		x[i] = float64(i)
	}
	return PlotSeries(title, x, v, marker)
}

// PlotProfile renders an intensity cross-section labeled with the clicked
// row or column.
func PlotProfile(axisLabel string, at int, v models.Vector) ([]byte, error) {
	return PlotVector(fmt.Sprintf("Profile at %s: %d", axisLabel, at), v, ",")
}
