// Package render turns arrays read from a hierarchical file into the
// images, plots and tables the viewer displays. Each strategy is a pure
// function from data plus view settings to an output artifact; nothing in
// this package touches the file system or the network.
package render

import (
	"bytes"
	"image"
	"image/png"

	"gonum.org/v1/gonum/floats"

	"hdfview/internal/models"
)

// expensiveDim is the dimension size above which slicing across the
// leading axes becomes prohibitively slow.
const expensiveDim = 1000

// Selection is the outcome of picking a 2D plane from a 3D dataset. Axis
// and Index reflect what was actually sliced, which can differ from the
// request when the large-array policy forces a fallback.
type Selection struct {
	Grid   *models.Grid
	Axis   int
	Index  int
	Notice string
}

// AxisBound returns the maximum valid slice index for an axis of the cube.
func AxisBound(c *models.Cube, axis int) int {
	switch axis {
	case 2:
		return c.Width - 1
	case 1:
		return c.Height - 1
	default:
		return c.Depth - 1
	}
}

// SelectSlice extracts the 2D plane at (axis, index). Out-of-range indices
// clamp to the axis bound. Slicing along axis 2 on arrays where both depth
// and height exceed the expensive threshold falls back to axis 0 index 0
// with a notice; axis 1 on similarly large arrays only warns.
func SelectSlice(c *models.Cube, axis, index int) Selection {
	bound := AxisBound(c, axis)
	if index > bound {
		index = bound
	}
	if index < 0 {
		index = 0
	}

	switch axis {
	case 2:
		if c.Depth > expensiveDim && c.Height > expensiveDim {
			return Selection{
				Grid:   sliceDepth(c, 0),
				Axis:   0,
				Index:  0,
				Notice: "Slicing along axis 2 is very time-consuming!",
			}
		}
		return Selection{Grid: sliceWidth(c, index), Axis: 2, Index: index}
	case 1:
		sel := Selection{Grid: sliceHeight(c, index), Axis: 1, Index: index}
		if c.Depth > expensiveDim && c.Width > expensiveDim {
			sel.Notice = "Slicing along axis 1 can take time!"
		}
		return sel
	default:
		return Selection{Grid: sliceDepth(c, index), Axis: 0, Index: index}
	}
}

// sliceDepth returns the (height, width) plane at depth z.
func sliceDepth(c *models.Cube, z int) *models.Grid {
	plane := c.Height * c.Width
	out := make([]float64, plane)
	copy(out, c.Data[z*plane:(z+1)*plane])
	return &models.Grid{Data: out, Height: c.Height, Width: c.Width, Dtype: c.Dtype}
}

// sliceHeight returns the (depth, width) plane at row y.
func sliceHeight(c *models.Cube, y int) *models.Grid {
	out := make([]float64, c.Depth*c.Width)
	for z := 0; z < c.Depth; z++ {
		row := c.Data[z*c.Height*c.Width+y*c.Width:]
		copy(out[z*c.Width:(z+1)*c.Width], row[:c.Width])
	}
	return &models.Grid{Data: out, Height: c.Depth, Width: c.Width, Dtype: c.Dtype}
}

// sliceWidth returns the (depth, height) plane at column x.
func sliceWidth(c *models.Cube, x int) *models.Grid {
	out := make([]float64, c.Depth*c.Height)
	for z := 0; z < c.Depth; z++ {
		for y := 0; y < c.Height; y++ {
			out[z*c.Height+y] = c.At(z, y, x)
		}
	}
	return &models.Grid{Data: out, Height: c.Depth, Width: c.Height, Dtype: c.Dtype}
}

// ClampWindow enforces min < max on the contrast window by pulling min
// below max, bounded to the 8-bit range.
func ClampWindow(min, max int) (int, int) {
	if min >= max {
		min = max - 1
		if min < 0 {
			min = 0
		}
		if min > 254 {
			min = 254
		}
	}
	return min, max
}

// Normalize rescales a slice to the 8-bit range using the slice's own
// min and max, then clips to the contrast window when it is narrower than
// the full [0,255] default. A constant-valued slice renders as all zeros.
func Normalize(g *models.Grid, min, max int) []uint8 {
	min, max = ClampWindow(min, max)
	pix := make([]uint8, len(g.Data))
	if len(g.Data) == 0 {
		return pix
	}
	nmin := floats.Min(g.Data)
	nmax := floats.Max(g.Data)
	if nmax == nmin {
		return pix
	}
	clip := min > 0 || max < 255
	scale := 255.0 / (nmax - nmin)
	for i, v := range g.Data {
		b := int(scale * (v - nmin))
		if clip {
			if b < min {
				b = min
			}
			if b > max {
				b = max
			}
		}
		if b < 0 {
			b = 0
		}
		if b > 255 {
			b = 255
		}
		pix[i] = uint8(b)
	}
	return pix
}

// ToImage maps 8-bit intensities through a colormap into an RGBA image.
func ToImage(pix []uint8, height, width int, colormap string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, Lookup(colormap, pix[y*width+x]))
		}
	}
	return img
}

// EncodePNG serializes an image for transport to the browser.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
