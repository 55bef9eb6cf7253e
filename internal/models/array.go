package models

// Vector is a 1D array read from a dataset.
type Vector []float64

// Grid is a 2D array in row-major order.
type Grid struct {
	// Data holds Height*Width values in row-major order.
	Data []float64

	// Height and Width are the grid dimensions.
	Height int
	Width  int

	// Dtype is the source dataset's element type name (e.g. "float32").
	Dtype string
}

// At returns the value at row y, column x.
func (g *Grid) At(y, x int) float64 {
	return g.Data[y*g.Width+x]
}

// Row returns row y as a vector.
func (g *Grid) Row(y int) Vector {
	return Vector(g.Data[y*g.Width : (y+1)*g.Width])
}

// Column returns column x as a vector.
func (g *Grid) Column(x int) Vector {
	out := make(Vector, g.Height)
	for y := 0; y < g.Height; y++ {
		out[y] = g.Data[y*g.Width+x]
	}
	return out
}

// Cube is a 3D array in row-major order, indexed as (depth, height, width).
type Cube struct {
	// Data holds Depth*Height*Width values in row-major order.
	Data []float64

	// Depth, Height and Width are the cube dimensions.
	Depth  int
	Height int
	Width  int

	// Dtype is the source dataset's element type name.
	Dtype string
}

// At returns the value at depth z, row y, column x.
func (c *Cube) At(z, y, x int) float64 {
	return c.Data[z*c.Height*c.Width+y*c.Width+x]
}
