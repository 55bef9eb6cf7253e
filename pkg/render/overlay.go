package render

import (
	"image"
	"image/color"
)

// boxColor is used for the ROI rectangle and profile lines.
var boxColor = color.RGBA{R: 255, A: 255}

// ROI returns the square region of a normalized image centered on the
// clicked pixel. The square side is the larger image dimension divided by
// the zoom factor, shrunk to fit and shifted so it stays inside the image.
func ROI(pix []uint8, height, width, x, y, zoom int) (sub []uint8, size, x0, y0 int) {
	if zoom < 1 {
		zoom = 1
	}
	size = height
	if width > size {
		size = width
	}
	size /= zoom
	if size < 2 {
		size = 2
	}
	if size > width {
		size = width
	}
	if size > height {
		size = height
	}

	x0 = clampInt(x-size/2, 0, width-size)
	y0 = clampInt(y-size/2, 0, height-size)

	sub = make([]uint8, size*size)
	for r := 0; r < size; r++ {
		copy(sub[r*size:(r+1)*size], pix[(y0+r)*width+x0:(y0+r)*width+x0+size])
	}
	return sub, size, x0, y0
}

// DrawRect outlines a square on the image, marking the ROI.
func DrawRect(img *image.RGBA, x0, y0, size int) {
	b := img.Bounds()
	for x := x0; x < x0+size && x < b.Max.X; x++ {
		setIn(img, x, y0)
		setIn(img, x, y0+size-1)
	}
	for y := y0; y < y0+size && y < b.Max.Y; y++ {
		setIn(img, x0, y)
		setIn(img, x0+size-1, y)
	}
}

// DrawVLine draws a full-height vertical line at column x.
func DrawVLine(img *image.RGBA, x int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		setIn(img, x, y)
	}
}

// DrawHLine draws a full-width horizontal line at row y.
func DrawHLine(img *image.RGBA, y int) {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		setIn(img, x, y)
	}
}

func setIn(img *image.RGBA, x, y int) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, boxColor)
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
