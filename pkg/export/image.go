// Package export writes the currently displayed view to disk: image slices
// as TIFF/JPEG/PNG and 1D/2D data as CSV. Failures are returned as messages
// for the viewer to surface; no partial file is left behind when a
// precondition fails.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/floats"

	"hdfview/internal/models"
)

// JPEGQuality applies to saved JPEG slices. The binary overrides it from
// the application config at startup.
var JPEGQuality = 90

// SaveImage writes a 2D array as an image file. Non-TIFF targets are
// rescaled to 8 bits; TIFF keeps 16-bit precision. A constant-valued array
// cannot be normalized and is rejected before any file is created.
func SaveImage(path string, g *models.Grid) error {
	if len(g.Data) == 0 {
		return fmt.Errorf("no image data to save")
	}
	nmin := floats.Min(g.Data)
	nmax := floats.Max(g.Data)
	if nmax == nmin {
		return fmt.Errorf("image is constant-valued, cannot normalize for saving")
	}

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		img = toGray16(g, nmin, nmax)
	case ".jpg", ".png":
		img = toGray8(g, nmin, nmax)
	default:
		return fmt.Errorf("please use .tif, .jpg, or .png as file extension")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		err = tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	case ".jpg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: JPEGQuality})
	case ".png":
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func toGray8(g *models.Grid, nmin, nmax float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	scale := 255.0 / (nmax - nmin)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(scale * (g.At(y, x) - nmin))})
		}
	}
	return img
}

func toGray16(g *models.Grid, nmin, nmax float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	scale := 65535.0 / (nmax - nmin)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(scale * (g.At(y, x) - nmin))})
		}
	}
	return img
}
