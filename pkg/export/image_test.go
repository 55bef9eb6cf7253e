package export

import (
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/tiff"

	"hdfview/internal/models"
)

func gradientGrid() *models.Grid {
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i * 10)
	}
	return &models.Grid{Data: data, Height: 4, Width: 4}
}

func TestSaveImageFormats(t *testing.T) {
	dir := t.TempDir()

	tifPath := filepath.Join(dir, "slice.tif")
	if err := SaveImage(tifPath, gradientGrid()); err != nil {
		t.Fatalf("TIFF save failed: %v", err)
	}
	f, err := os.Open(tifPath)
	if err != nil {
		t.Fatalf("opening TIFF: %v", err)
	}
	defer f.Close()
	if _, err := tiff.Decode(f); err != nil {
		t.Errorf("output is not a valid TIFF: %v", err)
	}

	jpgPath := filepath.Join(dir, "slice.jpg")
	if err := SaveImage(jpgPath, gradientGrid()); err != nil {
		t.Fatalf("JPEG save failed: %v", err)
	}
	jf, _ := os.Open(jpgPath)
	defer jf.Close()
	if _, err := jpeg.Decode(jf); err != nil {
		t.Errorf("output is not a valid JPEG: %v", err)
	}

	pngPath := filepath.Join(dir, "slice.png")
	if err := SaveImage(pngPath, gradientGrid()); err != nil {
		t.Fatalf("PNG save failed: %v", err)
	}
	pf, _ := os.Open(pngPath)
	defer pf.Close()
	if _, err := png.Decode(pf); err != nil {
		t.Errorf("output is not a valid PNG: %v", err)
	}
}

func TestSaveImageUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slice.bmp")
	err := SaveImage(path, gradientGrid())
	if err == nil {
		t.Fatal("unknown extension accepted")
	}
	if !strings.Contains(err.Error(), "file extension") {
		t.Errorf("message = %q", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("rejected export left a file behind")
	}
}

func TestSaveImageConstantRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flat.png")
	g := &models.Grid{Data: []float64{5, 5, 5, 5}, Height: 2, Width: 2}
	if err := SaveImage(path, g); err == nil {
		t.Fatal("constant-valued image accepted")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("rejected export left a file behind")
	}
}
