// Package hdf defines the contract the viewer needs from a hierarchical
// scientific file format (HDF5/NeXus family) and provides a production
// implementation backed by a pure-Go reader. Files are opened per call and
// closed before returning; nothing holds a handle between polls, so a file
// replaced on disk is picked up on the next read.
package hdf

import (
	"fmt"

	"hdfview/internal/models"
)

// Entry describes what was found behind a key.
type Entry struct {
	// Kind classifies the target: group, number, string, boolean, array,
	// "not path" when the key is absent, or unknown.
	Kind models.DataKind

	// Value is the scalar rendered as text, for number/string/boolean kinds.
	Value string

	// Shape is the array dimensions, for the array kind.
	Shape []int

	// Dtype is the element type name.
	Dtype string
}

// Reader enumerates and reads hierarchical files. Implementations must
// resolve (file, key) lazily on every call and must not cache handles
// across calls.
type Reader interface {
	// Tree enumerates groups and datasets recursively. The root node
	// carries the file name as its id and "/" as its label.
	Tree(file string) ([]models.TreeNode, error)

	// Entry resolves a key and classifies the result. A missing key is
	// reported as KindNotPath, not as an error.
	Entry(file, key string) (Entry, error)

	// ReadVector reads a 1D dataset.
	ReadVector(file, key string) (models.Vector, error)

	// ReadGrid reads a 2D dataset.
	ReadGrid(file, key string) (*models.Grid, error)

	// ReadCube reads a 3D dataset.
	ReadCube(file, key string) (*models.Cube, error)

	// CheckExternalLink reports whether the key is an external link and
	// whether its target is reachable. It is side-effect-free and never
	// fails; an unreadable file yields (false, false, "").
	CheckExternalLink(file, key string) (isLink, broken bool, msg string)

	// CheckCompression reports whether the dataset uses a standard or
	// plugin compression filter that may be unavailable locally. It is
	// side-effect-free and never fails.
	CheckCompression(file, key string) (standard, plugin bool, msg string)
}

// ShapeText formats an array shape the way the value field displays it.
func ShapeText(shape []int) string {
	return fmt.Sprintf("%v", shape)
}
