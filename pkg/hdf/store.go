package hdf

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/hdf5"

	"hdfview/internal/models"
)

// Store reads HDF5/NeXus files through the go-native-netcdf HDF5 engine.
// Every method opens the file, does its work and closes it again.
type Store struct{}

// NewStore returns a file-backed Reader.
func NewStore() *Store {
	return &Store{}
}

var errNotPath = errors.New("key not present in file")

// Tree enumerates the file hierarchy. Children that cannot be opened are
// still listed as plain nodes so a partially readable file remains
// browsable.
func (s *Store) Tree(file string) ([]models.TreeNode, error) {
	root, err := hdf5.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file, err)
	}
	defer root.Close()

	top := models.TreeNode{
		ID:       filepath.Base(file),
		Label:    "/",
		Children: s.children(root, "/"),
	}
	return []models.TreeNode{top}, nil
}

// children lists the subgroups and datasets of one group as tree nodes.
func (s *Store) children(g api.Group, base string) []models.TreeNode {
	var nodes []models.TreeNode
	for _, name := range g.ListSubgroups() {
		full := path.Join(base, name)
		child, err := g.GetGroup(name)
		if err != nil {
			// Unreadable branch: keep the node so the key stays visible.
			nodes = append(nodes, models.TreeNode{ID: name, Label: full})
			continue
		}
		nodes = append(nodes, models.TreeNode{
			ID:       name,
			Label:    full,
			Children: s.children(child, full),
		})
	}
	for _, name := range g.ListVariables() {
		nodes = append(nodes, models.TreeNode{ID: name, Label: path.Join(base, name)})
	}
	return nodes
}

// Entry resolves a key and classifies what lives there. Missing keys are
// reported inline as KindNotPath rather than as errors.
func (s *Store) Entry(file, key string) (Entry, error) {
	root, err := hdf5.Open(file)
	if err != nil {
		return Entry{}, fmt.Errorf("opening %s: %w", file, err)
	}
	defer root.Close()

	group, base, err := s.locate(root, key)
	if errors.Is(err, errNotPath) {
		return Entry{Kind: models.KindNotPath}, nil
	}
	if err != nil {
		return Entry{}, err
	}
	if base == "" {
		return Entry{Kind: models.KindGroup}, nil
	}

	vg, err := group.GetVarGetter(base)
	if err != nil {
		return Entry{}, fmt.Errorf("resolving %s: %w", key, err)
	}

	rank := len(vg.Dimensions())
	if rank == 0 {
		val, err := vg.Values()
		if err != nil {
			return Entry{}, fmt.Errorf("reading %s: %w", key, err)
		}
		kind, text := classifyScalar(val)
		return Entry{Kind: kind, Value: text, Dtype: vg.GoType()}, nil
	}

	shape, err := shapeOf(vg)
	if err != nil {
		return Entry{}, fmt.Errorf("reading shape of %s: %w", key, err)
	}
	return Entry{Kind: models.KindArray, Shape: shape, Dtype: vg.GoType()}, nil
}

// ReadVector reads a 1D dataset as float64 values.
func (s *Store) ReadVector(file, key string) (models.Vector, error) {
	data, shape, _, err := s.readFlat(file, key)
	if err != nil {
		return nil, err
	}
	if len(shape) != 1 {
		return nil, fmt.Errorf("%s: expected 1D data, got %dD", key, len(shape))
	}
	return models.Vector(data), nil
}

// ReadGrid reads a 2D dataset.
func (s *Store) ReadGrid(file, key string) (*models.Grid, error) {
	data, shape, dtype, err := s.readFlat(file, key)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, fmt.Errorf("%s: expected 2D data, got %dD", key, len(shape))
	}
	return &models.Grid{Data: data, Height: shape[0], Width: shape[1], Dtype: dtype}, nil
}

// ReadCube reads a 3D dataset.
func (s *Store) ReadCube(file, key string) (*models.Cube, error) {
	data, shape, dtype, err := s.readFlat(file, key)
	if err != nil {
		return nil, err
	}
	if len(shape) != 3 {
		return nil, fmt.Errorf("%s: expected 3D data, got %dD", key, len(shape))
	}
	return &models.Cube{
		Data:  data,
		Depth: shape[0], Height: shape[1], Width: shape[2],
		Dtype: dtype,
	}, nil
}

// CheckExternalLink re-resolves the key and reports whether the failure is
// link-typed. The engine surfaces external links it cannot follow as
// sentinel errors, which is exactly the broken-link case the viewer needs
// to diagnose.
func (s *Store) CheckExternalLink(file, key string) (isLink, broken bool, msg string) {
	err := s.probe(file, key)
	if err == nil {
		return false, false, ""
	}
	if errors.Is(err, hdf5.ErrExternal) || errors.Is(err, hdf5.ErrLinkType) {
		return true, true, fmt.Sprintf(
			"Dataset is an external link but failed to link. Error: %v", err)
	}
	return false, false, ""
}

// CheckCompression re-resolves the key and reports whether the failure is
// caused by a compression filter the engine cannot decode.
func (s *Store) CheckCompression(file, key string) (standard, plugin bool, msg string) {
	err := s.probe(file, key)
	if err == nil {
		return false, false, ""
	}
	if errors.Is(err, hdf5.ErrUnsupportedFilter) {
		return true, false, fmt.Sprintf(
			"Dataset is compressed using standard method: %v", err)
	}
	if errors.Is(err, hdf5.ErrUnknownCompression) {
		return false, true, fmt.Sprintf(
			"Dataset is compressed using external plugin: %v", err)
	}
	return false, false, ""
}

// probe opens the file and forces a full read of the key, returning the
// raw engine error for classification.
func (s *Store) probe(file, key string) error {
	_, _, _, err := s.readFlat(file, key)
	return err
}

// readFlat opens the file, reads the dataset behind key and flattens it to
// row-major float64 values plus its shape and dtype name.
func (s *Store) readFlat(file, key string) ([]float64, []int, string, error) {
	root, err := hdf5.Open(file)
	if err != nil {
		return nil, nil, "", fmt.Errorf("opening %s: %w", file, err)
	}
	defer root.Close()

	group, base, err := s.locate(root, key)
	if err != nil {
		return nil, nil, "", err
	}
	if base == "" {
		return nil, nil, "", fmt.Errorf("%s is a group, not a dataset", key)
	}
	vg, err := group.GetVarGetter(base)
	if err != nil {
		return nil, nil, "", fmt.Errorf("resolving %s: %w", key, err)
	}
	val, err := vg.Values()
	if err != nil {
		return nil, nil, "", fmt.Errorf("reading %s: %w", key, err)
	}
	data, shape, err := flattenFloats(val)
	if err != nil {
		return nil, nil, "", fmt.Errorf("converting %s: %w", key, err)
	}
	return data, shape, vg.GoType(), nil
}

// locate walks to the group containing key. It returns the group and the
// final dataset name, or an empty name when the key itself is a group.
// Missing keys return errNotPath.
func (s *Store) locate(root api.Group, key string) (api.Group, string, error) {
	key = strings.Trim(key, "/")
	if key == "" {
		return root, "", nil
	}

	dir, base := path.Split(key)
	group := root
	if dir = strings.Trim(dir, "/"); dir != "" {
		g, err := root.GetGroup(dir)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", key, errNotPath)
		}
		group = g
	}

	for _, name := range group.ListVariables() {
		if name == base {
			return group, base, nil
		}
	}
	for _, name := range group.ListSubgroups() {
		if name == base {
			g, err := group.GetGroup(base)
			if err != nil {
				return nil, "", fmt.Errorf("opening group %s: %w", key, err)
			}
			return g, "", nil
		}
	}
	return nil, "", fmt.Errorf("%s: %w", key, errNotPath)
}

// classifyScalar maps a scalar value to its display kind and text. Booleans
// render in integer form.
func classifyScalar(v interface{}) (models.DataKind, string) {
	switch x := v.(type) {
	case string:
		return models.KindString, x
	case bool:
		if x {
			return models.KindBoolean, "1"
		}
		return models.KindBoolean, "0"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return models.KindNumber, fmt.Sprintf("%d", rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return models.KindNumber, fmt.Sprintf("%d", rv.Uint())
	case reflect.Float32, reflect.Float64:
		return models.KindNumber, fmt.Sprintf("%g", rv.Float())
	}
	return models.KindUnknown, ""
}

// shapeOf determines the dataset shape without reading the whole array:
// the first dimension comes from Len, the rest from a single leading row.
func shapeOf(vg api.VarGetter) ([]int, error) {
	first := int(vg.Len())
	shape := []int{first}
	if first == 0 {
		return shape, nil
	}
	row, err := vg.GetSlice(0, 1)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(row)
	if rv.Kind() != reflect.Slice {
		return shape, nil
	}
	// row is a length-1 slice of the remaining dimensions
	rv = rv.Index(0)
	for rv.Kind() == reflect.Slice {
		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			break
		}
		rv = rv.Index(0)
	}
	return shape, nil
}

// flattenFloats converts nested numeric slices to a flat row-major float64
// slice plus the array shape. Ragged arrays and non-numeric elements are
// rejected.
func flattenFloats(v interface{}) ([]float64, []int, error) {
	var shape []int
	rv := reflect.ValueOf(v)
	for probe := rv; probe.Kind() == reflect.Slice; {
		shape = append(shape, probe.Len())
		if probe.Len() == 0 {
			break
		}
		probe = probe.Index(0)
	}
	if len(shape) == 0 {
		return nil, nil, fmt.Errorf("scalar value, not an array")
	}

	n := 1
	for _, d := range shape {
		n *= d
	}
	out := make([]float64, 0, n)

	var walk func(rv reflect.Value, depth int) error
	walk = func(rv reflect.Value, depth int) error {
		if depth == len(shape) {
			switch rv.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				out = append(out, float64(rv.Int()))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				out = append(out, float64(rv.Uint()))
			case reflect.Float32, reflect.Float64:
				out = append(out, rv.Float())
			case reflect.Bool:
				if rv.Bool() {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			default:
				return fmt.Errorf("unsupported element type %s", rv.Kind())
			}
			return nil
		}
		if rv.Kind() != reflect.Slice || rv.Len() != shape[depth] {
			return fmt.Errorf("ragged array")
		}
		for i := 0; i < rv.Len(); i++ {
			if err := walk(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rv, 0); err != nil {
		return nil, nil, err
	}
	return out, shape, nil
}
