package server

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// hierarchical data file extensions shown by the open dialog
var dataExtensions = map[string]bool{
	".hdf":  true,
	".hdf5": true,
	".nxs":  true,
	".h5":   true,
}

// IsDataFile reports whether the path carries a recognized hierarchical
// data file extension.
func IsDataFile(path string) bool {
	return dataExtensions[strings.ToLower(filepath.Ext(path))]
}

// dirEntry is one row of a dialog listing.
type dirEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
}

// listDir lists a directory for the file dialogs. Directories always
// appear; with filter set, files outside the extension allow-list are
// hidden. Hidden entries are skipped, directories sort before files.
func listDir(dir string, filter bool) ([]dirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]dirEntry, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.IsDir() && filter && !IsDataFile(e.Name()) {
			continue
		}
		out = append(out, dirEntry{
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			IsDir: e.IsDir(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
