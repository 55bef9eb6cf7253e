package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Session is the cross-session viewer state. It is read when a file dialog
// opens and written when one closes; absence of the file is not an error.
type Session struct {
	// LastFolder is the directory of the most recently picked file.
	LastFolder string `json:"last_folder"`
}

// DefaultSessionPath returns the OS-conventional location of the session
// record.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Hdfview", "hdfview_session.json")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Hdfview", "hdfview_session.json")
	default:
		return filepath.Join(home, ".hdfview", "hdfview_session.json")
	}
}

// LoadSession reads the session record. A missing file yields an empty
// session.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session file: %w", err)
	}

	s := &Session{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("error parsing session file: %w", err)
	}
	return s, nil
}

// SaveSession writes the session record, creating its directory on first
// use.
func SaveSession(s *Session, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("error marshaling session: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}
	return nil
}
