package server

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestIsDataFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"scan.nxs", true},
		{"tomo.hdf", true},
		{"data.h5", true},
		{"DATA.HDF5", true},
		{"notes.txt", false},
		{"archive.h5.bak", false},
		{"noext", false},
	}
	for _, tc := range tests {
		if got := IsDataFile(tc.path); got != tc.want {
			t.Errorf("IsDataFile(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestListDirFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"scan.nxs", "notes.txt", ".hidden.h5"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := listDir(dir, true)
	if err != nil {
		t.Fatalf("listDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want the directory and the data file", entries)
	}
	if !entries[0].IsDir || entries[0].Name != "sub" {
		t.Errorf("first entry = %+v, want the directory first", entries[0])
	}
	if entries[1].Name != "scan.nxs" {
		t.Errorf("second entry = %+v, want scan.nxs", entries[1])
	}
}

func TestListDirUnfilteredForSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.csv", "scan.h5"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := listDir(dir, false)
	if err != nil {
		t.Fatalf("listDir failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %+v, want both files", entries)
	}
}

func TestListDirMissingDirectory(t *testing.T) {
	if _, err := listDir(filepath.Join(t.TempDir(), "absent"), true); err == nil {
		t.Error("missing directory listed without error")
	}
}

func TestListenRejectsBusyPort(t *testing.T) {
	ln, err := Listen(0)
	if err != nil {
		t.Fatalf("Listen on ephemeral port failed: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	if _, err := Listen(port); err == nil {
		t.Errorf("second bind on port %d succeeded", port)
	}
}
