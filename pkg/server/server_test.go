package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"hdfview/internal/models"
	"hdfview/pkg/config"
	"hdfview/pkg/hdf"
)

// stubReader satisfies hdf.Reader for route tests that never touch a file.
type stubReader struct{}

func (stubReader) Tree(file string) ([]models.TreeNode, error) { return nil, nil }

func (stubReader) Entry(file, key string) (hdf.Entry, error) {
	return hdf.Entry{Kind: models.KindNotPath}, nil
}

func (stubReader) ReadVector(file, key string) (models.Vector, error) { return nil, nil }
func (stubReader) ReadGrid(file, key string) (*models.Grid, error)    { return nil, nil }
func (stubReader) ReadCube(file, key string) (*models.Cube, error)    { return nil, nil }

func (stubReader) CheckExternalLink(file, key string) (bool, bool, string) {
	return false, false, ""
}

func (stubReader) CheckCompression(file, key string) (bool, bool, string) {
	return false, false, ""
}

func newTestServer() *Server {
	return New(stubReader{}, config.DefaultConfig())
}

func TestSelectEndpointSetsKey(t *testing.T) {
	s := newTestServer()
	s.panel.Select("scan.nxs", "")

	req := httptest.NewRequest(fiber.MethodPost, "/api/select",
		strings.NewReader(`{"key": "/entry/data"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("select request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusNoContent)
	}

	st := s.panel.Snapshot()
	if st.FilePath != "scan.nxs" || st.Key != "/entry/data" {
		t.Errorf("selection = (%q, %q), want (scan.nxs, /entry/data)", st.FilePath, st.Key)
	}
}

func TestCloseEndpointClearsSelection(t *testing.T) {
	s := newTestServer()
	s.panel.Select("scan.nxs", "/entry/data")
	s.panel.Apply(controlUpdate{SliceIndex: intPtr(5)})

	req := httptest.NewRequest(fiber.MethodPost, "/api/close", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("close request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusNoContent)
	}

	st := s.panel.Snapshot()
	if st.FilePath != "" || st.Key != "" {
		t.Errorf("selection after close = (%q, %q), want empty", st.FilePath, st.Key)
	}
	if st.SliceIndex != 0 {
		t.Errorf("slice index after close = %d, want 0", st.SliceIndex)
	}
}
