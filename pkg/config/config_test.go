package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8180 {
		t.Errorf("default port = %d, want 8180", cfg.Server.Port)
	}
	if cfg.Viewer.UpdateRateMs != 200 {
		t.Errorf("default update rate = %d, want 200", cfg.Viewer.UpdateRateMs)
	}
	if cfg.Viewer.Colormap != "gray" {
		t.Errorf("default colormap = %q, want gray", cfg.Viewer.Colormap)
	}
	if got := cfg.UpdateInterval(); got != 200*time.Millisecond {
		t.Errorf("UpdateInterval = %v, want 200ms", got)
	}
}

func TestDefaultConfigPathSitsNextToSession(t *testing.T) {
	cfgDir := filepath.Dir(DefaultConfigPath())
	sessDir := filepath.Dir(DefaultSessionPath())
	if cfgDir != sessDir {
		t.Errorf("config dir %q != session dir %q", cfgDir, sessDir)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config treated as error: %v", err)
	}
	if cfg.Server.Port != 8180 {
		t.Errorf("port = %d, want default 8180", cfg.Server.Port)
	}
}

func TestConfigRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := DefaultConfig()
	cfg.Server.Port = 9000
	cfg.Viewer.Colormap = "viridis"
	cfg.Viewer.ZoomFactors = []int{3, 9}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Server.Port != 9000 || loaded.Viewer.Colormap != "viridis" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.Viewer.ZoomFactors) != 2 || loaded.Viewer.ZoomFactors[1] != 9 {
		t.Errorf("zoom factors = %v", loaded.Viewer.ZoomFactors)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}
