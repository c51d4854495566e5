package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	// Outside any config directory the embedded YAML must apply.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Search.Metric != "manhattan" {
		t.Errorf("default metric = %q, expected manhattan", cfg.Search.Metric)
	}
	if cfg.Search.Moves != "cardinal" {
		t.Errorf("default moves = %q, expected cardinal", cfg.Search.Moves)
	}
	if cfg.Server.Port == 0 {
		t.Error("default server port should be set")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "search:\n  metric: euclidean\n  moves: king\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Search.Metric != "euclidean" || cfg.Search.Moves != "king" {
		t.Errorf("custom config not applied: %+v", cfg.Search)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing custom config")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("\t{{{"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestDefaultConfigMatchesEmbedded(t *testing.T) {
	hard := DefaultConfig()
	if hard.Search.Metric != "manhattan" || hard.Maps.Dir != "maps" {
		t.Errorf("hardcoded defaults drifted: %+v", hard)
	}
	if len(GetDefaultYAML()) == 0 {
		t.Error("embedded default YAML is empty")
	}
}
