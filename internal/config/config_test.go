package config

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/logicossoftware/go-vox"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Limits.MaxChunks != vox.DefaultLimits().MaxChunks {
		t.Errorf("max_chunks %d", cfg.Limits.MaxChunks)
	}
	if cfg.Compression != "auto" || cfg.Logging.Level != "info" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vox.yaml")
	yml := "limits:\n  max_scene_depth: 12\ncompression: zstd\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Limits.MaxSceneDepth != 12 {
		t.Errorf("max_scene_depth %d", cfg.Limits.MaxSceneDepth)
	}
	if cfg.Limits.MaxLayers != vox.DefaultLimits().MaxLayers {
		t.Errorf("max_layers lost its default: %d", cfg.Limits.MaxLayers)
	}
	if cfg.Compression != "zstd" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("limits: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestReadOptions(t *testing.T) {
	cfg := Default()
	cfg.Limits.MaxChunks = 1
	opts, err := cfg.ReadOptions(zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	s := vox.NewScene()
	s.Models = []vox.Model{{Size: vox.Size{X: 1, Y: 1, Z: 1}}}
	s.Graph.Children = []vox.SceneNode{vox.NewShape(0)}
	data, err := vox.Serialize(s)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vox.Parse(data, opts...); err == nil {
		t.Error("expected the chunk limit to apply")
	}

	cfg.Compression = "rar"
	if _, err := cfg.ReadOptions(zap.NewNop()); err == nil {
		t.Error("expected error for unknown compression")
	}
}
