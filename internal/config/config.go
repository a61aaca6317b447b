// Package config loads the YAML settings shared by the example tools.
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/logicossoftware/go-vox"
)

// Config holds decoder and logging settings.
type Config struct {
	Limits      LimitsConfig  `yaml:"limits"`
	Compression string        `yaml:"compression"`
	Logging     LoggingConfig `yaml:"logging"`
}

// LimitsConfig mirrors vox.Limits. Zero fields take the library default.
type LimitsConfig struct {
	MaxContainerDepth int    `yaml:"max_container_depth"`
	MaxSceneDepth     int    `yaml:"max_scene_depth"`
	MaxChunks         int    `yaml:"max_chunks"`
	MaxLayers         int    `yaml:"max_layers"`
	MaxUncompressed   uint64 `yaml:"max_uncompressed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the library's default limits.
func Default() *Config {
	l := vox.DefaultLimits()
	return &Config{
		Limits: LimitsConfig{
			MaxContainerDepth: l.MaxContainerDepth,
			MaxSceneDepth:     l.MaxSceneDepth,
			MaxChunks:         l.MaxChunks,
			MaxLayers:         l.MaxLayers,
			MaxUncompressed:   l.MaxUncompressed,
		},
		Compression: vox.CompAuto.String(),
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// ReadOptions converts the settings into decoder options.
func (c *Config) ReadOptions(log *zap.Logger) ([]vox.ReadOption, error) {
	comp, err := vox.ParseCompression(c.Compression)
	if err != nil {
		return nil, err
	}
	return []vox.ReadOption{
		vox.WithReadLimits(vox.Limits{
			MaxContainerDepth: c.Limits.MaxContainerDepth,
			MaxSceneDepth:     c.Limits.MaxSceneDepth,
			MaxChunks:         c.Limits.MaxChunks,
			MaxLayers:         c.Limits.MaxLayers,
			MaxUncompressed:   c.Limits.MaxUncompressed,
		}),
		vox.WithCompression(comp),
		vox.WithLogger(log),
	}, nil
}
