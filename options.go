package vox

import "go.uber.org/zap"

type readConfig struct {
	limits      Limits
	logger      *zap.Logger
	compression Compression
}

type ReadOption func(*readConfig)

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits(), logger: zap.NewNop(), compression: CompAuto}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithLogger routes assembly diagnostics (skipped chunks, replaced scene
// nodes) to l at debug level.
func WithLogger(l *zap.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}

// WithCompression selects the envelope Parse and Decode expect. The
// default, CompAuto, recognizes zip, zstd and lz4 by their magic numbers;
// brotli streams have none and must be requested explicitly.
func WithCompression(comp Compression) ReadOption {
	return func(c *readConfig) { c.compression = comp }
}

type writeConfig struct {
	compression  Compression
	zipEntryName string
}

type WriteOption func(*writeConfig)

func newWriteConfig(opts []WriteOption) writeConfig {
	cfg := writeConfig{compression: CompNone, zipEntryName: "scene.vox"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithWriteCompression wraps the encoded file in the given envelope.
func WithWriteCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

// WithZipEntryName names the single archive entry written for CompZIP.
func WithZipEntryName(name string) WriteOption {
	return func(c *writeConfig) { c.zipEntryName = name }
}
