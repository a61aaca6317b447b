package vox

import (
	"bytes"
	"io"
)

// Parse decodes a complete .vox file held in memory.
//
// The pipeline:
//  1. Unwraps a compressed envelope (auto-detected unless set with
//     WithCompression)
//  2. Reads the file framing and the top-level chunks (see ParseRaw)
//  3. Decodes each chunk and assembles the scene (see Assemble)
//
// Parse returns ErrInvalidMagic if data is not a .vox file, a *ValueError
// wrapping ErrFileVersionUnknown for versions other than 150, and a
// *ChunkError for the first chunk that fails to decode.
func Parse(data []byte, opts ...ReadOption) (*Scene, error) {
	cfg := newReadConfig(opts)
	return parse(data, cfg)
}

func parse(data []byte, cfg readConfig) (*Scene, error) {
	data, err := decompressEnvelope(cfg.compression, data, cfg.limits.MaxUncompressed)
	if err != nil {
		return nil, err
	}
	raw, err := parseRaw(data, cfg.limits)
	if err != nil {
		return nil, err
	}
	return assemble(raw, cfg)
}

// Decode reads r to EOF and parses the result like Parse. At most
// Limits.MaxUncompressed bytes are read.
func Decode(r io.Reader, opts ...ReadOption) (*Scene, error) {
	cfg := newReadConfig(opts)
	data, err := readLimited(r, cfg.limits.MaxUncompressed, "input")
	if err != nil {
		return nil, err
	}
	return parse(data, cfg)
}

// DecodeRaw reads r to EOF and returns its top-level chunks like ParseRaw,
// unwrapping a compressed envelope first.
func DecodeRaw(r io.Reader, opts ...ReadOption) ([]RawChunk, error) {
	cfg := newReadConfig(opts)
	data, err := readLimited(r, cfg.limits.MaxUncompressed, "input")
	if err != nil {
		return nil, err
	}
	if data, err = decompressEnvelope(cfg.compression, data, cfg.limits.MaxUncompressed); err != nil {
		return nil, err
	}
	return parseRaw(data, cfg.limits)
}

// IsVox reports whether data starts with the .vox magic number, possibly
// inside a zip, zstd or lz4 envelope. Brotli envelopes are not recognized.
func IsVox(data []byte) bool {
	if bytes.HasPrefix(data, Magic[:]) {
		return true
	}
	if DetectCompression(data) == CompNone {
		return false
	}
	head, err := decompressEnvelope(CompAuto, data, defaultLimits().MaxUncompressed)
	return err == nil && bytes.HasPrefix(head, Magic[:])
}
