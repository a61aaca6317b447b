package vox

import (
	"fmt"
	"io"
)

// Serialize flattens s (see Flatten) and writes the chunks as a complete
// version 150 file.
func Serialize(s *Scene) ([]byte, error) {
	chunks, err := Flatten(s)
	if err != nil {
		return nil, err
	}
	return SerializeRaw(chunks), nil
}

// Encode writes s to w.
//
// By default the file is written without an envelope. Use
// WithWriteCompression to wrap it in zip, zstd, lz4 or brotli, and
// WithZipEntryName to name the zip entry.
func Encode(w io.Writer, s *Scene, opts ...WriteOption) error {
	cfg := newWriteConfig(opts)
	if cfg.compression == CompAuto {
		return fmt.Errorf("%w: CompAuto is only valid for reading", ErrInvalidPayload)
	}
	data, err := Serialize(s)
	if err != nil {
		return err
	}
	out, err := compressEnvelope(cfg.compression, data, cfg.zipEntryName)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
