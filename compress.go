package vox

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is an optional envelope around a whole .vox file.
type Compression uint8

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1 // single-entry zip archive
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3 // lz4 frame format
	CompBR   Compression = 0x4 // brotli; has no magic number
	CompAuto Compression = 0xF // read side only: detect by magic number
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZIP:
		return "zip"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "br"
	case CompAuto:
		return "auto"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression maps a name as returned by String to a Compression.
// "brotli" is accepted for CompBR and the empty string for CompNone.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompNone, nil
	case "zip":
		return CompZIP, nil
	case "zstd":
		return CompZSTD, nil
	case "lz4":
		return CompLZ4, nil
	case "br", "brotli":
		return CompBR, nil
	case "auto":
		return CompAuto, nil
	default:
		return 0, fmt.Errorf("vox: unknown compression %q", name)
	}
}

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func(r io.Reader) (*zstd.Decoder, error) { return zstd.NewReader(r) }
	zipCreate     = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
	zipClose      = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
)

var (
	zipMagic  = []byte("PK\x03\x04")
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// DetectCompression identifies an envelope by its magic number. Anything
// unrecognized, including a plain .vox file or a brotli stream, is CompNone.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return CompZIP
	case bytes.HasPrefix(data, zstdMagic):
		return CompZSTD
	case bytes.HasPrefix(data, lz4Magic):
		return CompLZ4
	default:
		return CompNone
	}
}

// compressEnvelope wraps a serialized file. zipName names the archive entry
// for CompZIP.
func compressEnvelope(comp Compression, data []byte, zipName string) ([]byte, error) {
	switch comp {
	case CompNone:
		return data, nil
	case CompZIP:
		var buf bytes.Buffer
		if err := zipCompressNamed(&buf, zipName, data); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZSTD:
		return zstdCompress(data)
	case CompLZ4:
		var buf bytes.Buffer
		if err := lz4CompressTo(&buf, data); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompBR:
		var buf bytes.Buffer
		if err := brotliCompressTo(&buf, data); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: cannot write compression %s", ErrInvalidPayload, comp)
	}
}

// decompressEnvelope unwraps data. Output beyond maxUncompressed bytes
// fails with ErrLimitExceeded.
func decompressEnvelope(comp Compression, data []byte, maxUncompressed uint64) ([]byte, error) {
	if comp == CompAuto {
		comp = DetectCompression(data)
	}
	switch comp {
	case CompNone:
		return data, nil
	case CompZIP:
		return zipDecompress(data, maxUncompressed)
	case CompZSTD:
		return zstdDecompress(data, maxUncompressed)
	case CompLZ4:
		return readLimited(lz4.NewReader(bytes.NewReader(data)), maxUncompressed, "lz4")
	case CompBR:
		return readLimited(brotli.NewReader(bytes.NewReader(data)), maxUncompressed, "brotli")
	default:
		return nil, fmt.Errorf("%w: unknown compression %s", ErrInvalidPayload, comp)
	}
}

// readLimited reads r to EOF, refusing more than max bytes.
func readLimited(r io.Reader, max uint64, what string) ([]byte, error) {
	n := int64(math.MaxInt64)
	if max < math.MaxInt64 {
		n = int64(max) + 1
	}
	b, err := readAll(io.LimitReader(r, n))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, what, err)
	}
	if uint64(len(b)) > max {
		return nil, fmt.Errorf("%w: %s expands beyond %d bytes", ErrLimitExceeded, what, max)
	}
	return b, nil
}

// zipCompressNamed writes a zip archive holding in as its only entry.
func zipCompressNamed(w io.Writer, name string, in []byte) error {
	zw := zip.NewWriter(w)
	entry, err := zipCreate(zw, name)
	if err != nil {
		_ = zipClose(zw)
		return err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zipClose(zw)
		return err
	}
	return zipClose(zw)
}

// zipDecompress extracts the single file entry of a zip archive.
func zipDecompress(zipBytes []byte, max uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", ErrInvalidPayload, err)
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip must contain exactly one entry, has %d", ErrInvalidPayload, len(zr.File))
	}
	zf := zr.File[0]
	if zf.FileInfo().IsDir() {
		return nil, fmt.Errorf("%w: zip entry %q is a directory", ErrInvalidPayload, zf.Name)
	}
	if zf.UncompressedSize64 > max {
		return nil, fmt.Errorf("%w: zip entry of %d bytes", ErrLimitExceeded, zf.UncompressedSize64)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", ErrInvalidPayload, err)
	}
	defer rc.Close()
	return readLimited(rc, max, "zip")
}

func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, max uint64) ([]byte, error) {
	dec, err := newZstdReader(bytes.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrInvalidPayload, err)
	}
	defer dec.Close()
	return readLimited(dec, max, "zstd")
}

func lz4CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

func brotliCompressTo(w io.Writer, in []byte) error {
	bw := brotli.NewWriter(w)
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}
