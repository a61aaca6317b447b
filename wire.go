package vox

import (
	"encoding/binary"
	"fmt"
	"math"
)

// reader is a little-endian cursor over an in-memory buffer.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, r.remaining())
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) f32() (float32, error) {
	v, err := r.u32()
	return math.Float32frombits(v), err
}

// span returns the next n bytes, n being a length read from the stream.
func (r *reader) span(n uint32) ([]byte, error) {
	if uint64(n) > uint64(r.remaining()) {
		return nil, fmt.Errorf("%w: length %d at offset %d exceeds %d remaining bytes", ErrTruncated, n, r.off, r.remaining())
	}
	return r.next(int(n))
}

func (r *reader) done() error {
	if n := r.remaining(); n != 0 {
		return fmt.Errorf("%w: %d bytes after offset %d", ErrTrailingBytes, n, r.off)
	}
	return nil
}

func appendU32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func appendI32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func appendF32(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

// chunkHeader is the fixed 12-byte prefix of every container.
type chunkHeader struct {
	Tag         Tag
	PayloadLen  uint32
	ChildrenLen uint32
}

func readChunkHeader(r *reader) (chunkHeader, error) {
	b, err := r.next(chunkHeaderSize)
	if err != nil {
		return chunkHeader{}, err
	}
	var h chunkHeader
	copy(h.Tag[:], b[0:4])
	h.PayloadLen = binary.LittleEndian.Uint32(b[4:8])
	h.ChildrenLen = binary.LittleEndian.Uint32(b[8:12])
	return h, nil
}

func appendChunkHeader(dst []byte, h chunkHeader) []byte {
	dst = append(dst, h.Tag[:]...)
	dst = appendU32(dst, h.PayloadLen)
	return appendU32(dst, h.ChildrenLen)
}

// fileHeader is the 8-byte prefix of a .vox file.
type fileHeader struct {
	Magic   [4]byte
	Version uint32
}

func readFileHeader(r *reader) (fileHeader, error) {
	b, err := r.next(8)
	if err != nil {
		return fileHeader{}, err
	}
	var h fileHeader
	copy(h.Magic[:], b[0:4])
	h.Version = binary.LittleEndian.Uint32(b[4:8])
	return h, nil
}

func appendFileHeader(dst []byte, h fileHeader) []byte {
	dst = append(dst, h.Magic[:]...)
	return appendU32(dst, h.Version)
}
