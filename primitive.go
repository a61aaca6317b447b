package vox

import (
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"
)

// ReadString decodes a STRING (u32 byte length, UTF-8 bytes, no
// terminator) from the front of b and returns the rest.
func ReadString(b []byte) (string, []byte, error) {
	r := reader{buf: b}
	s, err := r.string()
	if err != nil {
		return "", nil, err
	}
	return s, b[r.off:], nil
}

// AppendString appends s as a STRING.
func AppendString(dst []byte, s string) []byte {
	dst = appendU32(dst, uint32(len(s)))
	return append(dst, s...)
}

// ReadDict decodes a DICT (u32 pair count, then key/value STRINGs) from
// the front of b and returns the rest.
func ReadDict(b []byte) (Dict, []byte, error) {
	r := reader{buf: b}
	d, err := r.dict()
	if err != nil {
		return nil, nil, err
	}
	return d, b[r.off:], nil
}

// AppendDict appends d as a DICT. Keys are written in sorted order so equal
// maps always produce equal bytes.
func AppendDict(dst []byte, d Dict) []byte {
	dst = appendU32(dst, uint32(len(d)))
	for _, k := range slices.Sorted(maps.Keys(d)) {
		dst = AppendString(dst, k)
		dst = AppendString(dst, d[k])
	}
	return dst
}

func (r *reader) string() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	start := r.off
	b, err := r.span(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: at offset %d", ErrInvalidUTF8String, start)
	}
	return string(b), nil
}

func (r *reader) dict() (Dict, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	// Each pair needs at least two length prefixes.
	if uint64(n)*8 > uint64(r.remaining()) {
		return nil, fmt.Errorf("%w: %d dictionary pairs cannot fit in %d bytes", ErrTruncated, n, r.remaining())
	}
	d := make(Dict, n)
	for range n {
		k, err := r.string()
		if err != nil {
			return nil, err
		}
		v, err := r.string()
		if err != nil {
			return nil, err
		}
		d[k] = v
	}
	return d, nil
}
