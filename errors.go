package vox

import (
	"errors"
	"fmt"
)

// Framing and resource errors.
var (
	ErrInvalidMagic     = errors.New("vox: invalid magic")
	ErrUnexpectedTag    = errors.New("vox: unexpected chunk tag")
	ErrTruncated        = errors.New("vox: truncated data")
	ErrTrailingBytes    = errors.New("vox: trailing bytes")
	ErrLimitExceeded    = errors.New("vox: limit exceeded")
	ErrInvalidPayload   = errors.New("vox: invalid compressed payload")
	ErrInvalidMainChunk = errors.New("vox: MAIN chunk carries a payload")
)

// Chunk payload errors. Errors carrying a decoded value are reported as
// *ValueError and unwrap to one of these.
var (
	ErrFileVersionUnknown = errors.New("vox: unsupported file version")
	ErrInvalidUTF8String  = errors.New("vox: string is not valid UTF-8")
	ErrUnknownChunk       = errors.New("vox: unknown chunk")

	ErrInvalidMattID       = errors.New("vox: MATT id outside palette")
	ErrInvalidMattType     = errors.New("vox: invalid MATT type or weight")
	ErrInvalidMattProperty = errors.New("vox: MATT property out of range")

	ErrInvalidTRNHidden   = errors.New("vox: nTRN _hidden is not 0 or 1")
	ErrInvalidTRNReserved = errors.New("vox: nTRN reserved id is not -1")
	ErrInvalidTRNFrames   = errors.New("vox: nTRN frame count is not 1")
	ErrInvalidTRNProperty = errors.New("vox: invalid nTRN frame property")

	ErrInvalidSHPModelCount = errors.New("vox: nSHP model count is not 1")

	ErrInvalidMatlID       = errors.New("vox: MATL id outside palette")
	ErrInvalidMatlType     = errors.New("vox: invalid MATL _type")
	ErrInvalidMatlProperty = errors.New("vox: invalid MATL property")

	ErrInvalidLayrReserved = errors.New("vox: LAYR reserved id is not -1")
	ErrInvalidLayrID       = errors.New("vox: invalid layer id")
	ErrInvalidLayrProperty = errors.New("vox: invalid LAYR property")
)

// Scene assembly errors.
var (
	ErrNonAlternatingModel = errors.New("vox: SIZE and XYZI chunks do not alternate")
	ErrInvalidScene        = errors.New("vox: scene graph references missing nodes or models")
)

// ValueError reports a field whose decoded value violates the format.
// Err is one of the package sentinel errors.
type ValueError struct {
	Err   error
	Value int64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v (%d)", e.Err, e.Value)
}

func (e *ValueError) Unwrap() error { return e.Err }

func valueErr(sentinel error, v int64) error {
	return &ValueError{Err: sentinel, Value: v}
}

// UnknownChunkError reports a chunk tag outside the known set.
type UnknownChunkError struct {
	Tag Tag
}

func (e *UnknownChunkError) Error() string {
	return fmt.Sprintf("%v %q", ErrUnknownChunk, e.Tag.String())
}

func (e *UnknownChunkError) Unwrap() error { return ErrUnknownChunk }

// ChunkError locates a failure in the top-level chunk stream.
type ChunkError struct {
	Index int
	Tag   Tag
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d (%s): %v", e.Index, e.Tag, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// tolerated reports whether err marks a chunk that real-world producers
// emit but that carries nothing actionable.
func tolerated(err error) bool {
	if errors.Is(err, ErrUnknownChunk) {
		return true
	}
	var ve *ValueError
	if errors.As(err, &ve) && errors.Is(ve.Err, ErrInvalidMatlID) {
		return ve.Value == 0 || ve.Value == 256
	}
	return false
}
