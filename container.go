package vox

import "fmt"

// ReadRawChunk reads one container from the front of data and returns it
// with the unread remainder. A zero expected tag accepts any tag.
//
// The children region must hold back-to-back containers that consume it
// exactly. Nesting is bounded by the default Limits.
func ReadRawChunk(expected Tag, data []byte) (RawChunk, []byte, error) {
	return readRawChunk(expected, data, 0, defaultLimits())
}

func readRawChunk(expected Tag, data []byte, depth int, limits Limits) (RawChunk, []byte, error) {
	if depth > limits.MaxContainerDepth {
		return RawChunk{}, nil, fmt.Errorf("%w: container nesting deeper than %d", ErrLimitExceeded, limits.MaxContainerDepth)
	}
	r := reader{buf: data}
	h, err := readChunkHeader(&r)
	if err != nil {
		return RawChunk{}, nil, err
	}
	if expected != (Tag{}) && h.Tag != expected {
		return RawChunk{}, nil, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedTag, expected, h.Tag)
	}
	payload, err := r.span(h.PayloadLen)
	if err != nil {
		return RawChunk{}, nil, fmt.Errorf("%s payload: %w", h.Tag, err)
	}
	childData, err := r.span(h.ChildrenLen)
	if err != nil {
		return RawChunk{}, nil, fmt.Errorf("%s children: %w", h.Tag, err)
	}
	children, err := readChildren(childData, depth+1, limits)
	if err != nil {
		return RawChunk{}, nil, fmt.Errorf("%s children: %w", h.Tag, err)
	}
	return RawChunk{Tag: h.Tag, Payload: payload, Children: children}, data[r.off:], nil
}

func readChildren(data []byte, depth int, limits Limits) ([]RawChunk, error) {
	var children []RawChunk
	for len(data) > 0 {
		c, rest, err := readRawChunk(Tag{}, data, depth, limits)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
		data = rest
	}
	return children, nil
}

// ParseRaw reads the file framing (magic, version 150, MAIN container) and
// returns the top-level chunks without decoding them. Compressed envelopes
// are not unwrapped here; see Parse.
func ParseRaw(data []byte, opts ...ReadOption) ([]RawChunk, error) {
	cfg := newReadConfig(opts)
	return parseRaw(data, cfg.limits)
}

func parseRaw(data []byte, limits Limits) ([]RawChunk, error) {
	r := reader{buf: data}
	h, err := readFileHeader(&r)
	if err != nil {
		return nil, err
	}
	if h.Magic != Magic {
		return nil, ErrInvalidMagic
	}
	if h.Version != Version150 {
		return nil, valueErr(ErrFileVersionUnknown, int64(h.Version))
	}
	main, rest, err := readRawChunk(TagMain, data[r.off:], 0, limits)
	if err != nil {
		return nil, err
	}
	if len(main.Payload) > 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidMainChunk, len(main.Payload))
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d bytes after MAIN", ErrTrailingBytes, len(rest))
	}
	if len(main.Children) > limits.MaxChunks {
		return nil, fmt.Errorf("%w: %d chunks", ErrLimitExceeded, len(main.Children))
	}
	return main.Children, nil
}

// AppendTo appends c, including its children, in container framing.
func (c RawChunk) AppendTo(dst []byte) []byte {
	var children []byte
	for _, child := range c.Children {
		children = child.AppendTo(children)
	}
	return AppendRawChunk(dst, c.Tag, c.Payload, children)
}

// AppendRawChunk appends a container with the given payload and already
// framed children bytes.
func AppendRawChunk(dst []byte, tag Tag, payload, children []byte) []byte {
	dst = appendChunkHeader(dst, chunkHeader{
		Tag:         tag,
		PayloadLen:  uint32(len(payload)),
		ChildrenLen: uint32(len(children)),
	})
	dst = append(dst, payload...)
	return append(dst, children...)
}

// SerializeRaw writes a complete file holding chunks, in order, under MAIN.
// Chunk order is not checked.
func SerializeRaw(chunks []Chunk) []byte {
	var main []byte
	for _, c := range chunks {
		main = AppendRawChunk(main, c.Tag(), c.appendPayload(nil), nil)
	}
	dst := make([]byte, 0, 8+chunkHeaderSize+len(main))
	dst = appendFileHeader(dst, fileHeader{Magic: Magic, Version: Version150})
	return AppendRawChunk(dst, TagMain, nil, main)
}

// SerializeRawChunks is SerializeRaw for undecoded chunks, letting custom
// pipelines carry chunks this package does not know.
func SerializeRawChunks(chunks []RawChunk) []byte {
	var main []byte
	for _, c := range chunks {
		main = c.AppendTo(main)
	}
	dst := make([]byte, 0, 8+chunkHeaderSize+len(main))
	dst = appendFileHeader(dst, fileHeader{Magic: Magic, Version: Version150})
	return AppendRawChunk(dst, TagMain, nil, main)
}
