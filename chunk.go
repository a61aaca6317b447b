package vox

// DecodeChunk decodes the payload of a chunk with the given tag. The
// payload must be consumed exactly. Tags outside the known set fail with an
// *UnknownChunkError.
func DecodeChunk(tag Tag, payload []byte) (Chunk, error) {
	switch tag {
	case TagPack:
		return decodeAs(payload, readPack)
	case TagSize:
		return decodeAs(payload, readSize)
	case TagXYZI:
		return decodeAs(payload, readXYZI)
	case TagRGBA:
		return decodeAs(payload, readRGBA)
	case TagMatt:
		return decodeAs(payload, readMatt)
	case TagMatl:
		return decodeAs(payload, readMatl)
	case TagNTRN:
		return decodeAs(payload, readTransformNode)
	case TagNGRP:
		return decodeAs(payload, readGroupNode)
	case TagNSHP:
		return decodeAs(payload, readShapeNode)
	case TagLayr:
		return decodeAs(payload, readLayr)
	default:
		return nil, &UnknownChunkError{Tag: tag}
	}
}

// EncodeChunk returns the payload bytes of c.
func EncodeChunk(c Chunk) []byte {
	return c.appendPayload(nil)
}

// AppendChunk appends c framed as a childless container.
func AppendChunk(dst []byte, c Chunk) []byte {
	return AppendRawChunk(dst, c.Tag(), c.appendPayload(nil), nil)
}

func decodePayload[T any](payload []byte, read func(*reader) (T, error)) (T, error) {
	r := reader{buf: payload}
	v, err := read(&r)
	if err == nil {
		err = r.done()
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func decodeAs[T Chunk](payload []byte, read func(*reader) (T, error)) (Chunk, error) {
	v, err := decodePayload(payload, read)
	if err != nil {
		return nil, err
	}
	return v, nil
}
