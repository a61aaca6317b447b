package vox

import "fmt"

// DecodePack decodes a PACK payload.
func DecodePack(payload []byte) (Pack, error) { return decodePayload(payload, readPack) }

// DecodeSize decodes a SIZE payload.
func DecodeSize(payload []byte) (Size, error) { return decodePayload(payload, readSize) }

// DecodeXYZI decodes an XYZI payload.
func DecodeXYZI(payload []byte) (XYZI, error) { return decodePayload(payload, readXYZI) }

// DecodeRGBA decodes an RGBA payload: 255 colors followed by one discarded
// entry.
func DecodeRGBA(payload []byte) (RGBA, error) { return decodePayload(payload, readRGBA) }

func readPack(r *reader) (Pack, error) {
	n, err := r.u32()
	return Pack{Models: n}, err
}

func (p Pack) appendPayload(dst []byte) []byte {
	return appendU32(dst, p.Models)
}

func readSize(r *reader) (Size, error) {
	b, err := r.next(12)
	if err != nil {
		return Size{}, err
	}
	sub := reader{buf: b}
	x, _ := sub.u32()
	y, _ := sub.u32()
	z, _ := sub.u32()
	return Size{X: x, Y: y, Z: z}, nil
}

func (s Size) appendPayload(dst []byte) []byte {
	dst = appendU32(dst, s.X)
	dst = appendU32(dst, s.Y)
	return appendU32(dst, s.Z)
}

func readXYZI(r *reader) (XYZI, error) {
	n, err := r.u32()
	if err != nil {
		return XYZI{}, err
	}
	if uint64(n)*4 > uint64(r.remaining()) {
		return XYZI{}, fmt.Errorf("%w: %d voxels need %d bytes, have %d", ErrTruncated, n, uint64(n)*4, r.remaining())
	}
	b, _ := r.next(int(n) * 4)
	voxels := make([]Voxel, n)
	for i := range voxels {
		v := b[i*4 : i*4+4]
		voxels[i] = Voxel{X: v[0], Y: v[1], Z: v[2], ColorIndex: v[3]}
	}
	return XYZI{Voxels: voxels}, nil
}

func (c XYZI) appendPayload(dst []byte) []byte {
	dst = appendU32(dst, uint32(len(c.Voxels)))
	for _, v := range c.Voxels {
		dst = append(dst, v.X, v.Y, v.Z, v.ColorIndex)
	}
	return dst
}

func readRGBA(r *reader) (RGBA, error) {
	b, err := r.next((PaletteSize + 1) * 4)
	if err != nil {
		return RGBA{}, err
	}
	var c RGBA
	for i := range c.Colors {
		p := b[i*4 : i*4+4]
		c.Colors[i] = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return c, nil
}

func (c RGBA) appendPayload(dst []byte) []byte {
	for _, col := range c.Colors {
		dst = append(dst, col.R, col.G, col.B, col.A)
	}
	// Slot 0 is never addressed; the trailing entry pads the table to 256.
	return append(dst, 0, 0, 0, 0)
}
