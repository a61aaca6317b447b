package vox

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	attrName   = "_name"
	attrHidden = "_hidden"
	attrRot    = "_r"
	attrTrans  = "_t"
)

// DecodeTransformNode decodes an nTRN payload.
func DecodeTransformNode(payload []byte) (TransformNode, error) {
	return decodePayload(payload, readTransformNode)
}

// DecodeGroupNode decodes an nGRP payload.
func DecodeGroupNode(payload []byte) (GroupNode, error) {
	return decodePayload(payload, readGroupNode)
}

// DecodeShapeNode decodes an nSHP payload.
func DecodeShapeNode(payload []byte) (ShapeNode, error) {
	return decodePayload(payload, readShapeNode)
}

func readTransformNode(r *reader) (TransformNode, error) {
	var n TransformNode
	var err error
	if n.NodeID, err = r.u32(); err != nil {
		return n, err
	}
	attrs, err := r.dict()
	if err != nil {
		return n, err
	}
	n.Name = attrs[attrName]
	switch attrs[attrHidden] {
	case "", "0":
	case "1":
		n.Hidden = true
	default:
		return n, fmt.Errorf("%w: %q", ErrInvalidTRNHidden, attrs[attrHidden])
	}
	if n.ChildID, err = r.u32(); err != nil {
		return n, err
	}
	reserved, err := r.i32()
	if err != nil {
		return n, err
	}
	if reserved != -1 {
		return n, valueErr(ErrInvalidTRNReserved, int64(reserved))
	}
	if n.LayerID, err = r.i32(); err != nil {
		return n, err
	}
	if n.LayerID < NoLayer {
		return n, valueErr(ErrInvalidLayrID, int64(n.LayerID))
	}
	frames, err := r.i32()
	if err != nil {
		return n, err
	}
	if frames != 1 {
		return n, valueErr(ErrInvalidTRNFrames, int64(frames))
	}
	frame, err := r.dict()
	if err != nil {
		return n, err
	}
	if s, ok := frame[attrTrans]; ok {
		if n.Translation, err = parseTranslation(s); err != nil {
			return n, err
		}
	}
	if s, ok := frame[attrRot]; ok {
		if n.Rotation, err = parseRotation(s); err != nil {
			return n, err
		}
	}
	return n, nil
}

// parseTranslation parses "x y z": three decimal integers, each with an
// optional leading '-', separated by single spaces.
func parseTranslation(s string) ([3]int32, error) {
	var t [3]int32
	parts := strings.Split(s, " ")
	if len(parts) != 3 {
		return t, fmt.Errorf("%w: _t = %q", ErrInvalidTRNProperty, s)
	}
	for i, p := range parts {
		digits := strings.TrimPrefix(p, "-")
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return t, fmt.Errorf("%w: _t = %q", ErrInvalidTRNProperty, s)
		}
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return t, fmt.Errorf("%w: _t = %q", ErrInvalidTRNProperty, s)
		}
		t[i] = int32(v)
	}
	return t, nil
}

func parseRotation(s string) (Rotation, error) {
	b, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return Rotation{}, fmt.Errorf("%w: _r = %q", ErrInvalidTRNProperty, s)
	}
	rot, ok := RotationFromByte(byte(b))
	if !ok {
		return Rotation{}, fmt.Errorf("%w: _r = %d is not a permutation", ErrInvalidTRNProperty, b)
	}
	return rot, nil
}

func (n TransformNode) appendPayload(dst []byte) []byte {
	dst = appendU32(dst, n.NodeID)
	attrs := Dict{}
	if n.Name != "" {
		attrs[attrName] = n.Name
	}
	if n.Hidden {
		attrs[attrHidden] = "1"
	}
	dst = AppendDict(dst, attrs)
	dst = appendU32(dst, n.ChildID)
	dst = appendI32(dst, -1)
	dst = appendI32(dst, n.LayerID)
	dst = appendI32(dst, 1)
	frame := Dict{}
	if !n.Rotation.IsIdentity() {
		frame[attrRot] = strconv.Itoa(int(n.Rotation.Byte()))
	}
	if n.Translation != ([3]int32{}) {
		t := n.Translation
		frame[attrTrans] = fmt.Sprintf("%d %d %d", t[0], t[1], t[2])
	}
	return AppendDict(dst, frame)
}

func readGroupNode(r *reader) (GroupNode, error) {
	var g GroupNode
	var err error
	if g.NodeID, err = r.u32(); err != nil {
		return g, err
	}
	if g.Attributes, err = r.dict(); err != nil {
		return g, err
	}
	n, err := r.u32()
	if err != nil {
		return g, err
	}
	if uint64(n)*4 > uint64(r.remaining()) {
		return g, fmt.Errorf("%w: %d child ids need %d bytes, have %d", ErrTruncated, n, uint64(n)*4, r.remaining())
	}
	g.Children = make([]uint32, n)
	for i := range g.Children {
		g.Children[i], _ = r.u32()
	}
	return g, nil
}

func (g GroupNode) appendPayload(dst []byte) []byte {
	dst = appendU32(dst, g.NodeID)
	dst = AppendDict(dst, g.Attributes)
	dst = appendU32(dst, uint32(len(g.Children)))
	for _, c := range g.Children {
		dst = appendU32(dst, c)
	}
	return dst
}

func readShapeNode(r *reader) (ShapeNode, error) {
	var s ShapeNode
	var err error
	if s.NodeID, err = r.u32(); err != nil {
		return s, err
	}
	if s.Attributes, err = r.dict(); err != nil {
		return s, err
	}
	count, err := r.u32()
	if err != nil {
		return s, err
	}
	if count != 1 {
		return s, valueErr(ErrInvalidSHPModelCount, int64(count))
	}
	if s.ModelID, err = r.u32(); err != nil {
		return s, err
	}
	if s.ModelAttributes, err = r.dict(); err != nil {
		return s, err
	}
	return s, nil
}

func (s ShapeNode) appendPayload(dst []byte) []byte {
	dst = appendU32(dst, s.NodeID)
	dst = AppendDict(dst, s.Attributes)
	dst = appendU32(dst, 1)
	dst = appendU32(dst, s.ModelID)
	return AppendDict(dst, s.ModelAttributes)
}
