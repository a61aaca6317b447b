package vox

import "fmt"

// Layer dictionaries are seen with either hidden key; "_is_hidden" wins
// when both are present.
const attrLayerHidden = "_is_hidden"

// DecodeLayr decodes a LAYR payload.
func DecodeLayr(payload []byte) (Layr, error) { return decodePayload(payload, readLayr) }

func readLayr(r *reader) (Layr, error) {
	var l Layr
	var err error
	if l.ID, err = r.u32(); err != nil {
		return l, err
	}
	attrs, err := r.dict()
	if err != nil {
		return l, err
	}
	reserved, err := r.i32()
	if err != nil {
		return l, err
	}
	if reserved != -1 {
		return l, valueErr(ErrInvalidLayrReserved, int64(reserved))
	}
	l.Name = attrs[attrName]
	hidden, ok := attrs[attrLayerHidden]
	if !ok {
		hidden = attrs[attrHidden]
	}
	switch hidden {
	case "", "0":
	case "1":
		l.Hidden = true
	default:
		return l, fmt.Errorf("%w: hidden = %q", ErrInvalidLayrProperty, hidden)
	}
	return l, nil
}

func (l Layr) appendPayload(dst []byte) []byte {
	dst = appendU32(dst, l.ID)
	attrs := Dict{}
	if l.Name != "" {
		attrs[attrName] = l.Name
	}
	if l.Hidden {
		attrs[attrHidden] = "1"
	}
	dst = AppendDict(dst, attrs)
	return appendI32(dst, -1)
}
