package vox

import (
	"fmt"
	"strconv"
)

// MatlType is the `_type` of a MATL chunk.
type MatlType uint8

const (
	MatlDiffuse MatlType = iota
	MatlMetal
	MatlGlass
	MatlEmit
	MatlBlend // blends between metal and glass
	MatlMedia // clouds and other participating media
)

var matlTypeNames = [...]string{
	MatlDiffuse: "_diffuse",
	MatlMetal:   "_metal",
	MatlGlass:   "_glass",
	MatlEmit:    "_emit",
	MatlBlend:   "_blend",
	MatlMedia:   "_media",
}

// String returns the on-disk `_type` value.
func (t MatlType) String() string {
	if int(t) < len(matlTypeNames) {
		return matlTypeNames[t]
	}
	return fmt.Sprintf("MatlType(%d)", uint8(t))
}

func parseMatlType(s string) (MatlType, bool) {
	for i, name := range matlTypeNames {
		if name == s {
			return MatlType(i), true
		}
	}
	return 0, false
}

// MatlProp is an optional numeric MATL property.
type MatlProp uint8

const (
	PropWeight  MatlProp = iota // _weight, [0,1]
	PropRough                   // _rough
	PropSpec                    // _spec
	PropIOR                     // _ior, stored as offset from 1.0
	PropAtt                     // _att
	PropFlux                    // _flux, unsigned integer
	PropDensity                 // _d
	PropAlpha                   // _alpha
	PropEmit                    // _emit
	PropLDR                     // _ldr
	PropMetal                   // _metal
	numMatlProps
)

var matlPropKeys = [numMatlProps]string{
	PropWeight:  "_weight",
	PropRough:   "_rough",
	PropSpec:    "_spec",
	PropIOR:     "_ior",
	PropAtt:     "_att",
	PropFlux:    "_flux",
	PropDensity: "_d",
	PropAlpha:   "_alpha",
	PropEmit:    "_emit",
	PropLDR:     "_ldr",
	PropMetal:   "_metal",
}

// Key returns the dictionary key of p.
func (p MatlProp) Key() string {
	if p < numMatlProps {
		return matlPropKeys[p]
	}
	return fmt.Sprintf("MatlProp(%d)", uint8(p))
}

const (
	matlKeyType    = "_type"
	matlKeyPlastic = "_plastic"
)

// Matl is the MATL chunk.
//
// Props holds the numeric properties present in the file. Float properties
// have float32 precision; PropFlux holds an integer. Extra keeps keys this
// package does not interpret so they survive a decode/encode cycle.
type Matl struct {
	ID      uint8
	Type    MatlType
	Props   map[MatlProp]float64
	Plastic bool
	Extra   Dict
}

// DecodeMatl decodes a MATL payload. Ids outside 0..255 fail with a
// *ValueError wrapping ErrInvalidMatlID; real files carry id 256, which
// Assemble skips.
func DecodeMatl(payload []byte) (Matl, error) { return decodePayload(payload, readMatl) }

func readMatl(r *reader) (Matl, error) {
	id, err := r.i32()
	if err != nil {
		return Matl{}, err
	}
	attrs, err := r.dict()
	if err != nil {
		return Matl{}, err
	}
	if id < 0 || id > PaletteSize {
		return Matl{}, valueErr(ErrInvalidMatlID, int64(id))
	}
	typ, ok := parseMatlType(attrs[matlKeyType])
	if !ok {
		return Matl{}, fmt.Errorf("%w: %q", ErrInvalidMatlType, attrs[matlKeyType])
	}
	m := Matl{ID: uint8(id), Type: typ, Props: make(map[MatlProp]float64)}
	for p := range numMatlProps {
		s, ok := attrs[p.Key()]
		if !ok {
			continue
		}
		v, err := parseMatlProp(p, s)
		if err != nil {
			return Matl{}, err
		}
		m.Props[p] = v
	}
	switch attrs[matlKeyPlastic] {
	case "", "0":
	case "1":
		m.Plastic = true
	default:
		return Matl{}, fmt.Errorf("%w: _plastic = %q", ErrInvalidMatlProperty, attrs[matlKeyPlastic])
	}
	for k, v := range attrs {
		if !knownMatlKey(k) {
			if m.Extra == nil {
				m.Extra = make(Dict)
			}
			m.Extra[k] = v
		}
	}
	return m, nil
}

func parseMatlProp(p MatlProp, s string) (float64, error) {
	if p == PropFlux {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %s = %q", ErrInvalidMatlProperty, p.Key(), s)
		}
		return float64(v), nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", ErrInvalidMatlProperty, p.Key(), s)
	}
	if p == PropWeight && !(v >= 0 && v <= 1) {
		return 0, fmt.Errorf("%w: _weight %v outside [0,1]", ErrInvalidMatlProperty, v)
	}
	return v, nil
}

func formatMatlProp(p MatlProp, v float64) string {
	if p == PropFlux {
		return strconv.FormatUint(uint64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 32)
}

func knownMatlKey(k string) bool {
	if k == matlKeyType || k == matlKeyPlastic {
		return true
	}
	for _, key := range matlPropKeys {
		if key == k {
			return true
		}
	}
	return false
}

func (m Matl) appendPayload(dst []byte) []byte {
	dst = appendI32(dst, int32(m.ID))
	attrs := make(Dict, len(m.Props)+len(m.Extra)+2)
	for k, v := range m.Extra {
		attrs[k] = v
	}
	attrs[matlKeyType] = m.Type.String()
	for p, v := range m.Props {
		attrs[p.Key()] = formatMatlProp(p, v)
	}
	if m.Plastic {
		attrs[matlKeyPlastic] = "1"
	}
	return AppendDict(dst, attrs)
}
