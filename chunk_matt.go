package vox

import "fmt"

// MattType is the material kind of a MATT chunk.
type MattType uint32

const (
	MattDiffuse  MattType = 0
	MattMetal    MattType = 1
	MattGlass    MattType = 2
	MattEmissive MattType = 3
)

func (t MattType) String() string {
	switch t {
	case MattDiffuse:
		return "diffuse"
	case MattMetal:
		return "metal"
	case MattGlass:
		return "glass"
	case MattEmissive:
		return "emissive"
	default:
		return fmt.Sprintf("MattType(%d)", uint32(t))
	}
}

// MattProp is an optional MATT property. Its value is the property's bit in
// the on-disk property mask.
type MattProp uint32

const (
	MattPlastic     MattProp = 1 << iota // 0 or 1
	MattRoughness                        // (0,1]
	MattSpecular                         // (0,1]
	MattIOR                              // (0,1]
	MattAttenuation                      // (0,1]
	MattPower                            // (0,1]
	MattGlow                             // (0,1]
)

const mattTotalPowerBit = 1 << 7

// mattProps lists the optional properties in their on-disk order.
var mattProps = [...]MattProp{MattPlastic, MattRoughness, MattSpecular, MattIOR, MattAttenuation, MattPower, MattGlow}

// Matt is the deprecated MATT chunk. Newer files use Matl.
type Matt struct {
	ID     uint8 // palette slot, 1..255
	Type   MattType
	Weight float32 // 1.0 for diffuse, (0,1] otherwise
	Props  map[MattProp]float32
	// IsTotalPower is bit 7 of the property mask; it carries no value.
	IsTotalPower bool
}

// DecodeMatt decodes a MATT payload.
func DecodeMatt(payload []byte) (Matt, error) { return decodePayload(payload, readMatt) }

func readMatt(r *reader) (Matt, error) {
	id, err := r.u32()
	if err != nil {
		return Matt{}, err
	}
	if id < 1 || id > PaletteSize {
		return Matt{}, valueErr(ErrInvalidMattID, int64(id))
	}
	typ, err := r.u32()
	if err != nil {
		return Matt{}, err
	}
	weight, err := r.f32()
	if err != nil {
		return Matt{}, err
	}
	switch MattType(typ) {
	case MattDiffuse:
		if weight != 1.0 {
			return Matt{}, fmt.Errorf("%w: diffuse weight %v", ErrInvalidMattType, weight)
		}
	case MattMetal, MattGlass, MattEmissive:
		if !unitOpen(weight) {
			return Matt{}, fmt.Errorf("%w: %s weight %v", ErrInvalidMattType, MattType(typ), weight)
		}
	default:
		return Matt{}, fmt.Errorf("%w: type %d", ErrInvalidMattType, typ)
	}
	mask, err := r.u32()
	if err != nil {
		return Matt{}, err
	}
	m := Matt{
		ID:           uint8(id),
		Type:         MattType(typ),
		Weight:       weight,
		Props:        make(map[MattProp]float32),
		IsTotalPower: mask&mattTotalPowerBit != 0,
	}
	for _, p := range mattProps {
		if mask&uint32(p) == 0 {
			continue
		}
		v, err := r.f32()
		if err != nil {
			return Matt{}, err
		}
		if !mattPropValid(p, v) {
			return Matt{}, fmt.Errorf("%w: property bit %#x = %v", ErrInvalidMattProperty, uint32(p), v)
		}
		m.Props[p] = v
	}
	return m, nil
}

func mattPropValid(p MattProp, v float32) bool {
	if p == MattPlastic {
		return v == 0 || v == 1
	}
	return unitOpen(v)
}

// unitOpen reports whether v lies in (0,1].
func unitOpen(v float32) bool { return v > 0 && v <= 1 }

func (m Matt) appendPayload(dst []byte) []byte {
	dst = appendU32(dst, uint32(m.ID))
	dst = appendU32(dst, uint32(m.Type))
	if m.Type == MattDiffuse {
		dst = appendF32(dst, 1.0)
	} else {
		dst = appendF32(dst, m.Weight)
	}
	var mask uint32
	for _, p := range mattProps {
		if _, ok := m.Props[p]; ok {
			mask |= uint32(p)
		}
	}
	if m.IsTotalPower {
		mask |= mattTotalPowerBit
	}
	dst = appendU32(dst, mask)
	for _, p := range mattProps {
		if v, ok := m.Props[p]; ok {
			dst = appendF32(dst, v)
		}
	}
	return dst
}
