package vox

// MaterialType is the kind-specific part of a palette material:
// DiffuseMaterial, MetalMaterial, GlassMaterial, EmitMaterial,
// BlendMaterial or MediaMaterial. A nil MaterialType is treated as diffuse.
type MaterialType interface {
	Kind() MatlType
	values() []float64
}

// DiffuseMaterial is the plain, non-reflective default.
type DiffuseMaterial struct{}

// MetalMaterial is a reflective material. IOR is stored as the offset from
// 1.0, so 0.3 means an index of refraction of 1.3.
type MetalMaterial struct {
	Rough float32
	IOR   float32
	Metal float32
}

// GlassMaterial is a semi-transparent material. IOR is an offset from 1.0.
type GlassMaterial struct {
	Rough  float32
	IOR    float32
	Weight float32
}

// EmitMaterial is a light source. Flux is the power slider.
type EmitMaterial struct {
	Emit float32
	Flux uint32
	LDR  float32
}

// BlendMaterial blends between metal and glass. IOR is an offset from 1.0.
type BlendMaterial struct {
	Rough float32
	Metal float32
	IOR   float32
	Alpha float32
}

// MediaMaterial is a participating medium such as cloud. Its properties are
// not interpreted.
type MediaMaterial struct{}

func (DiffuseMaterial) Kind() MatlType { return MatlDiffuse }
func (MetalMaterial) Kind() MatlType   { return MatlMetal }
func (GlassMaterial) Kind() MatlType   { return MatlGlass }
func (EmitMaterial) Kind() MatlType    { return MatlEmit }
func (BlendMaterial) Kind() MatlType   { return MatlBlend }
func (MediaMaterial) Kind() MatlType   { return MatlMedia }

// The values methods list properties in materialLayouts order.

func (DiffuseMaterial) values() []float64 { return nil }
func (MediaMaterial) values() []float64   { return nil }

func (m MetalMaterial) values() []float64 {
	return []float64{float64(m.Rough), float64(m.IOR), float64(m.Metal)}
}

func (m GlassMaterial) values() []float64 {
	return []float64{float64(m.Rough), float64(m.IOR), float64(m.Weight)}
}

func (m EmitMaterial) values() []float64 {
	return []float64{float64(m.Emit), float64(m.Flux), float64(m.LDR)}
}

func (m BlendMaterial) values() []float64 {
	return []float64{float64(m.Rough), float64(m.Metal), float64(m.IOR), float64(m.Alpha)}
}

type materialField struct {
	prop MatlProp
	def  float64
}

// materialLayouts is the single source of property defaults. A property is
// written to MATL only when it differs from def, and an absent key reads
// back as def.
var materialLayouts = [...][]materialField{
	MatlMetal: {{PropRough, 0}, {PropIOR, 0}, {PropMetal, 0}},
	MatlGlass: {{PropRough, 0}, {PropIOR, 0}, {PropWeight, 0}},
	MatlEmit:  {{PropEmit, 0}, {PropFlux, 1}, {PropLDR, 0}},
	MatlBlend: {{PropRough, 0}, {PropMetal, 0}, {PropIOR, 0}, {PropAlpha, 0}},
	MatlMedia: nil,
}

func layoutOf(kind MatlType) []materialField {
	if int(kind) < len(materialLayouts) {
		return materialLayouts[kind]
	}
	return nil
}

func materialFromValues(kind MatlType, v []float64) MaterialType {
	switch kind {
	case MatlMetal:
		return MetalMaterial{Rough: float32(v[0]), IOR: float32(v[1]), Metal: float32(v[2])}
	case MatlGlass:
		return GlassMaterial{Rough: float32(v[0]), IOR: float32(v[1]), Weight: float32(v[2])}
	case MatlEmit:
		return EmitMaterial{Emit: float32(v[0]), Flux: uint32(v[1]), LDR: float32(v[2])}
	case MatlBlend:
		return BlendMaterial{Rough: float32(v[0]), Metal: float32(v[1]), IOR: float32(v[2]), Alpha: float32(v[3])}
	case MatlMedia:
		return MediaMaterial{}
	default:
		return DiffuseMaterial{}
	}
}

// MaterialFromMatl resolves a MATL chunk into a material, filling absent
// properties with their defaults. Properties that do not apply to the
// chunk's type are dropped.
func MaterialFromMatl(m Matl) MaterialType {
	layout := layoutOf(m.Type)
	vals := make([]float64, len(layout))
	for i, f := range layout {
		v, ok := m.Props[f.prop]
		if !ok {
			v = f.def
		}
		vals[i] = v
	}
	return materialFromValues(m.Type, vals)
}

// MatlFromMaterial builds the MATL chunk for palette slot id, omitting
// properties equal to their defaults.
func MatlFromMaterial(id uint8, t MaterialType) Matl {
	if t == nil {
		t = DiffuseMaterial{}
	}
	kind := t.Kind()
	m := Matl{ID: id, Type: kind, Props: make(map[MatlProp]float64)}
	vals := t.values()
	for i, f := range layoutOf(kind) {
		if vals[i] != f.def {
			m.Props[f.prop] = vals[i]
		}
	}
	return m
}

// MaterialFromMatt converts a legacy MATT chunk. The weight becomes the
// metal-ness, glass weight or emission of the matching type, and the power
// property becomes the emitter's flux.
func MaterialFromMatt(m Matt) MaterialType {
	prop := func(p MattProp) float32 { return m.Props[p] }
	switch m.Type {
	case MattMetal:
		return MetalMaterial{Rough: prop(MattRoughness), IOR: prop(MattIOR), Metal: m.Weight}
	case MattGlass:
		return GlassMaterial{Rough: prop(MattRoughness), IOR: prop(MattIOR), Weight: m.Weight}
	case MattEmissive:
		e := EmitMaterial{Emit: m.Weight, Flux: 1}
		if p, ok := m.Props[MattPower]; ok {
			e.Flux = uint32(p)
		}
		return e
	default:
		return DiffuseMaterial{}
	}
}
