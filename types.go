package vox

const (
	// Version150 is the only file version this package reads and writes.
	Version150 uint32 = 150

	// PaletteSize is the number of addressable palette slots (1..255).
	PaletteSize = 255

	chunkHeaderSize = 12
)

// Magic is the 4-byte .vox file signature.
var Magic = [4]byte{'V', 'O', 'X', ' '}

// Tag is a 4-byte chunk identifier.
type Tag [4]byte

// Known chunk tags.
var (
	TagMain = Tag{'M', 'A', 'I', 'N'}
	TagPack = Tag{'P', 'A', 'C', 'K'}
	TagSize = Tag{'S', 'I', 'Z', 'E'}
	TagXYZI = Tag{'X', 'Y', 'Z', 'I'}
	TagRGBA = Tag{'R', 'G', 'B', 'A'}
	TagMatt = Tag{'M', 'A', 'T', 'T'}
	TagMatl = Tag{'M', 'A', 'T', 'L'}
	TagNTRN = Tag{'n', 'T', 'R', 'N'}
	TagNGRP = Tag{'n', 'G', 'R', 'P'}
	TagNSHP = Tag{'n', 'S', 'H', 'P'}
	TagLayr = Tag{'L', 'A', 'Y', 'R'}
)

// String returns the tag as text, escaping non-printable bytes.
func (t Tag) String() string {
	const hex = "0123456789abcdef"
	out := make([]byte, 0, 16)
	for _, b := range t {
		if b >= 0x20 && b <= 0x7e {
			out = append(out, b)
			continue
		}
		out = append(out, '\\', 'x', hex[b>>4], hex[b&0x0f])
	}
	return string(out)
}

// RawChunk is an undecoded container: a tag, its payload, and nested
// containers. Payload aliases the buffer it was read from.
type RawChunk struct {
	Tag      Tag
	Payload  []byte
	Children []RawChunk
}

// Chunk is a decoded chunk payload. The set of implementations is closed:
// Pack, Size, XYZI, RGBA, Matt, Matl, TransformNode, GroupNode, ShapeNode
// and Layr.
type Chunk interface {
	Tag() Tag
	appendPayload(dst []byte) []byte
}

// Color is an RGBA palette entry.
type Color struct {
	R, G, B, A uint8
}

// Voxel is a single filled cell of a model. ColorIndex addresses palette
// slot ColorIndex; 0 denotes the empty voxel.
type Voxel struct {
	X, Y, Z, ColorIndex uint8
}

// Pack is the deprecated PACK chunk holding the model count.
type Pack struct {
	Models uint32
}

// Size is the SIZE chunk: model dimensions, Z pointing up.
type Size struct {
	X, Y, Z uint32
}

// XYZI is the XYZI chunk: the voxels of the model announced by the
// preceding SIZE chunk.
type XYZI struct {
	Voxels []Voxel
}

// RGBA is the RGBA chunk. Colors[i] is palette slot i+1.
type RGBA struct {
	Colors [PaletteSize]Color
}

// Dict is a DICT attribute map. Duplicate keys on disk resolve to the last
// occurrence.
type Dict map[string]string

// TransformNode is the nTRN chunk. Only single-frame transforms exist in
// the format, so the frame is stored inline.
type TransformNode struct {
	NodeID      uint32
	Name        string // "_name"; empty when absent
	Hidden      bool
	ChildID     uint32
	LayerID     int32 // NoLayer when unassigned
	Rotation    Rotation
	Translation [3]int32
}

// GroupNode is the nGRP chunk.
type GroupNode struct {
	NodeID     uint32
	Attributes Dict
	Children   []uint32
}

// ShapeNode is the nSHP chunk. The format allows exactly one model.
type ShapeNode struct {
	NodeID          uint32
	Attributes      Dict
	ModelID         uint32
	ModelAttributes Dict
}

// Layr is the LAYR chunk.
type Layr struct {
	ID     uint32
	Name   string
	Hidden bool
}

// NoLayer is the layer id of a node that belongs to no layer.
const NoLayer int32 = -1

func (Pack) Tag() Tag          { return TagPack }
func (Size) Tag() Tag          { return TagSize }
func (XYZI) Tag() Tag          { return TagXYZI }
func (RGBA) Tag() Tag          { return TagRGBA }
func (Matt) Tag() Tag          { return TagMatt }
func (Matl) Tag() Tag          { return TagMatl }
func (TransformNode) Tag() Tag { return TagNTRN }
func (GroupNode) Tag() Tag     { return TagNGRP }
func (ShapeNode) Tag() Tag     { return TagNSHP }
func (Layr) Tag() Tag          { return TagLayr }
