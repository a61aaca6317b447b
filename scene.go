package vox

// Scene is an assembled .vox file.
type Scene struct {
	// Palette[i] is palette slot i+1. Slot 0 is the empty voxel and is not
	// stored.
	Palette [PaletteSize]Material
	Models  []Model
	Graph   SceneNode
	// Layers is indexed by layer id.
	Layers []Layer
}

// Model is a voxel grid.
type Model struct {
	Size   Size
	Voxels []Voxel
}

// Material is a palette entry.
type Material struct {
	Color Color
	Type  MaterialType
}

// Layer is an editing layer.
type Layer struct {
	Name   string
	Hidden bool
}

// NodeKind distinguishes group and shape nodes.
type NodeKind uint8

const (
	NodeGroup NodeKind = iota
	NodeShape
)

func (k NodeKind) String() string {
	if k == NodeShape {
		return "shape"
	}
	return "group"
}

// SceneNode positions a group of nodes or a single model. On disk it is an
// nTRN chunk followed by an nGRP or nSHP chunk.
type SceneNode struct {
	Rotation    Rotation
	Translation [3]int32
	LayerID     int32 // NoLayer when unassigned
	Kind        NodeKind
	Children    []SceneNode // NodeGroup only
	ModelID     uint32      // NodeShape only; indexes Scene.Models
}

// NewGroup returns an untransformed group node on no layer.
func NewGroup(children ...SceneNode) SceneNode {
	if children == nil {
		children = []SceneNode{}
	}
	return SceneNode{LayerID: NoLayer, Kind: NodeGroup, Children: children}
}

// NewShape returns an untransformed shape node on no layer.
func NewShape(modelID uint32) SceneNode {
	return SceneNode{LayerID: NoLayer, Kind: NodeShape, ModelID: modelID}
}

// NewScene returns an empty scene with the default palette, all diffuse,
// and an empty root group on layer 0.
func NewScene() *Scene {
	s := &Scene{Graph: NewGroup()}
	s.Graph.LayerID = 0
	for i, c := range DefaultPalette {
		s.Palette[i] = Material{Color: c, Type: DiffuseMaterial{}}
	}
	return s
}

// Material returns the palette entry for a voxel color index. Index 0 is
// the empty voxel and reports false.
func (s *Scene) Material(index uint8) (Material, bool) {
	if index == 0 {
		return Material{}, false
	}
	return s.Palette[index-1], true
}

// Color returns the color of a voxel color index.
func (s *Scene) Color(index uint8) (Color, bool) {
	m, ok := s.Material(index)
	return m.Color, ok
}

// Transform is a rotation followed by a translation.
type Transform struct {
	Rotation    Rotation
	Translation [3]int32
}

// Apply maps a point from node space into the parent space.
func (t Transform) Apply(p [3]int32) [3]int32 {
	q := t.Rotation.Apply(p)
	for i := range q {
		q[i] += t.Translation[i]
	}
	return q
}

// Then returns the transform applying child first and then t.
func (t Transform) Then(child Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Compose(child.Rotation),
		Translation: t.Apply(child.Translation),
	}
}

func (n *SceneNode) local() Transform {
	return Transform{Rotation: n.Rotation, Translation: n.Translation}
}

// Walk visits the graph in pre-order. world is the node's transform
// composed with those of its ancestors. Returning false from fn skips the
// node's children.
func (s *Scene) Walk(fn func(n *SceneNode, world Transform) bool) {
	walkNode(&s.Graph, Transform{}, fn)
}

func walkNode(n *SceneNode, parent Transform, fn func(*SceneNode, Transform) bool) {
	world := parent.Then(n.local())
	if !fn(n, world) || n.Kind != NodeGroup {
		return
	}
	for i := range n.Children {
		walkNode(&n.Children[i], world, fn)
	}
}

// VoxelCount returns the number of voxels placed by shape nodes, counting
// models once per reference.
func (s *Scene) VoxelCount() int {
	total := 0
	s.Walk(func(n *SceneNode, _ Transform) bool {
		if n.Kind == NodeShape && int(n.ModelID) < len(s.Models) {
			total += len(s.Models[n.ModelID].Voxels)
		}
		return true
	})
	return total
}
