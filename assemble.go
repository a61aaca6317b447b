package vox

import (
	"fmt"

	"go.uber.org/zap"
)

// Assemble folds the top-level chunks of a file into a Scene.
//
// Chunks are decoded in order. Unknown tags and MATL chunks with id 0 or
// 256, which MagicaVoxel writes, are skipped; any other decode failure is
// returned as a *ChunkError. SIZE and XYZI chunks must alternate. Files
// without scene nodes get a single root node on layer 0: a shape showing
// model 0, or an empty group when there are no models. Otherwise node 0
// must be a transform and every node and model reachable from it must
// exist, else ErrInvalidScene.
func Assemble(raw []RawChunk, opts ...ReadOption) (*Scene, error) {
	return assemble(raw, newReadConfig(opts))
}

type assembler struct {
	log    *zap.Logger
	limits Limits
	scene  Scene

	pending  *Size
	nodes    map[uint32]Chunk
	resolved int
}

func assemble(raw []RawChunk, cfg readConfig) (*Scene, error) {
	a := &assembler{
		log:    cfg.logger,
		limits: cfg.limits,
		nodes:  make(map[uint32]Chunk),
	}
	for i, c := range DefaultPalette {
		a.scene.Palette[i] = Material{Color: c, Type: DiffuseMaterial{}}
	}
	for i, rc := range raw {
		c, err := DecodeChunk(rc.Tag, rc.Payload)
		if err != nil {
			if tolerated(err) {
				a.log.Debug("skipping chunk", zap.Int("index", i), zap.Stringer("tag", rc.Tag), zap.Error(err))
				continue
			}
			return nil, &ChunkError{Index: i, Tag: rc.Tag, Err: err}
		}
		if err := a.apply(c); err != nil {
			return nil, &ChunkError{Index: i, Tag: rc.Tag, Err: err}
		}
	}
	if a.pending != nil {
		a.log.Debug("SIZE chunk without XYZI at end of file", zap.Uint32("x", a.pending.X), zap.Uint32("y", a.pending.Y), zap.Uint32("z", a.pending.Z))
	}
	graph, err := a.graph()
	if err != nil {
		return nil, err
	}
	a.scene.Graph = graph
	return &a.scene, nil
}

func (a *assembler) apply(c Chunk) error {
	switch c := c.(type) {
	case Pack:
	case Size:
		if a.pending != nil {
			return fmt.Errorf("%w: SIZE follows SIZE", ErrNonAlternatingModel)
		}
		a.pending = &c
	case XYZI:
		if a.pending == nil {
			return fmt.Errorf("%w: XYZI without preceding SIZE", ErrNonAlternatingModel)
		}
		a.scene.Models = append(a.scene.Models, Model{Size: *a.pending, Voxels: c.Voxels})
		a.pending = nil
	case RGBA:
		for i, col := range c.Colors {
			a.scene.Palette[i].Color = col
		}
	case Matt:
		// Validated to 1..255 by the codec.
		a.scene.Palette[c.ID-1].Type = MaterialFromMatt(c)
	case Matl:
		if c.ID == 0 {
			a.log.Debug("ignoring MATL for palette slot 0")
			return nil
		}
		a.scene.Palette[c.ID-1].Type = MaterialFromMatl(c)
	case Layr:
		if uint64(c.ID) >= uint64(a.limits.MaxLayers) {
			return fmt.Errorf("%w: layer id %d", ErrLimitExceeded, c.ID)
		}
		for uint32(len(a.scene.Layers)) <= c.ID {
			a.scene.Layers = append(a.scene.Layers, Layer{})
		}
		a.scene.Layers[c.ID] = Layer{Name: c.Name, Hidden: c.Hidden}
	case TransformNode:
		a.addNode(c.NodeID, c)
	case GroupNode:
		a.addNode(c.NodeID, c)
	case ShapeNode:
		a.addNode(c.NodeID, c)
	}
	return nil
}

func (a *assembler) addNode(id uint32, c Chunk) {
	if prev, ok := a.nodes[id]; ok {
		a.log.Debug("replacing scene node", zap.Uint32("node_id", id), zap.Stringer("previous", prev.Tag()), zap.Stringer("tag", c.Tag()))
	}
	a.nodes[id] = c
}

func (a *assembler) graph() (SceneNode, error) {
	if len(a.nodes) == 0 {
		a.log.Debug("no scene graph, synthesizing root", zap.Int("models", len(a.scene.Models)))
		root := NewGroup()
		if len(a.scene.Models) > 0 {
			root = NewShape(0)
		}
		root.LayerID = 0
		return root, nil
	}
	return a.resolve(0, 0, make(map[uint32]bool))
}

// resolve builds the node rooted at transform id. path holds the transform
// ids on the way from node 0.
func (a *assembler) resolve(id uint32, depth int, path map[uint32]bool) (SceneNode, error) {
	if depth > a.limits.MaxSceneDepth {
		return SceneNode{}, fmt.Errorf("%w: scene deeper than %d", ErrLimitExceeded, a.limits.MaxSceneDepth)
	}
	if a.resolved++; a.resolved > a.limits.MaxChunks {
		return SceneNode{}, fmt.Errorf("%w: scene expands to more than %d nodes", ErrLimitExceeded, a.limits.MaxChunks)
	}
	if path[id] {
		return SceneNode{}, fmt.Errorf("%w: node %d is its own ancestor", ErrInvalidScene, id)
	}
	t, ok := a.nodes[id].(TransformNode)
	if !ok {
		return SceneNode{}, fmt.Errorf("%w: node %d is not a transform", ErrInvalidScene, id)
	}
	n := SceneNode{Rotation: t.Rotation, Translation: t.Translation, LayerID: t.LayerID}
	switch child := a.nodes[t.ChildID].(type) {
	case GroupNode:
		path[id] = true
		defer delete(path, id)
		n.Kind = NodeGroup
		n.Children = make([]SceneNode, 0, len(child.Children))
		for _, cid := range child.Children {
			c, err := a.resolve(cid, depth+1, path)
			if err != nil {
				return SceneNode{}, err
			}
			n.Children = append(n.Children, c)
		}
	case ShapeNode:
		if uint64(child.ModelID) >= uint64(len(a.scene.Models)) {
			return SceneNode{}, fmt.Errorf("%w: node %d shows model %d of %d", ErrInvalidScene, t.ChildID, child.ModelID, len(a.scene.Models))
		}
		n.Kind = NodeShape
		n.ModelID = child.ModelID
	default:
		return SceneNode{}, fmt.Errorf("%w: transform %d has no group or shape child %d", ErrInvalidScene, id, t.ChildID)
	}
	return n, nil
}
