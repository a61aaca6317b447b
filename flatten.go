package vox

// Flatten converts s into the chunk sequence Serialize writes, in the
// order MagicaVoxel uses: SIZE/XYZI pairs, RGBA, the scene graph, LAYR
// chunks, then one MATL per palette slot. No PACK chunk is produced.
//
// Scene nodes are numbered in pre-order starting at 0. The scene must pass
// Validate.
func Flatten(s *Scene) ([]Chunk, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	chunks := make([]Chunk, 0, 2*len(s.Models)+1+len(s.Layers)+PaletteSize+4)
	for _, m := range s.Models {
		chunks = append(chunks, m.Size, XYZI{Voxels: m.Voxels})
	}

	var rgba RGBA
	for i, m := range s.Palette {
		rgba.Colors[i] = m.Color
	}
	chunks = append(chunks, rgba)

	e := exporter{chunks: chunks}
	e.export(&s.Graph)
	chunks = e.chunks

	for i, l := range s.Layers {
		chunks = append(chunks, Layr{ID: uint32(i), Name: l.Name, Hidden: l.Hidden})
	}
	for i, m := range s.Palette {
		chunks = append(chunks, MatlFromMaterial(uint8(i+1), m.Type))
	}
	return chunks, nil
}

type exporter struct {
	chunks []Chunk
	next   uint32
}

// export appends n and its subtree and returns the id of n's transform.
// A group's nGRP is appended before its children and filled in once their
// ids are known.
func (e *exporter) export(n *SceneNode) uint32 {
	id := e.next
	e.next++
	e.chunks = append(e.chunks, TransformNode{
		NodeID:      id,
		ChildID:     e.next,
		LayerID:     n.LayerID,
		Rotation:    n.Rotation,
		Translation: n.Translation,
	})

	if n.Kind == NodeShape {
		e.chunks = append(e.chunks, ShapeNode{
			NodeID:          e.next,
			Attributes:      Dict{},
			ModelID:         n.ModelID,
			ModelAttributes: Dict{},
		})
		e.next++
		return id
	}

	group := GroupNode{NodeID: e.next, Attributes: Dict{}, Children: make([]uint32, 0, len(n.Children))}
	slot := len(e.chunks)
	e.chunks = append(e.chunks, group)
	e.next++
	for i := range n.Children {
		group.Children = append(group.Children, e.export(&n.Children[i]))
	}
	e.chunks[slot] = group
	return id
}
