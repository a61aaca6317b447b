package vox

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestAssembleNonAlternatingModel(t *testing.T) {
	size := Size{X: 1, Y: 1, Z: 1}
	xyzi := XYZI{Voxels: []Voxel{{0, 0, 0, 1}}}
	tests := []struct {
		name   string
		chunks []Chunk
		index  int
	}{
		{"size size xyzi", []Chunk{size, size, xyzi}, 1},
		{"size xyzi xyzi", []Chunk{size, xyzi, xyzi}, 2},
		{"xyzi first", []Chunk{xyzi}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(rawOf(tt.chunks...))
			if !errors.Is(err, ErrNonAlternatingModel) {
				t.Fatalf("want ErrNonAlternatingModel, got %v", err)
			}
			var ce *ChunkError
			if !errors.As(err, &ce) || ce.Index != tt.index {
				t.Fatalf("want chunk index %d, got %v", tt.index, err)
			}
		})
	}
}

func TestAssembleLegacyFileWithoutSceneGraph(t *testing.T) {
	s, err := Assemble(rawOf(Size{X: 2, Y: 2, Z: 2}, XYZI{Voxels: []Voxel{{1, 1, 1, 3}}}))
	if err != nil {
		t.Fatal(err)
	}
	want := SceneNode{LayerID: 0, Kind: NodeShape, ModelID: 0}
	if !reflect.DeepEqual(s.Graph, want) {
		t.Fatalf("graph %+v", s.Graph)
	}
	if len(s.Models) != 1 || s.Models[0].Size != (Size{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("models %+v", s.Models)
	}
	for i, m := range s.Palette {
		if m.Color != DefaultPalette[i] || m.Type != (DiffuseMaterial{}) {
			t.Fatalf("slot %d: %+v", i+1, m)
		}
	}
}

func TestAssembleEmptyFile(t *testing.T) {
	s, err := Assemble(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := SceneNode{LayerID: 0, Kind: NodeGroup, Children: []SceneNode{}}
	if !reflect.DeepEqual(s.Graph, want) {
		t.Fatalf("graph %+v", s.Graph)
	}
	if s.Models != nil || s.Layers != nil {
		t.Fatalf("unexpected content %+v %+v", s.Models, s.Layers)
	}
}

func TestAssembleToleratedChunks(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	raw := []RawChunk{
		{Tag: Tag{'r', 'O', 'B', 'J'}, Payload: []byte{1, 2, 3}},
		{Tag: TagMatl, Payload: matlPayload(256, Dict{"_type": "_metal"})},
		{Tag: TagMatl, Payload: matlPayload(0, Dict{"_type": "_metal"})},
		{Tag: TagMatl, Payload: matlPayload(1, Dict{"_type": "_glass", "_weight": "0.5"})},
	}
	s, err := Assemble(raw, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	if s.Palette[0].Type != (GlassMaterial{Weight: 0.5}) {
		t.Fatalf("slot 1: %#v", s.Palette[0].Type)
	}
	if got := logs.FilterMessage("skipping chunk").Len(); got != 2 {
		t.Fatalf("%d skip logs, want 2", got)
	}
	if got := logs.FilterMessage("ignoring MATL for palette slot 0").Len(); got != 1 {
		t.Fatalf("%d slot 0 logs, want 1", got)
	}
}

func TestAssembleFatalChunkError(t *testing.T) {
	raw := []RawChunk{
		{Tag: TagPack, Payload: []byte{1, 0, 0, 0}},
		{Tag: TagMatl, Payload: matlPayload(257, Dict{"_type": "_metal"})},
	}
	_, err := Assemble(raw)
	var ce *ChunkError
	if !errors.As(err, &ce) || ce.Index != 1 || ce.Tag != TagMatl {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, ErrInvalidMatlID) {
		t.Fatalf("want ErrInvalidMatlID, got %v", err)
	}
}

func TestAssembleLayers(t *testing.T) {
	s, err := Assemble(rawOf(
		Layr{ID: 3, Name: "three", Hidden: true},
		Layr{ID: 1, Name: "one"},
		Layr{ID: 1, Name: "one again"},
	))
	if err != nil {
		t.Fatal(err)
	}
	want := []Layer{{}, {Name: "one again"}, {}, {Name: "three", Hidden: true}}
	if !reflect.DeepEqual(s.Layers, want) {
		t.Fatalf("layers %+v", s.Layers)
	}

	_, err = Assemble(rawOf(Layr{ID: 10}), WithReadLimits(Limits{MaxLayers: 10}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
}

func TestAssembleSceneGraph(t *testing.T) {
	rot, _ := RotationFromByte(0x12)
	s, err := Assemble(rawOf(
		Size{X: 1, Y: 1, Z: 1}, XYZI{},
		Size{X: 2, Y: 2, Z: 2}, XYZI{},
		transform(0, 1),
		GroupNode{NodeID: 1, Children: []uint32{2, 4}},
		TransformNode{NodeID: 2, ChildID: 3, LayerID: 5, Rotation: rot, Translation: [3]int32{1, 2, 3}},
		ShapeNode{NodeID: 3, ModelID: 1},
		transform(4, 5),
		GroupNode{NodeID: 5},
	))
	if err != nil {
		t.Fatal(err)
	}
	shape := SceneNode{Rotation: rot, Translation: [3]int32{1, 2, 3}, LayerID: 5, Kind: NodeShape, ModelID: 1}
	want := SceneNode{LayerID: NoLayer, Kind: NodeGroup, Children: []SceneNode{shape, NewGroup()}}
	if !reflect.DeepEqual(s.Graph, want) {
		t.Fatalf("graph\n got %+v\nwant %+v", s.Graph, want)
	}
}

func TestAssembleDuplicateNodeLastWins(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s, err := Assemble(rawOf(
		Size{X: 1, Y: 1, Z: 1}, XYZI{},
		transform(0, 1),
		ShapeNode{NodeID: 1, ModelID: 5},
		GroupNode{NodeID: 1},
	), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	if s.Graph.Kind != NodeGroup {
		t.Fatalf("graph %+v", s.Graph)
	}
	entries := logs.FilterMessage("replacing scene node").All()
	if len(entries) != 1 || entries[0].ContextMap()["node_id"] != uint32(1) {
		t.Fatalf("logs %+v", entries)
	}
}

func TestAssembleInvalidScene(t *testing.T) {
	models := []Chunk{Size{X: 1, Y: 1, Z: 1}, XYZI{}, Size{X: 1, Y: 1, Z: 1}, XYZI{}, Size{X: 1, Y: 1, Z: 1}, XYZI{}}
	tests := []struct {
		name  string
		nodes []Chunk
	}{
		{"model 5 of 3", []Chunk{transform(0, 1), ShapeNode{NodeID: 1, ModelID: 5}}},
		{"model 3 of 3", []Chunk{transform(0, 1), ShapeNode{NodeID: 1, ModelID: 3}}},
		{"no node 0", []Chunk{transform(1, 2), ShapeNode{NodeID: 2}}},
		{"root is a group", []Chunk{GroupNode{NodeID: 0}}},
		{"missing child", []Chunk{transform(0, 9)}},
		{"transform child", []Chunk{transform(0, 1), transform(1, 2), ShapeNode{NodeID: 2}}},
		{"group lists a shape", []Chunk{transform(0, 1), GroupNode{NodeID: 1, Children: []uint32{2}}, ShapeNode{NodeID: 2}}},
		{"missing group member", []Chunk{transform(0, 1), GroupNode{NodeID: 1, Children: []uint32{7}}}},
		{"cycle", []Chunk{transform(0, 1), GroupNode{NodeID: 1, Children: []uint32{0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(rawOf(append(append([]Chunk{}, models...), tt.nodes...)...))
			if !errors.Is(err, ErrInvalidScene) {
				t.Fatalf("want ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestAssembleSharedSubtree(t *testing.T) {
	// Two transforms may point at the same group; each gets its own copy.
	s, err := Assemble(rawOf(
		Size{X: 1, Y: 1, Z: 1}, XYZI{},
		transform(0, 1),
		GroupNode{NodeID: 1, Children: []uint32{2, 2}},
		transform(2, 3),
		ShapeNode{NodeID: 3},
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Graph.Children) != 2 || !reflect.DeepEqual(s.Graph.Children[0], s.Graph.Children[1]) {
		t.Fatalf("graph %+v", s.Graph)
	}
}

func TestAssembleSceneLimits(t *testing.T) {
	// A chain of nested groups ten levels deep.
	var chunks []Chunk
	for i := uint32(0); i < 10; i++ {
		chunks = append(chunks, transform(2*i, 2*i+1), GroupNode{NodeID: 2*i + 1, Children: []uint32{2*i + 2}})
	}
	chunks = append(chunks, transform(20, 21), GroupNode{NodeID: 21})
	if _, err := Assemble(rawOf(chunks...), WithReadLimits(Limits{MaxSceneDepth: 10})); err != nil {
		t.Fatalf("depth 10 should pass: %v", err)
	}
	if _, err := Assemble(rawOf(chunks...), WithReadLimits(Limits{MaxSceneDepth: 9})); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}

	// Each level lists the next one twice, doubling the tree size.
	chunks = chunks[:0]
	for i := uint32(0); i < 20; i++ {
		chunks = append(chunks, transform(2*i, 2*i+1), GroupNode{NodeID: 2*i + 1, Children: []uint32{2*i + 2, 2*i + 2}})
	}
	chunks = append(chunks, transform(40, 41), GroupNode{NodeID: 41})
	if _, err := Assemble(rawOf(chunks...), WithReadLimits(Limits{MaxChunks: 1000})); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
}

func TestAssembleRGBAAndMatt(t *testing.T) {
	var rgba RGBA
	rgba.Colors[0] = Color{R: 10, G: 20, B: 30, A: 40}
	s, err := Assemble(rawOf(
		rgba,
		Matt{ID: 255, Type: MattEmissive, Weight: 0.5},
	))
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := s.Color(1); !ok || c != rgba.Colors[0] {
		t.Fatalf("color 1: %+v", c)
	}
	if m, ok := s.Material(255); !ok || m.Type != (EmitMaterial{Emit: 0.5, Flux: 1}) {
		t.Fatalf("material 255: %+v", m)
	}
	if _, ok := s.Material(0); ok {
		t.Fatal("index 0 has no material")
	}
}
