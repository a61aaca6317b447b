package vox

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"
)

// rawOf frames typed chunks the way ParseRaw returns them.
func rawOf(chunks ...Chunk) []RawChunk {
	raw := make([]RawChunk, len(chunks))
	for i, c := range chunks {
		raw[i] = RawChunk{Tag: c.Tag(), Payload: EncodeChunk(c)}
	}
	return raw
}

// fileOf builds a complete file from raw chunks.
func fileOf(chunks ...Chunk) []byte {
	return SerializeRaw(chunks)
}

func transform(id, child uint32) TransformNode {
	return TransformNode{NodeID: id, ChildID: child, LayerID: NoLayer}
}

func sampleScene() *Scene {
	s := NewScene()
	s.Models = []Model{
		{Size: Size{X: 2, Y: 2, Z: 2}, Voxels: []Voxel{{0, 0, 0, 1}, {1, 1, 1, 2}}},
		{Size: Size{X: 1, Y: 1, Z: 1}, Voxels: []Voxel{{0, 0, 0, 255}}},
	}

	rot, _ := RotationFromByte(0x11)
	first := NewShape(0)
	first.Translation = [3]int32{1, -2, 3}
	first.LayerID = 0
	second := NewShape(1)
	second.Rotation = rot
	second.LayerID = 1
	inner := NewGroup(second)
	inner.Translation = [3]int32{-10, 0, 5}
	s.Graph = NewGroup(first, inner, NewGroup())
	s.Graph.LayerID = 0

	s.Layers = []Layer{{Name: "base"}, {Name: "hidden", Hidden: true}}
	s.Palette[0].Type = MetalMaterial{Rough: 0.5, IOR: 0.3, Metal: 1}
	s.Palette[1].Type = EmitMaterial{Emit: 0.25, Flux: 3}
	s.Palette[2].Type = GlassMaterial{Weight: 0.75}
	s.Palette[3].Type = BlendMaterial{Metal: 0.125, Alpha: 0.5}
	s.Palette[4].Type = MediaMaterial{}
	s.Palette[254].Color = Color{R: 1, G: 2, B: 3, A: 4}
	return s
}

func TestSerializeParseRoundtrip(t *testing.T) {
	in := sampleScene()
	data, err := Serialize(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("roundtrip mismatch\nin:  %#v\nout: %#v", in.Graph, out.Graph)
	}

	// A second cycle is stable at the byte level.
	again, err := Serialize(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Fatal("second serialization differs")
	}
}

func TestParseSerializeParse_ForeignChunkOrder(t *testing.T) {
	rot, _ := RotationFromByte(0x28)
	data := fileOf(
		Pack{Models: 1},
		Size{X: 3, Y: 3, Z: 3},
		XYZI{Voxels: []Voxel{{1, 2, 0, 9}}},
		TransformNode{NodeID: 0, ChildID: 7, LayerID: NoLayer, Name: "root"},
		GroupNode{NodeID: 7, Attributes: Dict{"x": "y"}, Children: []uint32{3}},
		TransformNode{NodeID: 3, ChildID: 4, LayerID: 2, Rotation: rot, Translation: [3]int32{5, 6, -7}},
		ShapeNode{NodeID: 4, ModelID: 0},
		Layr{ID: 2, Name: "top"},
		Matl{ID: 9, Type: MatlGlass, Props: map[MatlProp]float64{PropIOR: 0.5, PropSpec: 0.25}},
		Matt{ID: 10, Type: MattMetal, Weight: 0.5, Props: map[MattProp]float32{MattRoughness: 0.25}},
	)
	first, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	data2, err := Serialize(first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse(data2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("parse/serialize/parse changed the scene")
	}
	if len(first.Layers) != 3 || first.Layers[2].Name != "top" {
		t.Fatalf("layers: %+v", first.Layers)
	}
	if got := first.Palette[8].Type; got != (GlassMaterial{IOR: 0.5}) {
		t.Fatalf("slot 9: %#v", got)
	}
	if got := first.Palette[9].Type; got != (MetalMaterial{Rough: 0.25, Metal: 0.5}) {
		t.Fatalf("slot 10: %#v", got)
	}
}

func TestEncodeDecode(t *testing.T) {
	in := sampleScene()
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("VOX ")) {
		t.Fatalf("missing magic: % x", buf.Bytes()[:8])
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatal("decode mismatch")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, io.ErrClosedPipe }

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestEncodeErrors(t *testing.T) {
	if err := Encode(failingWriter{}, sampleScene()); !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("want write error, got %v", err)
	}
	if err := Encode(io.Discard, nil); !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("want ErrInvalidScene, got %v", err)
	}
	if err := Encode(io.Discard, sampleScene(), WithWriteCompression(CompAuto)); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("want ErrInvalidPayload, got %v", err)
	}
	if err := Encode(io.Discard, sampleScene(), WithWriteCompression(Compression(9))); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("want ErrInvalidPayload, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(failingReader{}); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("want ErrInvalidPayload, got %v", err)
	}
	data, err := Serialize(sampleScene())
	if err != nil {
		t.Fatal(err)
	}
	_, err = Decode(bytes.NewReader(data), WithReadLimits(Limits{MaxUncompressed: 16}))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
	if _, err := Parse([]byte("nope")); !errors.Is(err, ErrTruncated) {
		t.Fatalf("want ErrTruncated, got %v", err)
	}
	if _, err := Parse([]byte("PNG\x00\x96\x00\x00\x00")); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("want ErrInvalidMagic, got %v", err)
	}
}

func TestDecodeRaw(t *testing.T) {
	data := fileOf(Size{X: 1, Y: 1, Z: 1}, XYZI{})
	raw, err := DecodeRaw(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2 || raw[0].Tag != TagSize || raw[1].Tag != TagXYZI {
		t.Fatalf("unexpected chunks: %+v", raw)
	}
	if _, err := DecodeRaw(failingReader{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestIsVox(t *testing.T) {
	data, err := Serialize(NewScene())
	if err != nil {
		t.Fatal(err)
	}
	if !IsVox(data) {
		t.Fatal("plain file not recognized")
	}
	zst, err := compressEnvelope(CompZSTD, data, "")
	if err != nil {
		t.Fatal(err)
	}
	if !IsVox(zst) {
		t.Fatal("zstd envelope not recognized")
	}
	if IsVox([]byte("hello world")) {
		t.Fatal("text recognized as vox")
	}
	other, err := compressEnvelope(CompZSTD, []byte("hello world"), "")
	if err != nil {
		t.Fatal(err)
	}
	if IsVox(other) {
		t.Fatal("compressed text recognized as vox")
	}
}
