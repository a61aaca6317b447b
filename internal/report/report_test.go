package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/logicossoftware/go-vox"
)

func testScene() *vox.Scene {
	s := vox.NewScene()
	s.Models = []vox.Model{
		{Size: vox.Size{X: 3, Y: 3, Z: 3}, Voxels: []vox.Voxel{{1, 1, 1, 5}, {0, 0, 0, 5}}},
		{Size: vox.Size{X: 2, Y: 2, Z: 2}, Voxels: []vox.Voxel{{0, 0, 0, 9}}},
	}
	moved := vox.NewShape(0)
	moved.Translation = [3]int32{10, 0, 0}
	s.Graph.Children = []vox.SceneNode{moved, vox.NewShape(1), vox.NewShape(1)}
	s.Layers = []vox.Layer{{Name: "base"}, {Hidden: true}}
	s.Palette[4].Type = vox.MetalMaterial{Metal: 1}
	s.Palette[8].Type = vox.GlassMaterial{Weight: 0.5}
	s.Palette[9].Type = vox.MetalMaterial{Rough: 0.2}
	return s
}

func TestSummarize(t *testing.T) {
	got := Summarize(testScene())
	want := Summary{
		Models: []ModelInfo{
			{ID: 0, Size: [3]int{3, 3, 3}, Voxels: 2, Instances: 1},
			{ID: 1, Size: [3]int{2, 2, 2}, Voxels: 1, Instances: 2},
		},
		Layers:    []LayerInfo{{ID: 0, Name: "base"}, {ID: 1, Hidden: true}},
		Materials: map[string]int{"metal": 2, "glass": 1},
		Instances: 3,
		Voxels:    4,
		Bounds:    &Bounds{Min: [3]int32{-1, -1, -1}, Max: [3]int32{11, 1, 1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got  %+v\nwant %+v", got, want)
	}
}

func TestSummarizeEmptyScene(t *testing.T) {
	got := Summarize(vox.NewScene())
	if got.Bounds != nil || got.Instances != 0 || len(got.Materials) != 0 {
		t.Fatalf("unexpected summary %+v", got)
	}
}

func TestCountChunks(t *testing.T) {
	raw := []vox.RawChunk{{Tag: vox.TagXYZI}, {Tag: vox.TagSize}, {Tag: vox.TagXYZI}}
	want := []ChunkCount{{Tag: "SIZE", Count: 1}, {Tag: "XYZI", Count: 2}}
	if got := CountChunks(raw); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v", got)
	}
}

func TestWriteFormats(t *testing.T) {
	in := Summarize(testScene())
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, format, in); err != nil {
				t.Fatal(err)
			}
			var out Summary
			var err error
			switch format {
			case "json":
				err = json.Unmarshal(buf.Bytes(), &out)
			case "yaml":
				err = yaml.Unmarshal(buf.Bytes(), &out)
			case "cbor":
				err = cbor.Unmarshal(buf.Bytes(), &out)
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(in, out) {
				t.Fatalf("got  %+v\nwant %+v", out, in)
			}
		})
	}
}

func TestWriteCBORIsDeterministic(t *testing.T) {
	in := Summarize(testScene())
	var a, b bytes.Buffer
	if err := Write(&a, "cbor", in); err != nil {
		t.Fatal(err)
	}
	if err := Write(&b, "cbor", in); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("encodings differ")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "xml", Summary{}); err == nil {
		t.Fatal("expected error")
	}
}
