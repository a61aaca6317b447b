// Package report summarizes scenes for the example tools and writes the
// summaries as JSON, YAML or CBOR.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/logicossoftware/go-vox"
)

// Summary describes a scene.
type Summary struct {
	Models    []ModelInfo    `json:"models" yaml:"models" cbor:"models"`
	Layers    []LayerInfo    `json:"layers" yaml:"layers" cbor:"layers"`
	Materials map[string]int `json:"materials" yaml:"materials" cbor:"materials"`
	Instances int            `json:"instances" yaml:"instances" cbor:"instances"`
	Voxels    int            `json:"voxels" yaml:"voxels" cbor:"voxels"`
	Bounds    *Bounds        `json:"bounds,omitempty" yaml:"bounds,omitempty" cbor:"bounds,omitempty"`
	Chunks    []ChunkCount   `json:"chunks,omitempty" yaml:"chunks,omitempty" cbor:"chunks,omitempty"`
}

// ModelInfo describes a single model.
type ModelInfo struct {
	ID        int    `json:"id" yaml:"id" cbor:"id"`
	Size      [3]int `json:"size" yaml:"size,flow" cbor:"size"`
	Voxels    int    `json:"voxels" yaml:"voxels" cbor:"voxels"`
	Instances int    `json:"instances" yaml:"instances" cbor:"instances"`
}

// LayerInfo describes a layer.
type LayerInfo struct {
	ID     int    `json:"id" yaml:"id" cbor:"id"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty" cbor:"name,omitempty"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty" cbor:"hidden,omitempty"`
}

// Bounds is the world-space box covering every model instance.
type Bounds struct {
	Min [3]int32 `json:"min" yaml:"min,flow" cbor:"min"`
	Max [3]int32 `json:"max" yaml:"max,flow" cbor:"max"`
}

// ChunkCount is the number of top-level chunks with a tag.
type ChunkCount struct {
	Tag   string `json:"tag" yaml:"tag" cbor:"tag"`
	Count int    `json:"count" yaml:"count" cbor:"count"`
}

// Summarize walks s and collects a Summary. Palette slots with a non-diffuse
// material are counted per material type.
func Summarize(s *vox.Scene) Summary {
	sum := Summary{
		Models:    make([]ModelInfo, len(s.Models)),
		Layers:    make([]LayerInfo, len(s.Layers)),
		Materials: map[string]int{},
	}
	for i, m := range s.Models {
		sum.Models[i] = ModelInfo{
			ID:     i,
			Size:   [3]int{int(m.Size.X), int(m.Size.Y), int(m.Size.Z)},
			Voxels: len(m.Voxels),
		}
	}
	for i, l := range s.Layers {
		sum.Layers[i] = LayerInfo{ID: i, Name: l.Name, Hidden: l.Hidden}
	}
	for _, m := range s.Palette {
		if m.Type == nil || m.Type.Kind() == vox.MatlDiffuse {
			continue
		}
		sum.Materials[strings.TrimPrefix(m.Type.Kind().String(), "_")]++
	}

	s.Walk(func(n *vox.SceneNode, world vox.Transform) bool {
		if n.Kind != vox.NodeShape || int(n.ModelID) >= len(s.Models) {
			return true
		}
		sum.Instances++
		sum.Models[n.ModelID].Instances++
		m := s.Models[n.ModelID]
		sum.Voxels += len(m.Voxels)
		sum.Bounds = extend(sum.Bounds, world, m.Size)
		return true
	})
	return sum
}

// CountChunks tallies top-level chunks by tag, sorted by tag.
func CountChunks(raw []vox.RawChunk) []ChunkCount {
	counts := map[string]int{}
	for _, c := range raw {
		counts[c.Tag.String()]++
	}
	out := make([]ChunkCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, ChunkCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// extend grows b by the corners of a model of the given size placed with
// world. Models are centered on their node's origin, rounding down.
func extend(b *Bounds, world vox.Transform, size vox.Size) *Bounds {
	half := [3]int32{int32(size.X / 2), int32(size.Y / 2), int32(size.Z / 2)}
	lo := [3]int32{-half[0], -half[1], -half[2]}
	hi := [3]int32{int32(size.X) - half[0] - 1, int32(size.Y) - half[1] - 1, int32(size.Z) - half[2] - 1}
	for corner := 0; corner < 8; corner++ {
		var p [3]int32
		for axis := 0; axis < 3; axis++ {
			if corner&(1<<axis) == 0 {
				p[axis] = lo[axis]
			} else {
				p[axis] = hi[axis]
			}
		}
		p = world.Apply(p)
		if b == nil {
			b = &Bounds{Min: p, Max: p}
			continue
		}
		for axis := 0; axis < 3; axis++ {
			b.Min[axis] = min(b.Min[axis], p[axis])
			b.Max[axis] = max(b.Max[axis], p[axis])
		}
	}
	return b
}

var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
}

// Formats lists the names accepted by Write.
var Formats = []string{"json", "yaml", "cbor"}

// Write encodes v to w in the named format.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "cbor":
		b, err := cborEnc.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
