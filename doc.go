// Package vox reads and writes MagicaVoxel .vox files.
//
// A .vox file is a tree of chunks. Each chunk has a 4-byte tag, a payload
// and nested child chunks. The file starts with the magic "VOX " and
// version 150, followed by a MAIN chunk whose children hold the models,
// the palette, the scene graph, layers and materials.
//
// The package works at three levels:
//   - Raw chunks: ParseRaw and SerializeRaw handle the framing only.
//   - Typed chunks: DecodeChunk and EncodeChunk convert a payload to and
//     from one of Pack, Size, XYZI, RGBA, Matt, Matl, TransformNode,
//     GroupNode, ShapeNode or Layr.
//   - Scenes: Parse and Serialize convert whole files to and from a Scene
//     with a 255-entry palette, the models, a tree of SceneNodes and the
//     layer table.
//
// # Basic Usage
//
// To read a file:
//
//	f, _ := os.Open("castle.vox")
//	defer f.Close()
//	scene, err := vox.Decode(f)
//
// To build and write a scene:
//
//	s := vox.NewScene()
//	s.Models = []vox.Model{{
//		Size:   vox.Size{X: 1, Y: 1, Z: 1},
//		Voxels: []vox.Voxel{{X: 0, Y: 0, Z: 0, ColorIndex: 1}},
//	}}
//	s.Graph.Children = []vox.SceneNode{vox.NewShape(0)}
//	err := vox.Encode(w, s)
//
// Palette slot 0 is the empty voxel. Scene.Palette[i] therefore holds the
// material of voxel color index i+1; use Scene.Material or Scene.Color to
// look up an index directly.
//
// # Compatibility
//
// Files written by MagicaVoxel contain chunks this package does not know,
// as well as a MATL chunk for palette slot 256. Both are skipped by
// Assemble; pass WithLogger to see them. Files written before scene graphs
// existed are given a single root node showing the first model.
//
// # Security Considerations
//
// Container nesting, scene depth, chunk and layer counts, and the size of
// compressed envelopes are bounded by configurable [Limits].
package vox
