package vox

import (
	"reflect"
	"testing"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Graph.Kind != NodeGroup || s.Graph.LayerID != 0 || len(s.Graph.Children) != 0 {
		t.Fatalf("graph %+v", s.Graph)
	}
	if c, _ := s.Color(255); c != DefaultPalette[254] {
		t.Fatalf("color 255 %+v", c)
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestWalkWorldTransforms(t *testing.T) {
	// Quarter turn about z: x -> y, y -> -x.
	quarter := Rotation{Order: Order213, Neg: [3]bool{true, false, false}}
	if got := quarter.Apply([3]int32{1, 0, 0}); got != [3]int32{0, 1, 0} {
		t.Fatalf("quarter turn maps x to %v", got)
	}

	leaf := NewShape(0)
	leaf.Translation = [3]int32{1, 0, 0}
	parent := NewGroup(leaf)
	parent.Rotation = quarter
	parent.Translation = [3]int32{10, 20, 30}
	s := &Scene{Models: []Model{{Size: Size{X: 1, Y: 1, Z: 1}}}, Graph: NewGroup(parent)}

	var kinds []NodeKind
	var leafWorld Transform
	s.Walk(func(n *SceneNode, world Transform) bool {
		kinds = append(kinds, n.Kind)
		if n.Kind == NodeShape {
			leafWorld = world
		}
		return true
	})
	if !reflect.DeepEqual(kinds, []NodeKind{NodeGroup, NodeGroup, NodeShape}) {
		t.Fatalf("visit order %v", kinds)
	}
	if leafWorld.Translation != [3]int32{10, 21, 30} {
		t.Fatalf("leaf origin %v", leafWorld.Translation)
	}
	if leafWorld.Rotation != quarter {
		t.Fatalf("leaf rotation %+v", leafWorld.Rotation)
	}
	if got := leafWorld.Apply([3]int32{1, 0, 0}); got != [3]int32{10, 22, 30} {
		t.Fatalf("leaf x axis %v", got)
	}
}

func TestWalkPrune(t *testing.T) {
	s := &Scene{Graph: NewGroup(NewGroup(NewGroup()), NewGroup())}
	visits := 0
	s.Walk(func(n *SceneNode, _ Transform) bool {
		visits++
		return visits == 1
	})
	if visits != 3 {
		t.Fatalf("%d visits, want 3", visits)
	}
}

func TestVoxelCount(t *testing.T) {
	s := sampleScene()
	if got := s.VoxelCount(); got != 3 {
		t.Fatalf("got %d", got)
	}
	s.Graph.Children = append(s.Graph.Children, NewShape(0))
	if got := s.VoxelCount(); got != 5 {
		t.Fatalf("got %d", got)
	}
}

func TestNodeKindString(t *testing.T) {
	if NodeGroup.String() != "group" || NodeShape.String() != "shape" {
		t.Fatal("unexpected names")
	}
}
