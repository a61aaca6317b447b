package vox

import "fmt"

// Validate checks the invariants Serialize relies on: every shape shows an
// existing model, layer ids are NoLayer or non-negative, and node kinds
// are known. It does not judge voxel contents.
func (s *Scene) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: scene is nil", ErrInvalidScene)
	}
	return validateNode(&s.Graph, len(s.Models), "root")
}

func validateNode(n *SceneNode, models int, where string) error {
	if n.LayerID < NoLayer {
		return fmt.Errorf("%s: %w", where, valueErr(ErrInvalidLayrID, int64(n.LayerID)))
	}
	switch n.Kind {
	case NodeShape:
		if uint64(n.ModelID) >= uint64(models) {
			return fmt.Errorf("%w: %s shows model %d of %d", ErrInvalidScene, where, n.ModelID, models)
		}
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: %s is a shape with %d children", ErrInvalidScene, where, len(n.Children))
		}
	case NodeGroup:
		for i := range n.Children {
			if err := validateNode(&n.Children[i], models, fmt.Sprintf("%s/%d", where, i)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s has unknown kind %d", ErrInvalidScene, where, n.Kind)
	}
	return nil
}
