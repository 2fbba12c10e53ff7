package scene

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidHierarchy is returned when a reparent would make a node its own ancestor.
	ErrInvalidHierarchy = errors.New("invalid hierarchy")
	// ErrForeignNode is returned when nodes from different scenes are linked.
	ErrForeignNode = errors.New("node belongs to another scene")
	// ErrNodeRemoved is returned for operations on nodes already removed from their scene.
	ErrNodeRemoved = errors.New("node was removed from the scene")
)

func hierarchyError(n, parent *Node) error {
	if n == parent {
		return errors.Wrapf(ErrInvalidHierarchy, "node %q cannot be its own parent", n.state.Name)
	}
	return errors.Wrapf(ErrInvalidHierarchy, "node %q is a descendant of %q", parent.state.Name, n.state.Name)
}
