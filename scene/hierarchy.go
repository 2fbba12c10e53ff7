package scene

import (
	"github.com/pkg/errors"
)

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parentNode()
}

func (n *Node) parentNode() *Node {
	if n.parent == NilNode || n.scene == nil {
		return nil
	}
	return n.scene.nodes[n.parent]
}

// Children returns a snapshot of the direct children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		if c, ok := n.scene.nodes[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	if other == nil || other.scene != n.scene {
		return false
	}
	for p := other.parentNode(); p != nil; p = p.parentNode() {
		if p == n {
			return true
		}
	}
	return false
}

// Path returns the names from the root down to n separated by '/'.
func (n *Node) Path() string {
	path := n.state.Name
	for p := n.parentNode(); p != nil; p = p.parentNode() {
		path = p.state.Name + "/" + path
	}
	return path
}

// SetParent moves n under parent, or to the root set when parent is nil.
//
// Both children collections are updated before any notification fires.
// The node and its subtree then report WorldMatrix in pre-order, followed
// by Parent on n. A parent inside n's own subtree is refused with
// ErrInvalidHierarchy and leaves the tree untouched.
func (n *Node) SetParent(parent *Node) error {
	if n.removed {
		return errors.Wrapf(ErrNodeRemoved, "reparent %q", n.state.Name)
	}

	var newId NodeId
	if parent != nil {
		if parent.removed {
			return errors.Wrapf(ErrNodeRemoved, "reparent %q under %q", n.state.Name, parent.state.Name)
		}
		if parent.scene != n.scene {
			return errors.Wrapf(ErrForeignNode, "reparent %q under %q", n.state.Name, parent.state.Name)
		}
		if parent == n || (len(n.children) > 0 && n.IsAncestorOf(parent)) {
			n.scene.log.Warnf("refusing to parent %s under %s: cycle", n, parent)
			return hierarchyError(n, parent)
		}
		newId = parent.id
	}
	if n.parent == newId {
		return nil
	}

	s := n.scene
	if old := n.parentNode(); old != nil {
		old.children = removeId(old.children, n.id)
	} else {
		s.roots = removeId(s.roots, n.id)
	}
	n.parent = newId
	if parent != nil {
		parent.children = append(parent.children, n.id)
	} else {
		s.roots = append(s.roots, n.id)
	}
	s.log.Debugf("reparented %s under %v", n, parent)

	n.worldValid = false
	n.Walk(func(d *Node) bool {
		d.worldValid = false
		d.notify(PropWorldMatrix)
		return true
	})
	n.notify(PropParent)
	return nil
}

// transformChanged tells every descendant, depth-first in pre-order, that
// its world transform is stale.
func (n *Node) transformChanged() {
	n.walkDescendants(func(d *Node) bool {
		d.worldValid = false
		d.notify(PropWorldMatrix)
		return true
	})
}

// Walk calls fn on n and its descendants, depth-first in pre-order. A false
// return skips the subtree of the node it was called on.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	n.walkDescendants(fn)
}

func (n *Node) walkDescendants(fn func(*Node) bool) {
	stack := pushChildren(nil, n)
	for len(stack) > 0 {
		last := len(stack) - 1
		cur := stack[last]
		stack = stack[:last]
		if fn(cur) {
			stack = pushChildren(stack, cur)
		}
	}
}

// pushChildren pushes n's children in reverse so the first child pops first.
func pushChildren(stack []*Node, n *Node) []*Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if c, ok := n.scene.nodes[n.children[i]]; ok {
			stack = append(stack, c)
		}
	}
	return stack
}

func removeId(ids []NodeId, id NodeId) []NodeId {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
