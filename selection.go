package meshedit

import (
	"slices"

	"github.com/gekko3d/meshedit/scene"
)

// Selection is the ordered set of selected nodes shared by all panels.
type Selection struct {
	nodes     []*scene.Node
	source    SelectionSource
	listeners []selectionListener
	nextId    int
}

type selectionListener struct {
	id int
	fn func(nodes []*scene.Node, source SelectionSource)
}

// NewSelection creates a selection that forgets nodes removed from s.
func NewSelection(s *scene.Scene) *Selection {
	sel := &Selection{}
	if s != nil {
		s.Watch(func(ev scene.Event) {
			if ev.Kind == scene.NodeRemoved && sel.Contains(ev.Node) {
				sel.drop(ev.Node)
			}
		})
	}
	return sel
}

func (s *Selection) Nodes() []*scene.Node {
	return slices.Clone(s.nodes)
}

func (s *Selection) Source() SelectionSource {
	return s.source
}

func (s *Selection) Len() int {
	return len(s.nodes)
}

func (s *Selection) Contains(n *scene.Node) bool {
	return slices.Contains(s.nodes, n)
}

// Set replaces the selection. Nil and repeated nodes are skipped.
func (s *Selection) Set(source SelectionSource, nodes ...*scene.Node) {
	next := make([]*scene.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil && !slices.Contains(next, n) {
			next = append(next, n)
		}
	}
	if slices.Equal(next, s.nodes) && source == s.source {
		return
	}
	s.nodes = next
	s.source = source
	s.changed()
}

func (s *Selection) Clear() {
	s.Set(s.source)
}

// CanModify reports whether every selected node is unlocked.
func (s *Selection) CanModify() bool {
	for _, n := range s.nodes {
		if n.IsLocked() {
			return false
		}
	}
	return len(s.nodes) > 0
}

// OnChange registers fn and returns a function that unregisters it.
func (s *Selection) OnChange(fn func(nodes []*scene.Node, source SelectionSource)) func() {
	s.nextId++
	id := s.nextId
	s.listeners = append(s.listeners, selectionListener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(slices.Clone(s.listeners), func(l selectionListener) bool {
			return l.id == id
		})
	}
}

func (s *Selection) drop(n *scene.Node) {
	s.nodes = slices.DeleteFunc(slices.Clone(s.nodes), func(x *scene.Node) bool { return x == n })
	s.changed()
}

func (s *Selection) changed() {
	for _, l := range s.listeners {
		l.fn(s.Nodes(), s.source)
	}
}
