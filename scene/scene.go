package scene

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// Logger is the logging surface the scene needs.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any)  {}

// EventKind tells what a structural Event reports.
type EventKind int

const (
	NodeAdded EventKind = iota
	NodeRemoved
)

func (k EventKind) String() string {
	switch k {
	case NodeAdded:
		return "NodeAdded"
	case NodeRemoved:
		return "NodeRemoved"
	default:
		return "unknown"
	}
}

// Event reports a node entering or leaving the scene.
type Event struct {
	Kind EventKind
	Node *Node
}

type watcher struct {
	id Subscription
	fn func(Event)
}

// Scene owns every node in a flat arena keyed by NodeId and keeps the
// ordered root set. A Scene and its nodes must be used from a single
// goroutine; all notifications are delivered synchronously before the
// mutating call returns.
type Scene struct {
	nodes    map[NodeId]*Node
	roots    []NodeId
	log      Logger
	subSeq   Subscription
	watchers []watcher

	observers dispatcher
}

type Option func(*Scene)

// WithLogger routes scene diagnostics to l.
func WithLogger(l Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.log = l
		}
	}
}

func New(opts ...Option) *Scene {
	s := &Scene{
		nodes: make(map[NodeId]*Node),
		log:   nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewNode creates a root node with the default transform.
func (s *Scene) NewNode(name string) *Node {
	n := s.alloc(defaultState(name))
	s.roots = append(s.roots, n.id)
	s.emit(Event{Kind: NodeAdded, Node: n})
	return n
}

func (s *Scene) alloc(state NodeState) *Node {
	n := &Node{
		id:    newNodeId(),
		scene: s,
		state: state,
	}
	s.nodes[n.id] = n
	return n
}

func (s *Scene) Lookup(id NodeId) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

func (s *Scene) Len() int {
	return len(s.nodes)
}

// Roots returns a snapshot of the parentless nodes in insertion order.
func (s *Scene) Roots() []*Node {
	out := make([]*Node, 0, len(s.roots))
	for _, id := range s.roots {
		out = append(out, s.nodes[id])
	}
	return out
}

// Walk visits every node, root by root, depth-first in pre-order.
func (s *Scene) Walk(fn func(*Node) bool) {
	for _, r := range s.Roots() {
		r.Walk(fn)
	}
}

// FindByName returns the first node in walk order with the given name.
func (s *Scene) FindByName(name string) *Node {
	var found *Node
	s.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.state.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Remove detaches n from its parent, then removes n and its subtree from
// the scene. NodeRemoved is emitted for each node in pre-order.
func (s *Scene) Remove(n *Node) error {
	if n == nil {
		return errors.New("remove: nil node")
	}
	if n.scene != s {
		return errors.Wrapf(ErrForeignNode, "remove %q", n.state.Name)
	}
	if n.removed {
		return errors.Wrapf(ErrNodeRemoved, "remove %q", n.state.Name)
	}

	if p := n.parentNode(); p != nil {
		p.children = removeId(p.children, n.id)
	} else {
		s.roots = removeId(s.roots, n.id)
	}

	var subtree []*Node
	n.Walk(func(d *Node) bool {
		subtree = append(subtree, d)
		return true
	})
	// Removed nodes keep no links into the arena.
	for _, d := range subtree {
		delete(s.nodes, d.id)
		d.removed = true
		d.worldValid = false
		d.parent = NilNode
		d.children = nil
	}
	s.log.Debugf("removed %s (%d nodes)", n, len(subtree))

	for _, d := range subtree {
		s.emit(Event{Kind: NodeRemoved, Node: d})
		d.observers.clear()
	}
	return nil
}

// Clear removes every node, root by root.
func (s *Scene) Clear() {
	for _, r := range s.Roots() {
		_ = s.Remove(r)
	}
}

// Duplicate clones n and its subtree with fresh ids. Copies start unlocked.
// The copy is attached to n's parent (or the root set) after its siblings.
func (s *Scene) Duplicate(n *Node) (*Node, error) {
	if n == nil {
		return nil, errors.New("duplicate: nil node")
	}
	if n.scene != s {
		return nil, errors.Wrapf(ErrForeignNode, "duplicate %q", n.state.Name)
	}
	if n.removed {
		return nil, errors.Wrapf(ErrNodeRemoved, "duplicate %q", n.state.Name)
	}

	clones := make(map[NodeId]*Node)
	var order []*Node
	var cloneErr error
	n.Walk(func(src *Node) bool {
		var state NodeState
		if err := copier.Copy(&state, &src.state); err != nil {
			cloneErr = errors.Wrapf(err, "copy state of %q", src.state.Name)
			return false
		}
		dup := s.alloc(state)
		clones[src.id] = dup
		order = append(order, dup)
		if src != n {
			p := clones[src.parent]
			dup.parent = p.id
			p.children = append(p.children, dup.id)
		}
		return true
	})
	if cloneErr != nil {
		for _, d := range order {
			delete(s.nodes, d.id)
		}
		return nil, cloneErr
	}

	root := clones[n.id]
	if p := n.parentNode(); p != nil {
		root.parent = p.id
		p.children = append(p.children, root.id)
	} else {
		s.roots = append(s.roots, root.id)
	}
	s.log.Debugf("duplicated %s as %s (%d nodes)", n, root, len(order))

	for _, d := range order {
		s.emit(Event{Kind: NodeAdded, Node: d})
	}
	return root, nil
}

// Subscribe registers obs for property changes of every node in the scene.
// Scene observers run after the node's own observers.
func (s *Scene) Subscribe(obs Observer, props ...Property) Subscription {
	id := s.nextSubscription()
	s.observers.add(id, obs, props)
	return id
}

func (s *Scene) Unsubscribe(sub Subscription) bool {
	return s.observers.remove(sub)
}

// Watch registers fn for structural events.
func (s *Scene) Watch(fn func(Event)) Subscription {
	id := s.nextSubscription()
	s.watchers = append(s.watchers, watcher{id: id, fn: fn})
	return id
}

func (s *Scene) Unwatch(sub Subscription) bool {
	for i, w := range s.watchers {
		if w.id == sub {
			s.watchers = append(s.watchers[:i:i], s.watchers[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scene) emit(ev Event) {
	for _, w := range s.watchers {
		w.fn(ev)
	}
}

func (s *Scene) nextSubscription() Subscription {
	s.subSeq++
	return s.subSeq
}
