package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// NodeId identifies a node for its whole lifetime. It is the key presenters
// use to map nodes to their own presentation objects.
type NodeId uuid.UUID

// NilNode is the zero NodeId and never identifies a node.
var NilNode NodeId

func newNodeId() NodeId {
	return NodeId(uuid.New())
}

func (id NodeId) String() string {
	return uuid.UUID(id).String()
}

// NodeState is a value snapshot of the local attributes of a node. Locked is
// not carried over by Scene.Duplicate.
type NodeState struct {
	Name     string
	Visible  bool
	Locked   bool `copier:"-"`
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func defaultState(name string) NodeState {
	return NodeState{
		Name:     name,
		Visible:  true,
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Node is one entity placed in the scene. Nodes are created and owned by a
// Scene; the parent link is a non-owning id and the children list is owned
// by the node itself.
type Node struct {
	id       NodeId
	scene    *Scene
	state    NodeState
	parent   NodeId
	children []NodeId
	removed  bool

	world      mgl32.Mat4
	worldValid bool

	observers dispatcher
}

func (n *Node) Id() NodeId       { return n.id }
func (n *Node) Scene() *Scene    { return n.scene }
func (n *Node) Removed() bool    { return n.removed }
func (n *Node) State() NodeState { return n.state }

func (n *Node) Name() string         { return n.state.Name }
func (n *Node) IsVisible() bool      { return n.state.Visible }
func (n *Node) IsLocked() bool       { return n.state.Locked }
func (n *Node) Position() mgl32.Vec3 { return n.state.Position }
func (n *Node) Rotation() mgl32.Quat { return n.state.Rotation }
func (n *Node) Scale() mgl32.Vec3    { return n.state.Scale }

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.state.Name + "#" + n.id.String()
}

// SetName renames the node.
func (n *Node) SetName(name string) {
	if n.state.Name == name {
		return
	}
	n.state.Name = name
	n.notify(PropName)
}

// SetVisible toggles the visibility flag. Children are not affected.
func (n *Node) SetVisible(visible bool) {
	if n.state.Visible == visible {
		return
	}
	n.state.Visible = visible
	n.notify(PropVisible)
}

// SetLocked toggles the lock flag. The flag is advisory; the node itself
// does not refuse edits while locked.
func (n *Node) SetLocked(locked bool) {
	if n.state.Locked == locked {
		return
	}
	n.state.Locked = locked
	n.notify(PropLocked)
}

func (n *Node) SetPosition(v mgl32.Vec3) {
	if n.state.Position == v {
		return
	}
	n.state.Position = v
	n.worldValid = false
	n.notify(PropPosition)
	n.transformChanged()
}

// SetRotation sets the local rotation. q is expected to be a unit quaternion.
func (n *Node) SetRotation(q mgl32.Quat) {
	if n.state.Rotation == q {
		return
	}
	n.state.Rotation = q
	n.worldValid = false
	n.notify(PropRotation)
	n.transformChanged()
}

func (n *Node) SetScale(v mgl32.Vec3) {
	if n.state.Scale == v {
		return
	}
	n.state.Scale = v
	n.worldValid = false
	n.notify(PropScale)
	n.transformChanged()
}

// Subscribe registers obs for the given properties of this node, or for all
// of them when none are given.
func (n *Node) Subscribe(obs Observer, props ...Property) Subscription {
	id := n.scene.nextSubscription()
	n.observers.add(id, obs, props)
	return id
}

func (n *Node) Unsubscribe(sub Subscription) bool {
	return n.observers.remove(sub)
}

func (n *Node) notify(p Property) {
	n.observers.emit(n, p)
	if n.scene != nil && !n.removed {
		n.scene.observers.emit(n, p)
	}
}
