package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LocalMatrix returns T * R * S for the node alone.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	return localMatrix(&n.state)
}

func localMatrix(s *NodeState) mgl32.Mat4 {
	translate := mgl32.Translate3D(s.Position.X(), s.Position.Y(), s.Position.Z())
	rotate := s.Rotation.Mat4()
	scale := mgl32.Scale3D(s.Scale.X(), s.Scale.Y(), s.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// WorldMatrix returns the transform placing the node in the root frame:
// the parent's world matrix applied after the node's local matrix.
//
// Results are cached per node. Every local transform change and every
// reparent invalidates the node and its subtree, so a cached value always
// equals a fresh computation.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	if n.worldValid {
		return n.world
	}

	// Walk up to the first ancestor with a valid cache (or past the root),
	// then resolve top-down. An invalid node always has an invalid subtree,
	// so a valid ancestor's cache is current.
	chain := []*Node{n}
	for p := n.parentNode(); p != nil && !p.worldValid; p = p.parentNode() {
		chain = append(chain, p)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		cur := chain[i]
		m := localMatrix(&cur.state)
		if p := cur.parentNode(); p != nil {
			m = p.world.Mul4(m)
		}
		cur.world = m
		cur.worldValid = true
	}
	return n.world
}

// WorldPosition is the translation part of WorldMatrix.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}
