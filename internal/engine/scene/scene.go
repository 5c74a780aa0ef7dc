// Package scene provides the hierarchical transform nodes the IK solvers
// pose. Each node stores a local transform relative to its parent; world
// transforms are derived on demand by walking the parent chain, and writing
// a world transform converts it back into the node's local space.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is world-space pose access for a single node. The IK system
// reads and writes bones exclusively through this interface.
type Transform interface {
	WorldPosition() mgl32.Vec3
	WorldRotation() mgl32.Quat
	SetWorldPosition(mgl32.Vec3)
	SetWorldRotation(mgl32.Quat)
}

// Resolver finds transforms among a node's descendants by bone name.
type Resolver interface {
	FindChild(name string) (Transform, bool)
}

// Node is one bone in a hierarchy.
type Node struct {
	name     string
	parent   *Node
	children []*Node

	localPosition mgl32.Vec3
	localRotation mgl32.Quat
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string) *Node {
	return &Node{name: name, localRotation: mgl32.QuatIdent()}
}

// Name returns the bone name.
func (n *Node) Name() string { return n.name }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children in attachment order. The returned
// slice is owned by the node.
func (n *Node) Children() []*Node { return n.children }

// AddChild attaches child to n, detaching it from any previous parent. The
// child keeps its local transform, so its world transform changes with the
// new parent. Attaching a node to itself or to one of its own descendants
// is ignored.
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n || child.isAncestorOf(n) {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// isAncestorOf reports whether n appears on other's parent chain.
func (n *Node) isAncestorOf(other *Node) bool {
	for cur := other.parent; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// LocalPosition returns the position relative to the parent.
func (n *Node) LocalPosition() mgl32.Vec3 { return n.localPosition }

// SetLocalPosition sets the position relative to the parent.
func (n *Node) SetLocalPosition(p mgl32.Vec3) { n.localPosition = p }

// LocalRotation returns the rotation relative to the parent.
func (n *Node) LocalRotation() mgl32.Quat { return n.localRotation }

// SetLocalRotation sets the rotation relative to the parent.
func (n *Node) SetLocalRotation(q mgl32.Quat) { n.localRotation = q.Normalize() }

// WorldPosition returns the node position in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	if n.parent == nil {
		return n.localPosition
	}
	return n.parent.WorldPosition().Add(n.parent.WorldRotation().Rotate(n.localPosition))
}

// WorldRotation returns the node rotation in world space.
func (n *Node) WorldRotation() mgl32.Quat {
	if n.parent == nil {
		return n.localRotation
	}
	return n.parent.WorldRotation().Mul(n.localRotation)
}

// SetWorldPosition moves the node to a world-space position by rewriting its
// local transform. Children follow, since they are stored relative to n.
func (n *Node) SetWorldPosition(p mgl32.Vec3) {
	if n.parent == nil {
		n.localPosition = p
		return
	}
	n.localPosition = n.parent.WorldRotation().Inverse().Rotate(p.Sub(n.parent.WorldPosition()))
}

// SetWorldRotation rotates the node to a world-space rotation by rewriting
// its local transform. Children follow.
func (n *Node) SetWorldRotation(q mgl32.Quat) {
	if n.parent == nil {
		n.localRotation = q.Normalize()
		return
	}
	n.localRotation = n.parent.WorldRotation().Inverse().Mul(q).Normalize()
}

// FindChild searches the node's descendants depth-first for a bone name.
// The node itself is not considered a match.
func (n *Node) FindChild(name string) (Transform, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
		if t, ok := c.FindChild(name); ok {
			return t, ok
		}
	}
	return nil, false
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		c.Walk(visit)
	}
}
