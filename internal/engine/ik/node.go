// Package ik solves inverse kinematics over skeletal bone chains: a node
// cache mirroring the scene bones, reusable chain primitives, and the solver
// components a rig host runs once per frame.
//
// Solving works on a frame-local copy of the bone transforms. Components
// pull world transforms into their nodes, run pure chain math, and push back
// only the attributes they actually changed. Geometrically unreachable
// targets are never errors; every solver degrades to a documented fallback
// such as extending its chain toward the target as far as the joint limits
// allow.
package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// Node is the per-bone solving state. Every solver component referencing
// the same scene bone shares one Node, so coupled solvers (a spine and the
// arm hanging off it) agree on the bone's transform within a frame.
type Node struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat

	// Rest pose, captured when the rig initializes and rebased only
	// explicitly.
	RestPosition mgl32.Vec3
	RestRotation mgl32.Quat

	// Transform at the start of the current solve.
	PrevPosition mgl32.Vec3
	PrevRotation mgl32.Quat

	positionDirty bool
	rotationDirty bool
}

// StorePreviousTransform snapshots the current transform as the previous one
// and clears both dirty flags. Called at the start of every solve, right
// after the world transforms are pulled in.
func (n *Node) StorePreviousTransform() {
	n.PrevPosition = n.Position
	n.PrevRotation = n.Rotation
	n.positionDirty = false
	n.rotationDirty = false
}

// UpdateRestPose rebases the rest pose onto the current transform.
func (n *Node) UpdateRestPose() {
	n.RestPosition = n.Position
	n.RestRotation = n.Rotation
}

// ResetToRestPose moves the node back onto its rest transform. Dirty flags
// are left alone; callers that keep the result mark the node themselves.
func (n *Node) ResetToRestPose() {
	n.Position = n.RestPosition
	n.Rotation = n.RestRotation
}

// RotateAround rigidly rotates the node about a world-space point and marks
// both attributes dirty.
func (n *Node) RotateAround(point mgl32.Vec3, rotation mgl32.Quat) {
	n.Position = rotation.Rotate(n.Position.Sub(point)).Add(point)
	n.Rotation = rotation.Mul(n.Rotation)
	n.MarkPositionDirty()
	n.MarkRotationDirty()
}

// MarkPositionDirty flags the position for write-back to the scene.
func (n *Node) MarkPositionDirty() { n.positionDirty = true }

// MarkRotationDirty flags the rotation for write-back to the scene.
func (n *Node) MarkRotationDirty() { n.rotationDirty = true }

// PositionDirty reports whether a solver moved the node this solve.
func (n *Node) PositionDirty() bool { return n.positionDirty }

// RotationDirty reports whether a solver rotated the node this solve.
func (n *Node) RotationDirty() bool { return n.rotationDirty }

// NodeCache maps scene bones to their shared solving state. All solver
// components of one rig hand out nodes from the same cache, so two
// components naming the same bone converge on one Node. The cache is
// rebuilt whenever the rig reinitializes.
type NodeCache map[scene.Transform]*Node

// Get returns the cached node for a bone, creating it on first use.
func (c NodeCache) Get(bone scene.Transform) *Node {
	if node, ok := c[bone]; ok {
		return node
	}
	node := &Node{Rotation: mgl32.QuatIdent()}
	c[bone] = node
	return node
}
