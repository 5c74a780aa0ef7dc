package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/pkg/math"
)

// TrigonometricChain is the analytic two-segment chain: begin, middle, and
// end nodes joined by fixed-length segments, solved in closed form against a
// middle joint angle range. It is the building block of the leg and arm
// solvers.
type TrigonometricChain struct {
	begin  *Node
	middle *Node
	end    *Node

	firstLength  float32
	secondLength float32
}

// Initialize binds the chain to its three nodes.
func (c *TrigonometricChain) Initialize(begin, middle, end *Node) {
	c.begin = begin
	c.middle = middle
	c.end = end
}

// BeginNode returns the anchored first node.
func (c *TrigonometricChain) BeginNode() *Node { return c.begin }

// MiddleNode returns the joint node.
func (c *TrigonometricChain) MiddleNode() *Node { return c.middle }

// EndNode returns the effector node.
func (c *TrigonometricChain) EndNode() *Node { return c.end }

// FirstLength returns the baked begin-to-middle rest length.
func (c *TrigonometricChain) FirstLength() float32 { return c.firstLength }

// SecondLength returns the baked middle-to-end rest length.
func (c *TrigonometricChain) SecondLength() float32 { return c.secondLength }

// UpdateLengths bakes the segment rest lengths from the current node
// positions.
func (c *TrigonometricChain) UpdateLengths() {
	c.firstLength = c.middle.Position.Sub(c.begin.Position).Len()
	c.secondLength = c.end.Position.Sub(c.middle.Position).Len()
}

// Reach returns the begin-to-end distance of the chain bent to jointAngle
// radians at the middle joint.
func (c *TrigonometricChain) Reach(jointAngle float32) float32 {
	return math.JointChordLength(c.firstLength, c.secondLength, jointAngle)
}

// SolveTwoBone places the middle and end of a two-segment chain anchored at
// origin so the end reaches toward target. The origin-to-end chord is
// clamped to the reach range allowed by the middle joint angles minAngle and
// maxAngle (radians), so unreachable targets extend the chain as far as the
// limits allow along the origin-to-target ray and never violate the limits.
// The middle joint is displaced toward bendDirection within the plane that
// the hint spans with the chord.
func SolveTwoBone(origin mgl32.Vec3, firstLength, secondLength float32,
	target, bendDirection mgl32.Vec3, minAngle, maxAngle float32) (middle, end mgl32.Vec3) {

	minReach := math.JointChordLength(firstLength, secondLength, minAngle)
	maxReach := math.JointChordLength(firstLength, secondLength, maxAngle)

	toTarget := target.Sub(origin)
	dir := math.NormalizeOr(toTarget, math.Perpendicular(bendDirection))
	chord := mgl32.Clamp(toTarget.Len(), minReach, maxReach)

	end = origin.Add(dir.Mul(chord))

	// Angle at the origin between the chord and the first segment, from
	// the law of cosines. Rotating the chord direction by it around the
	// bend plane normal tips the middle joint toward the hint.
	originAngle := math.TriangleAngle(firstLength, chord, secondLength)
	axis := math.NormalizeOr(dir.Cross(bendDirection), math.Perpendicular(dir))
	middleDir := math.AxisAngle(axis, originAngle).Rotate(dir)
	middle = origin.Add(middleDir.Mul(firstLength))
	return middle, end
}

// SwingRotation returns the rotation taking the rest begin-to-end direction
// to the current one.
func SwingRotation(restBegin, restEnd, begin, end mgl32.Vec3) mgl32.Quat {
	return math.RotationBetween(restEnd.Sub(restBegin), end.Sub(begin))
}

// Solve moves the chain so the end node reaches toward target, honoring the
// middle joint angle range in radians. The begin node stays anchored and
// only rotates; the middle node takes the solved joint position and
// rotation; the end node takes the solved position and keeps its rotation
// for the owning solver to orient.
func (c *TrigonometricChain) Solve(target, bendDirection mgl32.Vec3, minAngle, maxAngle float32) {
	origin := c.begin.Position
	newMiddle, newEnd := SolveTwoBone(origin, c.firstLength, c.secondLength,
		target, bendDirection, minAngle, maxAngle)

	firstDelta := math.RotationBetween(c.middle.Position.Sub(origin), newMiddle.Sub(origin))
	secondDelta := math.RotationBetween(c.end.Position.Sub(c.middle.Position), newEnd.Sub(newMiddle))

	c.begin.Rotation = firstDelta.Mul(c.begin.Rotation)
	c.begin.MarkRotationDirty()

	c.middle.Rotation = secondDelta.Mul(c.middle.Rotation)
	c.middle.Position = newMiddle
	c.middle.MarkPositionDirty()
	c.middle.MarkRotationDirty()

	c.end.Position = newEnd
	c.end.MarkPositionDirty()
}

// CurrentBendDirection returns the unit direction from the begin-to-end
// chord toward the middle node. Used by the debug overlay to show which way
// the joint currently flexes.
func (c *TrigonometricChain) CurrentBendDirection() mgl32.Vec3 {
	chordDir := math.SafeNormalize(c.end.Position.Sub(c.begin.Position))
	middleOffset := c.middle.Position.Sub(c.begin.Position)
	return math.SafeNormalize(middleOffset.Sub(chordDir.Mul(middleOffset.Dot(chordDir))))
}
