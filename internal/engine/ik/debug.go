package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/debug"
)

// Debug overlay sizes, in world units.
const (
	debugJointRadius  = 0.02
	debugTargetRadius = 0.05
	debugPointerLen   = 0.1
)

func drawBone(r *debug.Renderer, from, to mgl32.Vec3, depthTest bool) {
	r.AddLine(from, to, debug.Yellow, depthTest)
}

func drawJoint(r *debug.Renderer, position mgl32.Vec3, depthTest bool) {
	r.AddSphere(position, debugJointRadius, debug.Yellow, depthTest)
}

func drawTarget(r *debug.Renderer, position mgl32.Vec3, depthTest bool) {
	r.AddSphere(position, debugTargetRadius, debug.Green, depthTest)
}

// drawBendPointer marks which way a joint currently flexes.
func drawBendPointer(r *debug.Renderer, from, direction mgl32.Vec3, depthTest bool) {
	tip := from.Add(direction.Mul(debugPointerLen))
	r.AddLine(from, tip, debug.Green, depthTest)
	r.AddSphere(tip, debugJointRadius, debug.Green, depthTest)
}

// drawTrigChain draws a two-segment chain with its bend pointer.
func drawTrigChain(r *debug.Renderer, chain *TrigonometricChain, depthTest bool) {
	begin := chain.BeginNode()
	middle := chain.MiddleNode()
	end := chain.EndNode()
	if begin == nil || middle == nil || end == nil {
		return
	}

	drawBone(r, begin.Position, middle.Position, depthTest)
	drawBone(r, middle.Position, end.Position, depthTest)
	drawJoint(r, begin.Position, depthTest)
	drawJoint(r, middle.Position, depthTest)
	drawJoint(r, end.Position, depthTest)
	drawBendPointer(r, middle.Position, chain.CurrentBendDirection(), depthTest)
}

// drawSegmentChain draws the bones and joints of a multi-segment chain.
func drawSegmentChain(r *debug.Renderer, segments []Segment, depthTest bool) {
	for _, seg := range segments {
		drawBone(r, seg.Begin.Position, seg.End.Position, depthTest)
		drawJoint(r, seg.Begin.Position, depthTest)
	}
	if len(segments) > 0 {
		drawJoint(r, segments[len(segments)-1].End.Position, depthTest)
	}
}
