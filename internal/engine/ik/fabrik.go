package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/pkg/math"
)

// FabrikChain is an iterative chain of arbitrary length solved with forward
// and backward reaching passes. Segment lengths are preserved exactly; the
// end node converges toward the target until the iteration or tolerance
// budget runs out.
type FabrikChain struct {
	nodes    []*Node
	segments []Segment
}

// AddNode appends a node to the chain, joining it to the previous node with
// a new segment.
func (c *FabrikChain) AddNode(node *Node) {
	c.nodes = append(c.nodes, node)
	if len(c.nodes) > 1 {
		c.segments = append(c.segments, Segment{
			Begin: c.nodes[len(c.nodes)-2],
			End:   node,
		})
	}
}

// Nodes returns the chain nodes in root-to-tip order.
func (c *FabrikChain) Nodes() []*Node { return c.nodes }

// Segments returns the chain segments in root-to-tip order.
func (c *FabrikChain) Segments() []Segment { return c.segments }

// UpdateLengths bakes segment rest lengths from the current node positions.
func (c *FabrikChain) UpdateLengths() {
	for i := range c.segments {
		c.segments[i].UpdateLength()
	}
}

// Solve runs forward-and-backward reaching passes until the end node is
// within settings.Tolerance of target or settings.MaxIterations passes have
// run. The root node stays anchored. Node rotations are rebuilt from the
// segment direction changes afterwards, so they stay valid even when the
// positions were already converged.
func (c *FabrikChain) Solve(target mgl32.Vec3, settings Settings) {
	if len(c.nodes) < 2 {
		return
	}

	root := c.nodes[0].Position
	moved := false
	for i := 0; i < settings.MaxIterations; i++ {
		endNode := c.nodes[len(c.nodes)-1]
		if endNode.Position.Sub(target).Len() <= settings.Tolerance {
			break
		}
		c.solveBackward(target)
		c.solveForward(root)
		moved = true
	}

	if moved {
		for _, node := range c.nodes[1:] {
			node.MarkPositionDirty()
		}
	}
	for i := range c.segments {
		c.segments[i].UpdateRotationInNodes(settings.ContinuousRotation, i == len(c.segments)-1)
	}
}

// solveBackward pins the end node to the target and walks tip-to-root,
// dragging each node to segment-length distance from its successor.
func (c *FabrikChain) solveBackward(target mgl32.Vec3) {
	c.nodes[len(c.nodes)-1].Position = target
	for i := len(c.segments) - 1; i >= 0; i-- {
		seg := &c.segments[i]
		dir := math.NormalizeOr(seg.Begin.Position.Sub(seg.End.Position),
			seg.restDirection().Mul(-1))
		seg.Begin.Position = seg.End.Position.Add(dir.Mul(seg.Length))
	}
}

// solveForward pins the root node back to its anchor and walks root-to-tip,
// dragging each node to segment-length distance from its predecessor.
func (c *FabrikChain) solveForward(root mgl32.Vec3) {
	c.nodes[0].Position = root
	for i := range c.segments {
		seg := &c.segments[i]
		dir := math.NormalizeOr(seg.End.Position.Sub(seg.Begin.Position),
			seg.restDirection())
		seg.End.Position = seg.Begin.Position.Add(dir.Mul(seg.Length))
	}
}
