package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/pkg/math"
)

// spineBisectionSteps bounds the bend-angle search. 16 halvings of a 90
// degree budget land within a hundredth of a degree.
const spineBisectionSteps = 16

// SpineChain bends a multi-bone chain smoothly toward a target by
// distributing one total bend angle across the interior joints. Unlike the
// FABRIK chain it keeps the rest shape's character: every joint curls in the
// same plane by its share of the total angle.
type SpineChain struct {
	nodes    []*Node
	segments []Segment
	weights  []float32
}

// AddNode appends a node to the chain, joining it to the previous node with
// a new segment.
func (c *SpineChain) AddNode(node *Node) {
	c.nodes = append(c.nodes, node)
	if len(c.nodes) > 1 {
		c.segments = append(c.segments, Segment{
			Begin: c.nodes[len(c.nodes)-2],
			End:   node,
		})
	}
}

// Nodes returns the chain nodes in root-to-tip order.
func (c *SpineChain) Nodes() []*Node { return c.nodes }

// Segments returns the chain segments in root-to-tip order.
func (c *SpineChain) Segments() []Segment { return c.segments }

// SetWeights sets the per-joint bend distribution. One weight per interior
// joint (nodes minus two); nil or mismatched lengths fall back to an even
// spread.
func (c *SpineChain) SetWeights(weights []float32) {
	c.weights = append(c.weights[:0], weights...)
}

// UpdateLengths bakes segment rest lengths from the current node positions.
func (c *SpineChain) UpdateLengths() {
	for i := range c.segments {
		c.segments[i].UpdateLength()
	}
}

// jointWeights returns normalized per-joint weights, one per interior joint.
func (c *SpineChain) jointWeights() []float32 {
	jointCount := len(c.nodes) - 2
	weights := make([]float32, jointCount)

	var total float32
	if len(c.weights) == jointCount {
		for _, w := range c.weights {
			total += w
		}
	}
	if total <= math.Epsilon {
		for i := range weights {
			weights[i] = 1 / float32(jointCount)
		}
		return weights
	}
	for i, w := range c.weights {
		weights[i] = w / total
	}
	return weights
}

// bentShape returns node offsets from the base for the rest shape bent by
// totalAngle radians around normal, each interior joint taking its weighted
// share. Offset 0 is always zero.
func (c *SpineChain) bentShape(totalAngle float32, normal mgl32.Vec3, weights []float32) []mgl32.Vec3 {
	segs := make([]mgl32.Vec3, len(c.nodes)-1)
	for i := range segs {
		segs[i] = c.nodes[i+1].RestPosition.Sub(c.nodes[i].RestPosition)
	}

	// Bending at joint j rotates every segment from j outward.
	for j := 1; j < len(c.nodes)-1; j++ {
		rot := math.AxisAngle(normal, totalAngle*weights[j-1])
		for k := j; k < len(segs); k++ {
			segs[k] = rot.Rotate(segs[k])
		}
	}

	shape := make([]mgl32.Vec3, len(c.nodes))
	for i := range segs {
		shape[i+1] = shape[i].Add(segs[i])
	}
	return shape
}

// Solve bends the chain toward target, spending at most maxAngle radians of
// total bend across the interior joints. The base node stays anchored. When
// the target is closer than the rest-shape chord the bend angle is found by
// bisection; farther targets get the unbent rest shape aimed at the target.
func (c *SpineChain) Solve(target mgl32.Vec3, maxAngle float32, settings Settings) {
	if len(c.nodes) < 3 {
		return
	}

	base := c.nodes[0].Position
	restChord := c.nodes[len(c.nodes)-1].RestPosition.Sub(c.nodes[0].RestPosition)
	toTarget := target.Sub(base)
	if restChord.Len() < math.Epsilon || toTarget.Len() < math.Epsilon {
		return
	}

	normal := math.NormalizeOr(restChord.Cross(toTarget), math.Perpendicular(restChord))
	weights := c.jointWeights()

	targetDistance := toTarget.Len()
	var angle float32
	if restChord.Len() > targetDistance {
		lo, hi := float32(0), maxAngle
		for i := 0; i < spineBisectionSteps; i++ {
			mid := (lo + hi) / 2
			shape := c.bentShape(mid, normal, weights)
			if shape[len(shape)-1].Len() > targetDistance {
				lo = mid
			} else {
				hi = mid
			}
		}
		angle = hi
	}

	shape := c.bentShape(angle, normal, weights)
	swing := math.RotationBetween(shape[len(shape)-1], toTarget)
	for i := 1; i < len(c.nodes); i++ {
		c.nodes[i].Position = base.Add(swing.Rotate(shape[i]))
		c.nodes[i].MarkPositionDirty()
	}

	for i := range c.segments {
		c.segments[i].UpdateRotationInNodes(settings.ContinuousRotation, i == len(c.segments)-1)
	}
}
