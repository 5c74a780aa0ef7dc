package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/pkg/math"
)

// Segment is a fixed-length link between two chain nodes. It references the
// nodes, never owns them.
type Segment struct {
	Begin *Node
	End   *Node

	// Length is the rest distance between the nodes. It is baked by
	// UpdateLength, never recomputed implicitly.
	Length float32
}

// UpdateLength bakes the rest length from the current node positions.
func (s *Segment) UpdateLength() {
	s.Length = s.End.Position.Sub(s.Begin.Position).Len()
}

// Direction returns the current unit vector from begin to end, or zero when
// the nodes coincide.
func (s *Segment) Direction() mgl32.Vec3 {
	return math.SafeNormalize(s.End.Position.Sub(s.Begin.Position))
}

// restDirection returns the rest-pose unit vector from begin to end. A
// degenerate segment falls back to world up so downstream math stays finite.
func (s *Segment) restDirection() mgl32.Vec3 {
	return math.NormalizeOr(s.End.RestPosition.Sub(s.Begin.RestPosition), Up)
}

// rotationDeltaFromPrevious returns the rotation implied by the segment's
// direction change since the previous transform snapshot.
func (s *Segment) rotationDeltaFromPrevious() mgl32.Quat {
	prev := s.End.PrevPosition.Sub(s.Begin.PrevPosition)
	current := s.End.Position.Sub(s.Begin.Position)
	return math.RotationBetween(prev, current)
}

// rotationDeltaFromRest returns the rotation implied by the segment's
// direction change since the rest pose.
func (s *Segment) rotationDeltaFromRest() mgl32.Quat {
	rest := s.End.RestPosition.Sub(s.Begin.RestPosition)
	current := s.End.Position.Sub(s.Begin.Position)
	return math.RotationBetween(rest, current)
}

// UpdateRotationInNodes rewrites the begin node's rotation from the
// segment's direction change and marks it dirty. fromPrevious selects the
// previous-frame snapshot as the reference instead of the rest pose, which
// smooths rotation across frames for fast-moving targets. The last segment
// of a chain also carries the end node's rotation, since no further segment
// will.
func (s *Segment) UpdateRotationInNodes(fromPrevious, lastSegment bool) {
	if fromPrevious {
		delta := s.rotationDeltaFromPrevious()
		s.Begin.Rotation = delta.Mul(s.Begin.PrevRotation)
		if lastSegment {
			s.End.Rotation = delta.Mul(s.End.PrevRotation)
		}
	} else {
		delta := s.rotationDeltaFromRest()
		s.Begin.Rotation = delta.Mul(s.Begin.RestRotation)
		if lastSegment {
			s.End.Rotation = delta.Mul(s.End.RestRotation)
		}
	}
	s.Begin.MarkRotationDirty()
	if lastSegment {
		s.End.MarkRotationDirty()
	}
}
