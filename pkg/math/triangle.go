package math

import (
	"github.com/chewxy/math32"
)

// TriangleAngle returns the angle in radians at the vertex joining sides a
// and b of a triangle whose opposite side is c. Side combinations that do not
// form a triangle clamp to 0 or pi.
func TriangleAngle(a, b, c float32) float32 {
	if a < Epsilon || b < Epsilon {
		return 0
	}
	return SafeAcos((a*a + b*b - c*c) / (2 * a * b))
}

// AmbiguousTriangleAngle resolves the SSA triangle case: given side lengths
// AB and BC and the angle at vertex C, it returns the smallest matching angle
// at vertex A. ok is false when no such triangle exists.
func AmbiguousTriangleAngle(sideAB, sideBC, angleC float32) (angle float32, ok bool) {
	if sideAB < Epsilon {
		return 0, false
	}
	sinA := sideBC * math32.Sin(angleC) / sideAB
	if sinA > 1 {
		return 0, false
	}
	return math32.Asin(sinA), true
}

// JointChordLength returns the distance from the begin to the end of a
// two-segment joint with the given segment lengths, bent to jointAngle
// radians. An angle of pi is full extension.
func JointChordLength(lenA, lenB, jointAngle float32) float32 {
	return math32.Sqrt(lenA*lenA + lenB*lenB - 2*lenA*lenB*math32.Cos(jointAngle))
}
