// Package math provides the vector, quaternion, and triangle helpers used by
// the IK solvers. It builds on mgl32 types and keeps every operation safe for
// degenerate input: zero vectors, collinear directions, and out-of-domain
// triangle sides produce well-defined fallbacks instead of NaN.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the length below which vectors are treated as zero.
const Epsilon = 1e-6

// SafeAcos clamps x to [-1, 1] before taking the arc cosine.
func SafeAcos(x float32) float32 {
	return math32.Acos(mgl32.Clamp(x, -1, 1))
}

// SafeAsin clamps x to [-1, 1] before taking the arc sine.
func SafeAsin(x float32) float32 {
	return math32.Asin(mgl32.Clamp(x, -1, 1))
}
