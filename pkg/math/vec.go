package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SafeNormalize returns the unit vector of v, or the zero vector when v is
// too short to normalize.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// NormalizeOr returns the unit vector of v, or fallback when v is degenerate.
func NormalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}

// Renormalized rescales v so its length lies within [minLength, maxLength].
// The zero vector is returned unchanged since it carries no direction.
func Renormalized(v mgl32.Vec3, minLength, maxLength float32) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return v.Mul(mgl32.Clamp(l, minLength, maxLength) / l)
}

// Perpendicular returns a unit vector perpendicular to v. The reference axis
// is chosen deterministically, and the zero vector maps to the world X axis.
func Perpendicular(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < Epsilon {
		return mgl32.Vec3{1, 0, 0}
	}
	ref := mgl32.Vec3{1, 0, 0}
	if math32.Abs(v.X()) > math32.Abs(v.Y()) {
		ref = mgl32.Vec3{0, 1, 0}
	}
	return SafeNormalize(v.Cross(ref))
}

// Angle returns the unsigned angle between a and b in radians. Degenerate
// input yields zero.
func Angle(a, b mgl32.Vec3) float32 {
	an, bn := SafeNormalize(a), SafeNormalize(b)
	if an.Len() < 0.5 || bn.Len() < 0.5 {
		return 0
	}
	return SafeAcos(an.Dot(bn))
}

// SignedAngle returns the angle between a and b in radians, negative when the
// rotation from a to b goes against axis.
func SignedAngle(a, b, axis mgl32.Vec3) float32 {
	angle := Angle(a, b)
	if a.Cross(b).Dot(axis) < 0 {
		angle = -angle
	}
	return angle
}
