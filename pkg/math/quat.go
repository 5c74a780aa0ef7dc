package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RotationBetween returns the shortest-arc rotation taking direction from to
// direction to. Degenerate input yields the identity.
func RotationBetween(from, to mgl32.Vec3) mgl32.Quat {
	f, t := SafeNormalize(from), SafeNormalize(to)
	if f.Len() < 0.5 || t.Len() < 0.5 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(f, t)
}

// AxisAngle returns the rotation of angle radians about axis. The axis is
// normalized first; a degenerate axis yields the identity.
func AxisAngle(axis mgl32.Vec3, angle float32) mgl32.Quat {
	n := SafeNormalize(axis)
	if n.Len() < 0.5 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(angle, n)
}

// PartialRotation scales rotation q by t: t=0 yields the identity, t=1 yields
// q itself.
func PartialRotation(q mgl32.Quat, t float32) mgl32.Quat {
	if q.W < 0 {
		q = q.Scale(-1)
	}
	return mgl32.QuatSlerp(mgl32.QuatIdent(), q, t)
}

// InterpolateDirection rotates from toward to by fraction t of the full arc
// between them, preserving the length of from.
func InterpolateDirection(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	return PartialRotation(RotationBetween(from, to), t).Rotate(from)
}

// SwingTwist decomposes q into a twist around twistAxis and the remaining
// swing, so that q = swing * twist. A rotation exactly perpendicular to the
// axis has no twist component and is returned entirely as swing.
func SwingTwist(q mgl32.Quat, twistAxis mgl32.Vec3) (swing, twist mgl32.Quat) {
	axis := SafeNormalize(twistAxis)
	if axis.Len() < 0.5 {
		return q, mgl32.QuatIdent()
	}
	proj := axis.Mul(q.V.Dot(axis))
	twist = mgl32.Quat{W: q.W, V: proj}
	n := twist.Len()
	if n < Epsilon {
		return q, mgl32.QuatIdent()
	}
	twist = twist.Scale(1 / n)
	swing = q.Mul(twist.Conjugate())
	return swing, twist
}
