package ik

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// armTestScene is a straight right-pointing arm: a 0.2 shoulder girdle
// segment followed by 0.3 upper and lower arm bones.
func armTestScene() (root, shoulder, arm, forearm, hand *scene.Node) {
	root = scene.NewNode("root")
	shoulder = addBone(root, "shoulder", mgl32.Vec3{0.1, 1.5, 0})
	arm = addBone(shoulder, "arm", mgl32.Vec3{0.3, 1.5, 0})
	forearm = addBone(arm, "forearm", mgl32.Vec3{0.6, 1.5, 0})
	hand = addBone(forearm, "hand", mgl32.Vec3{0.9, 1.5, 0})
	return root, shoulder, arm, forearm, hand
}

func TestArmSolverFixedShoulder(t *testing.T) {
	root, shoulder, arm, forearm, hand := armTestScene()
	target := mgl32.Vec3{0.5, 1.2, 0.2}
	addBone(root, "hand_target", target)

	solver := NewArmSolver(root, "shoulder", "arm", "forearm", "hand", "hand_target")

	rig := NewRig(root)
	rig.Add(solver)
	rig.Solve()

	// Zero swing and twist weights pin the girdle in place.
	if got := shoulder.WorldPosition(); !vecNear(got, mgl32.Vec3{0.1, 1.5, 0}) {
		t.Errorf("shoulder = %v, want it pinned at (0.1, 1.5, 0)", got)
	}
	if got := arm.WorldPosition(); !vecNear(got, mgl32.Vec3{0.3, 1.5, 0}) {
		t.Errorf("arm = %v, want it pinned at (0.3, 1.5, 0)", got)
	}

	if got := hand.WorldPosition(); !vecNear(got, target) {
		t.Errorf("hand = %v, want the target %v", got, target)
	}
	if got := forearm.WorldPosition().Sub(arm.WorldPosition()).Len(); !floatNear(got, 0.3) {
		t.Errorf("upper arm length = %v, want 0.3", got)
	}
	if got := hand.WorldPosition().Sub(forearm.WorldPosition()).Len(); !floatNear(got, 0.3) {
		t.Errorf("lower arm length = %v, want 0.3", got)
	}
}

func TestArmSolverShoulderFollowsReach(t *testing.T) {
	root, shoulder, arm, forearm, hand := armTestScene()
	target := mgl32.Vec3{0.3, 1.5, 0.9}
	addBone(root, "hand_target", target)

	solver := NewArmSolver(root, "shoulder", "arm", "forearm", "hand", "hand_target")
	solver.SwingWeight = 1
	solver.TwistWeight = 1

	rig := NewRig(root)
	rig.Add(solver)
	rig.Solve()

	// Full weights point the whole girdle at the target while the
	// shoulder joint itself stays put.
	if got := shoulder.WorldPosition(); !vecNear(got, mgl32.Vec3{0.1, 1.5, 0}) {
		t.Errorf("shoulder = %v, want it at (0.1, 1.5, 0)", got)
	}
	if got := arm.WorldPosition().Sub(shoulder.WorldPosition()).Len(); !floatNear(got, 0.2) {
		t.Errorf("girdle length = %v, want 0.2", got)
	}
	toArm := arm.WorldPosition().Sub(shoulder.WorldPosition()).Normalize()
	toTarget := target.Sub(shoulder.WorldPosition()).Normalize()
	if got := toArm.Dot(toTarget); !floatNear(got, 1) {
		t.Errorf("girdle direction dot target direction = %v, want 1", got)
	}

	// The target sits past the rotated arm's reach, so the arm ends up
	// fully stretched.
	if got := hand.WorldPosition().Sub(arm.WorldPosition()).Len(); !floatNear(got, 0.6) {
		t.Errorf("arm stretch = %v, want the full 0.6", got)
	}

	// Rebuilding the girdle from the rest pose keeps repeated solves from
	// winding the shoulder further each frame.
	armBefore := arm.WorldPosition()
	forearmBefore := forearm.WorldPosition()
	handBefore := hand.WorldPosition()
	rig.Solve()
	if got := arm.WorldPosition(); !vecNear(got, armBefore) {
		t.Errorf("arm drifted to %v on a second solve, want %v", got, armBefore)
	}
	if got := forearm.WorldPosition(); !vecNear(got, forearmBefore) {
		t.Errorf("forearm drifted to %v on a second solve, want %v", got, forearmBefore)
	}
	if got := hand.WorldPosition(); !vecNear(got, handBefore) {
		t.Errorf("hand drifted to %v on a second solve, want %v", got, handBefore)
	}
}
