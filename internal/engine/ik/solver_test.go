package ik

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// addBone attaches a named bone under parent at a world-space position.
func addBone(parent *scene.Node, name string, position mgl32.Vec3) *scene.Node {
	n := scene.NewNode(name)
	parent.AddChild(n)
	n.SetWorldPosition(position)
	return n
}

// spyBone records world transform writes for write-back assertions.
type spyBone struct {
	pos mgl32.Vec3
	rot mgl32.Quat

	posWrites int
	rotWrites int
}

func newSpyBone(pos mgl32.Vec3) *spyBone {
	return &spyBone{pos: pos, rot: mgl32.QuatIdent()}
}

func (b *spyBone) WorldPosition() mgl32.Vec3     { return b.pos }
func (b *spyBone) WorldRotation() mgl32.Quat     { return b.rot }
func (b *spyBone) SetWorldPosition(p mgl32.Vec3) { b.pos = p; b.posWrites++ }
func (b *spyBone) SetWorldRotation(q mgl32.Quat) { b.rot = q; b.rotWrites++ }

// spyRoot resolves named spy bones and stands in as the rig root.
type spyRoot struct {
	spyBone
	children map[string]*spyBone
}

func newSpyRoot() *spyRoot {
	return &spyRoot{spyBone: *newSpyBone(mgl32.Vec3{}), children: map[string]*spyBone{}}
}

func (r *spyRoot) add(name string, pos mgl32.Vec3) *spyBone {
	b := newSpyBone(pos)
	r.children[name] = b
	return b
}

func (r *spyRoot) FindChild(name string) (scene.Transform, bool) {
	if b, ok := r.children[name]; ok {
		return b, true
	}
	return nil, false
}

func TestIdentitySolverCopiesTarget(t *testing.T) {
	root := scene.NewNode("root")
	head := addBone(root, "head", mgl32.Vec3{0, 1.6, 0})
	target := addBone(root, "head_target", mgl32.Vec3{0.1, 1.7, 0})
	target.SetWorldRotation(scene.EulerDegrees(0, 30, 0))

	solver := NewIdentitySolver(root, "head", "head_target")
	solver.RotationOffset = mgl32.QuatIdent()

	rig := NewRig(root)
	rig.Add(solver)
	rig.Solve()

	if got := head.WorldPosition(); !vecNear(got, mgl32.Vec3{0.1, 1.7, 0}) {
		t.Errorf("head position = %v, want the target position", got)
	}
	want := scene.EulerDegrees(0, 30, 0).Rotate(Forward)
	if got := head.WorldRotation().Rotate(Forward); !vecNear(got, want) {
		t.Errorf("head forward = %v, want %v", got, want)
	}
}

func TestIdentitySolverCapturesOffset(t *testing.T) {
	root := scene.NewNode("root")
	head := addBone(root, "head", mgl32.Vec3{0, 1.6, 0})
	head.SetWorldRotation(scene.EulerDegrees(0, 90, 0))
	addBone(root, "head_target", mgl32.Vec3{0.1, 1.7, 0})

	// The zero offset captures the bone's pose on the first solve, so a
	// bone following an identity-rotated target keeps its own orientation.
	solver := NewIdentitySolver(root, "head", "head_target")

	rig := NewRig(root)
	rig.Add(solver)
	rig.Solve()

	if got := head.WorldPosition(); !vecNear(got, mgl32.Vec3{0.1, 1.7, 0}) {
		t.Errorf("head position = %v, want the target position", got)
	}
	want := scene.EulerDegrees(0, 90, 0).Rotate(Forward)
	if got := head.WorldRotation().Rotate(Forward); !vecNear(got, want) {
		t.Errorf("head forward = %v, want the captured %v", got, want)
	}
}

func TestSolverBindingErrors(t *testing.T) {
	root := scene.NewNode("root")
	addBone(root, "head", mgl32.Vec3{})

	s := NewIdentitySolver(root, "missing", "head")
	if err := s.Initialize(NodeCache{}); !errors.Is(err, ErrBoneNotFound) {
		t.Errorf("missing bone err = %v, want ErrBoneNotFound", err)
	}

	s = NewIdentitySolver(root, "head", "missing")
	if err := s.Initialize(NodeCache{}); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("missing target err = %v, want ErrTargetNotFound", err)
	}
}

func TestChainSolversRejectShortChains(t *testing.T) {
	root := scene.NewNode("root")
	addBone(root, "a", mgl32.Vec3{})
	addBone(root, "b", mgl32.Vec3{0, 1, 0})
	addBone(root, "t", mgl32.Vec3{1, 0, 0})

	chain := NewChainSolver(root, []string{"a"}, "t")
	if err := chain.Initialize(NodeCache{}); !errors.Is(err, ErrTooFewBones) {
		t.Errorf("one-bone chain err = %v, want ErrTooFewBones", err)
	}

	spine := NewSpineSolver(root, []string{"a", "b"}, "t")
	if err := spine.Initialize(NodeCache{}); !errors.Is(err, ErrTooFewBones) {
		t.Errorf("two-bone spine err = %v, want ErrTooFewBones", err)
	}
}

func TestTrigonometrySolverReachesTarget(t *testing.T) {
	root := scene.NewNode("root")
	upper := addBone(root, "upper", mgl32.Vec3{0, 2, 0})
	mid := addBone(upper, "mid", mgl32.Vec3{0, 1, 0})
	low := addBone(mid, "low", mgl32.Vec3{0, 0, 0})
	addBone(root, "grip", mgl32.Vec3{0.5, 1, 0.5})

	solver := NewTrigonometrySolver(root, "upper", "mid", "low", "grip")

	rig := NewRig(root)
	rig.Add(solver)
	if err := rig.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	rig.Solve()

	target := mgl32.Vec3{0.5, 1, 0.5}
	if got := low.WorldPosition(); !vecNear(got, target) {
		t.Errorf("end bone = %v, want the target %v", got, target)
	}
	if got := upper.WorldPosition(); !vecNear(got, mgl32.Vec3{0, 2, 0}) {
		t.Errorf("first bone = %v, want it anchored", got)
	}
	if got := mid.WorldPosition().Sub(upper.WorldPosition()).Len(); !floatNear(got, 1) {
		t.Errorf("first bone length = %v, want 1", got)
	}
	if got := low.WorldPosition().Sub(mid.WorldPosition()).Len(); !floatNear(got, 1) {
		t.Errorf("second bone length = %v, want 1", got)
	}

	// Solving an already solved pose changes nothing.
	rig.Solve()
	if got := low.WorldPosition(); !vecNear(got, target) {
		t.Errorf("end bone after a second solve = %v, want it stable on %v", got, target)
	}
}

func TestTrigonometrySolverWriteBack(t *testing.T) {
	root := newSpyRoot()
	first := root.add("first", mgl32.Vec3{0, 2, 0})
	second := root.add("second", mgl32.Vec3{0, 1, 0})
	third := root.add("third", mgl32.Vec3{0, 0, 0})
	target := root.add("grip", mgl32.Vec3{0.5, 1, 0.5})

	solver := NewTrigonometrySolver(root, "first", "second", "third", "grip")

	rig := NewRig(root)
	rig.Add(solver)
	if err := rig.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	rig.Solve()

	// Only dirty attributes reach the scene: the first bone rotates in
	// place, the middle takes position and rotation, the end only the
	// position, and the target is never written.
	if first.posWrites != 0 || first.rotWrites != 1 {
		t.Errorf("first bone writes = %d pos, %d rot, want 0 and 1", first.posWrites, first.rotWrites)
	}
	if second.posWrites != 1 || second.rotWrites != 1 {
		t.Errorf("second bone writes = %d pos, %d rot, want 1 and 1", second.posWrites, second.rotWrites)
	}
	if third.posWrites != 1 || third.rotWrites != 0 {
		t.Errorf("third bone writes = %d pos, %d rot, want 1 and 0", third.posWrites, third.rotWrites)
	}
	if target.posWrites != 0 || target.rotWrites != 0 {
		t.Errorf("target writes = %d pos, %d rot, want none", target.posWrites, target.rotWrites)
	}
}
