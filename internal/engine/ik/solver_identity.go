package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// IdentitySolver copies the target's world transform onto one bone, with a
// fixed rotation offset on top. Useful for head or hand bones that should
// follow a tracked device exactly.
type IdentitySolver struct {
	solverBase

	BoneName   string
	TargetName string

	// RotationOffset is applied after the target rotation. The zero
	// quaternion means "capture from the bone's pose on the next solve".
	RotationOffset mgl32.Quat

	bone   *Node
	target scene.Transform
}

// NewIdentitySolver creates an identity solver binding one bone to one
// target under the given rig root.
func NewIdentitySolver(root Root, bone, target string) *IdentitySolver {
	return &IdentitySolver{
		solverBase: solverBase{root: root},
		BoneName:   bone,
		TargetName: target,
	}
}

// Initialize resolves the bone and target names.
func (s *IdentitySolver) Initialize(cache NodeCache) error {
	s.reset()

	target, err := s.addTargetNode(cache, s.TargetName)
	if err != nil {
		return err
	}
	s.target = target

	bone, err := s.addSolverNode(cache, s.BoneName)
	if err != nil {
		return err
	}
	s.bone = bone
	return nil
}

// NotifyPositionsReady is a no-op: the identity solver has no chain lengths.
func (s *IdentitySolver) NotifyPositionsReady() {}

// UpdateRotationOffset captures the rotation offset from the bone's current
// scene rotation relative to the rig root.
func (s *IdentitySolver) UpdateRotationOffset() {
	if bone, ok := s.root.FindChild(s.BoneName); ok {
		s.RotationOffset = s.root.WorldRotation().Inverse().Mul(bone.WorldRotation())
	}
}

func (s *IdentitySolver) ensureInitialized() {
	if s.RotationOffset == (mgl32.Quat{}) {
		s.UpdateRotationOffset()
	}
}

// Solve copies the target transform onto the bone.
func (s *IdentitySolver) Solve(settings Settings) {
	s.pullTransforms()
	s.solveInternal(settings)
	s.pushTransforms()
}

func (s *IdentitySolver) solveInternal(Settings) {
	s.ensureInitialized()

	s.bone.Position = s.target.WorldPosition()
	s.bone.Rotation = s.target.WorldRotation().Mul(s.RotationOffset)

	s.bone.MarkPositionDirty()
	s.bone.MarkRotationDirty()
}

// DrawDebugGeometry draws the bone as an oriented box and the target as a
// sphere.
func (s *IdentitySolver) DrawDebugGeometry(r *debug.Renderer, depthTest bool) {
	if s.bone != nil {
		halfExtents := mgl32.Vec3{debugJointRadius, debugJointRadius, debugJointRadius}
		r.AddOrientedBox(s.bone.Position, s.bone.Rotation, halfExtents, debug.Yellow, depthTest)
	}
	if s.target != nil {
		drawTarget(r, s.target.WorldPosition(), depthTest)
	}
}
