// Deliberately not named solver_arm.go: a _arm filename suffix is an implicit
// GOARCH=arm build constraint and would exclude this file on other platforms.

package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/scene"
	"github.com/Faultbox/ikrig/pkg/math"
)

// ArmSolver reaches an arm-forearm-hand chain toward a hand target, first
// rotating the shoulder girdle partway toward the target so extreme reaches
// engage the shoulder the way a real arm does.
type ArmSolver struct {
	solverBase

	ShoulderBoneName string
	ArmBoneName      string
	ForearmBoneName  string
	HandBoneName     string
	TargetName       string

	// MinElbowAngle and MaxElbowAngle limit the elbow joint, in degrees.
	MinElbowAngle float32
	MaxElbowAngle float32

	// SwingWeight and TwistWeight blend the shoulder girdle between
	// staying put (0) and fully following the reach (1). Swing is the
	// off-axis part of the rotation, twist the part around UpDirection.
	SwingWeight float32
	TwistWeight float32

	// BendDirection hints which way the elbow flexes, in the rig root's
	// frame.
	BendDirection mgl32.Vec3

	// UpDirection is the twist axis for the shoulder decomposition, in
	// the rig root's frame.
	UpDirection mgl32.Vec3

	armChain        TrigonometricChain
	shoulderSegment Segment
	target          scene.Transform
}

// NewArmSolver creates an arm solver over shoulder, arm, forearm, and hand
// bones with the default elbow range and a fixed shoulder.
func NewArmSolver(root Root, shoulder, arm, forearm, hand, target string) *ArmSolver {
	return &ArmSolver{
		solverBase:       solverBase{root: root},
		ShoulderBoneName: shoulder,
		ArmBoneName:      arm,
		ForearmBoneName:  forearm,
		HandBoneName:     hand,
		TargetName:       target,
		MinElbowAngle:    0,
		MaxElbowAngle:    180,
		BendDirection:    Forward,
		UpDirection:      Up,
	}
}

// Initialize resolves the target and the four arm bones.
func (s *ArmSolver) Initialize(cache NodeCache) error {
	s.reset()

	target, err := s.addTargetNode(cache, s.TargetName)
	if err != nil {
		return err
	}
	s.target = target

	shoulder, err := s.addSolverNode(cache, s.ShoulderBoneName)
	if err != nil {
		return err
	}
	arm, err := s.addSolverNode(cache, s.ArmBoneName)
	if err != nil {
		return err
	}
	forearm, err := s.addSolverNode(cache, s.ForearmBoneName)
	if err != nil {
		return err
	}
	hand, err := s.addSolverNode(cache, s.HandBoneName)
	if err != nil {
		return err
	}

	s.armChain.Initialize(arm, forearm, hand)
	s.shoulderSegment = Segment{Begin: shoulder, End: arm}
	return nil
}

// NotifyPositionsReady bakes the arm chain and shoulder segment lengths.
func (s *ArmSolver) NotifyPositionsReady() {
	s.armChain.UpdateLengths()
	s.shoulderSegment.UpdateLength()
}

func (s *ArmSolver) ensureInitialized() {
	s.MinElbowAngle = mgl32.Clamp(s.MinElbowAngle, 0, 180)
	s.MaxElbowAngle = mgl32.Clamp(s.MaxElbowAngle, 0, 180)
	s.SwingWeight = mgl32.Clamp(s.SwingWeight, 0, 1)
	s.TwistWeight = mgl32.Clamp(s.TwistWeight, 0, 1)
}

// maxShoulderRotation returns the shoulder rotation needed if the girdle
// alone had to point the arm at the target: from the rest shoulder-to-arm
// direction to the target direction clamped at the segment length.
func (s *ArmSolver) maxShoulderRotation(handTargetPosition mgl32.Vec3) mgl32.Quat {
	shoulder := s.shoulderSegment.Begin
	arm := s.shoulderSegment.End

	length := s.shoulderSegment.Length
	shoulderToArmMax := math.Renormalized(handTargetPosition.Sub(shoulder.Position), length, length)
	restShoulderToArm := arm.RestPosition.Sub(shoulder.RestPosition)
	return math.RotationBetween(restShoulderToArm, shoulderToArmMax)
}

// rotateShoulder rebuilds the girdle's rest shape at the shoulder's current
// position, then rigidly rotates it around the shoulder joint. Rebuilding
// from rest keeps partial rotations from stacking across frames.
func (s *ArmSolver) rotateShoulder(rotation mgl32.Quat) {
	shoulder := s.shoulderSegment.Begin
	arm := s.shoulderSegment.End

	shoulderPosition := shoulder.Position
	shoulderOffset := shoulderPosition.Sub(shoulder.RestPosition)

	shoulder.ResetToRestPose()
	arm.ResetToRestPose()
	shoulder.Position = shoulder.Position.Add(shoulderOffset)
	arm.Position = arm.Position.Add(shoulderOffset)

	shoulder.RotateAround(shoulderPosition, rotation)
	arm.RotateAround(shoulderPosition, rotation)
}

// Solve reaches the hand toward the target.
func (s *ArmSolver) Solve(settings Settings) {
	s.pullTransforms()
	s.solveInternal(settings)
	s.pushTransforms()
}

func (s *ArmSolver) solveInternal(Settings) {
	s.ensureInitialized()

	handTargetPosition := s.target.WorldPosition()

	maxRotation := s.maxShoulderRotation(handTargetPosition)
	swing, twist := math.SwingTwist(maxRotation, s.worldDirection(s.UpDirection))
	shoulderRotation := math.PartialRotation(swing, s.SwingWeight).
		Mul(math.PartialRotation(twist, s.TwistWeight))
	s.rotateShoulder(shoulderRotation)

	s.armChain.Solve(handTargetPosition, s.worldDirection(s.BendDirection),
		mgl32.DegToRad(s.MinElbowAngle), mgl32.DegToRad(s.MaxElbowAngle))
}

// DrawDebugGeometry draws the shoulder segment, the arm chain, and the
// target.
func (s *ArmSolver) DrawDebugGeometry(r *debug.Renderer, depthTest bool) {
	drawTrigChain(r, &s.armChain, depthTest)

	shoulder := s.shoulderSegment.Begin
	arm := s.shoulderSegment.End
	if shoulder != nil && arm != nil {
		drawBone(r, shoulder.Position, arm.Position, depthTest)
		drawJoint(r, shoulder.Position, depthTest)
	}
	if s.target != nil {
		drawTarget(r, s.target.WorldPosition(), depthTest)
	}
}
