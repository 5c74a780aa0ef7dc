package ik

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// TrigonometrySolver is the plain analytic two-bone solver: three bones, one
// target, closed-form middle joint placement within an angle range.
type TrigonometrySolver struct {
	solverBase

	FirstBoneName  string
	SecondBoneName string
	ThirdBoneName  string
	TargetName     string

	// MinAngle and MaxAngle limit the middle joint, in degrees.
	MinAngle float32
	MaxAngle float32

	// BendDirection hints which way the middle joint flexes, in the rig
	// root's frame.
	BendDirection mgl32.Vec3

	chain  TrigonometricChain
	target scene.Transform
}

// NewTrigonometrySolver creates a two-bone solver over three bones with the
// default full joint range and a forward bend hint.
func NewTrigonometrySolver(root Root, first, second, third, target string) *TrigonometrySolver {
	return &TrigonometrySolver{
		solverBase:     solverBase{root: root},
		FirstBoneName:  first,
		SecondBoneName: second,
		ThirdBoneName:  third,
		TargetName:     target,
		MinAngle:       0,
		MaxAngle:       180,
		BendDirection:  Forward,
	}
}

// Initialize resolves the target and the three chain bones.
func (s *TrigonometrySolver) Initialize(cache NodeCache) error {
	s.reset()

	target, err := s.addTargetNode(cache, s.TargetName)
	if err != nil {
		return err
	}
	s.target = target

	first, err := s.addSolverNode(cache, s.FirstBoneName)
	if err != nil {
		return err
	}
	second, err := s.addSolverNode(cache, s.SecondBoneName)
	if err != nil {
		return err
	}
	third, err := s.addSolverNode(cache, s.ThirdBoneName)
	if err != nil {
		return err
	}

	s.chain.Initialize(first, second, third)
	return nil
}

// NotifyPositionsReady bakes the chain segment lengths.
func (s *TrigonometrySolver) NotifyPositionsReady() {
	s.chain.UpdateLengths()
}

func (s *TrigonometrySolver) ensureInitialized() {
	s.MinAngle = mgl32.Clamp(s.MinAngle, 0, 180)
	s.MaxAngle = mgl32.Clamp(s.MaxAngle, 0, 180)
}

// Solve reaches the chain toward the target.
func (s *TrigonometrySolver) Solve(settings Settings) {
	s.pullTransforms()
	s.solveInternal(settings)
	s.pushTransforms()
}

func (s *TrigonometrySolver) solveInternal(Settings) {
	s.ensureInitialized()

	s.chain.Solve(s.target.WorldPosition(), s.worldDirection(s.BendDirection),
		mgl32.DegToRad(s.MinAngle), mgl32.DegToRad(s.MaxAngle))
}

// DrawDebugGeometry draws the chain, its bend pointer, and the target.
func (s *TrigonometrySolver) DrawDebugGeometry(r *debug.Renderer, depthTest bool) {
	drawTrigChain(r, &s.chain, depthTest)
	if s.target != nil {
		drawTarget(r, s.target.WorldPosition(), depthTest)
	}
}
