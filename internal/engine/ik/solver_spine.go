package ik

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// SpineSolver bends a chain of three or more bones smoothly toward a target,
// spreading a bounded total bend angle across the joints instead of folding
// at one of them.
type SpineSolver struct {
	solverBase

	BoneNames  []string
	TargetName string

	// MaxAngle is the total bend budget across all joints, in degrees.
	MaxAngle float32

	// Weights optionally skews the bend distribution, one weight per
	// interior joint. Empty means an even spread.
	Weights []float32

	chain  SpineChain
	target scene.Transform
}

// NewSpineSolver creates a spine solver over the named bones, in
// root-to-tip order, with the default 90 degree bend budget.
func NewSpineSolver(root Root, bones []string, target string) *SpineSolver {
	return &SpineSolver{
		solverBase: solverBase{root: root},
		BoneNames:  bones,
		TargetName: target,
		MaxAngle:   90,
	}
}

// Initialize resolves the target and the chain bones.
func (s *SpineSolver) Initialize(cache NodeCache) error {
	s.reset()

	target, err := s.addTargetNode(cache, s.TargetName)
	if err != nil {
		return err
	}
	s.target = target

	if len(s.BoneNames) < 3 {
		return fmt.Errorf("spine of %d bones: %w", len(s.BoneNames), ErrTooFewBones)
	}

	chain := SpineChain{}
	for _, name := range s.BoneNames {
		bone, err := s.addSolverNode(cache, name)
		if err != nil {
			return err
		}
		chain.AddNode(bone)
	}

	s.chain = chain
	return nil
}

// NotifyPositionsReady bakes the chain segment lengths.
func (s *SpineSolver) NotifyPositionsReady() {
	s.chain.UpdateLengths()
}

func (s *SpineSolver) ensureInitialized() {
	s.MaxAngle = mgl32.Clamp(s.MaxAngle, 0, 180)
	s.chain.SetWeights(s.Weights)
}

// Solve bends the chain toward the target.
func (s *SpineSolver) Solve(settings Settings) {
	s.pullTransforms()
	s.solveInternal(settings)
	s.pushTransforms()
}

func (s *SpineSolver) solveInternal(settings Settings) {
	s.ensureInitialized()

	s.chain.Solve(s.target.WorldPosition(), mgl32.DegToRad(s.MaxAngle), settings)
}

// DrawDebugGeometry draws the chain bones and the target.
func (s *SpineSolver) DrawDebugGeometry(r *debug.Renderer, depthTest bool) {
	drawSegmentChain(r, s.chain.Segments(), depthTest)
	if s.target != nil {
		drawTarget(r, s.target.WorldPosition(), depthTest)
	}
}
