package ik

import (
	"fmt"

	"github.com/Faultbox/ikrig/internal/engine/debug"
	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// ChainSolver reaches an arbitrary-length bone chain toward a target with
// iterative forward-and-backward passes. Use it for chains with no analytic
// form, like tails or tentacles. Per-joint angle limits are a future
// extension; the base chain runs unconstrained.
type ChainSolver struct {
	solverBase

	BoneNames  []string
	TargetName string

	chain  FabrikChain
	target scene.Transform
}

// NewChainSolver creates an iterative solver over the named bones, in
// root-to-tip order.
func NewChainSolver(root Root, bones []string, target string) *ChainSolver {
	return &ChainSolver{
		solverBase: solverBase{root: root},
		BoneNames:  bones,
		TargetName: target,
	}
}

// Initialize resolves the target and the chain bones.
func (s *ChainSolver) Initialize(cache NodeCache) error {
	s.reset()

	target, err := s.addTargetNode(cache, s.TargetName)
	if err != nil {
		return err
	}
	s.target = target

	if len(s.BoneNames) < 2 {
		return fmt.Errorf("chain of %d bones: %w", len(s.BoneNames), ErrTooFewBones)
	}

	chain := FabrikChain{}
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
func (s *ChainSolver) NotifyPositionsReady() {
	s.chain.UpdateLengths()
}

// Solve reaches the chain toward the target.
func (s *ChainSolver) Solve(settings Settings) {
	s.pullTransforms()
	s.solveInternal(settings)
	s.pushTransforms()
}

func (s *ChainSolver) solveInternal(settings Settings) {
	s.chain.Solve(s.target.WorldPosition(), settings)
}

// DrawDebugGeometry draws the chain bones and the target.
func (s *ChainSolver) DrawDebugGeometry(r *debug.Renderer, depthTest bool) {
	drawSegmentChain(r, s.chain.Segments(), depthTest)
	if s.target != nil {
		drawTarget(r, s.target.WorldPosition(), depthTest)
	}
}
