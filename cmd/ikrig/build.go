package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/ikrig/internal/config"
	"github.com/Faultbox/ikrig/internal/engine/ik"
	"github.com/Faultbox/ikrig/internal/engine/scene"
)

// buildRig assembles a solving rig from its configuration. Solvers are added
// in file order, which is also their solve order.
func buildRig(root *scene.Node, rigCfg *config.RigConfig, solveCfg config.SolveConfig) (*ik.Rig, error) {
	rig := ik.NewRig(root)
	rig.SetSettings(ik.Settings{
		ContinuousRotation: solveCfg.ContinuousRotation,
		Tolerance:          solveCfg.Tolerance,
		MaxIterations:      solveCfg.MaxIterations,
	})

	for i := range rigCfg.Solvers {
		component, err := buildSolver(root, &rigCfg.Solvers[i])
		if err != nil {
			return nil, fmt.Errorf("solver %d: %w", i, err)
		}
		rig.Add(component)
	}
	return rig, nil
}

func buildSolver(root ik.Root, cfg *config.SolverConfig) (ik.Component, error) {
	switch cfg.Type {
	case config.SolverIdentity:
		s := ik.NewIdentitySolver(root, cfg.Bone, cfg.Target)
		if cfg.RotationOffset != nil {
			o := *cfg.RotationOffset
			s.RotationOffset = scene.EulerDegrees(o[0], o[1], o[2])
		}
		return s, nil

	case config.SolverTrigonometric:
		s := ik.NewTrigonometrySolver(root, cfg.Bones[0], cfg.Bones[1], cfg.Bones[2], cfg.Target)
		s.MinAngle = cfg.MinAngle
		s.MaxAngle = cfg.MaxAngle
		s.BendDirection = vec3(cfg.BendDirection)
		return s, nil

	case config.SolverChain:
		return ik.NewChainSolver(root, cfg.Bones, cfg.Target), nil

	case config.SolverSpine:
		s := ik.NewSpineSolver(root, cfg.Bones, cfg.Target)
		s.MaxAngle = cfg.MaxAngle
		s.Weights = cfg.Weights
		return s, nil

	case config.SolverLeg:
		s := ik.NewLegSolver(root, cfg.Thigh, cfg.Calf, cfg.Heel, cfg.Toe, cfg.Target)
		s.MinKneeAngle = cfg.MinAngle
		s.MaxKneeAngle = cfg.MaxAngle
		s.BendWeight = cfg.BendWeight
		s.BendDirection = vec3(cfg.BendDirection)
		s.MinHeelAngle = cfg.MinHeelAngle
		return s, nil

	case config.SolverArm:
		s := ik.NewArmSolver(root, cfg.Shoulder, cfg.Arm, cfg.Forearm, cfg.Hand, cfg.Target)
		s.MinElbowAngle = cfg.MinAngle
		s.MaxElbowAngle = cfg.MaxAngle
		s.SwingWeight = cfg.SwingWeight
		s.TwistWeight = cfg.TwistWeight
		s.BendDirection = vec3(cfg.BendDirection)
		s.UpDirection = vec3(cfg.UpDirection)
		return s, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownSolverType, cfg.Type)
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
