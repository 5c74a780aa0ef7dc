package config

import (
	"errors"
	"fmt"
)

// Solver type names accepted in rig files.
const (
	SolverIdentity      = "identity"
	SolverTrigonometric = "trigonometric"
	SolverChain         = "chain"
	SolverLeg           = "leg"
	SolverSpine         = "spine"
	SolverArm           = "arm"
)

// Rig validation errors.
var (
	ErrUnknownSolverType = errors.New("unknown solver type")
	ErrMissingTarget     = errors.New("solver target is required")
	ErrMissingBone       = errors.New("missing bone")
	ErrTooFewBones       = errors.New("too few bones for solver")
	ErrBadWeights        = errors.New("weights do not match bone count")
)

// RigConfig describes the solver components attached to one skeleton.
// Solvers run in file order every frame.
type RigConfig struct {
	Solvers []SolverConfig `yaml:"solvers"`
}

// SolverConfig describes a single solver component. Which fields apply
// depends on Type; Validate reports structural misuse. All angles are in
// degrees and all directions are in the rig root's local space.
type SolverConfig struct {
	Type   string `yaml:"type"`
	Target string `yaml:"target"`

	// identity
	Bone string `yaml:"bone,omitempty"`
	// RotationOffset is an XYZ Euler offset applied after the target
	// rotation. Omit it to capture the offset from the rest pose.
	RotationOffset *[3]float32 `yaml:"rotation_offset,omitempty"`

	// trigonometric, chain, spine
	Bones []string `yaml:"bones,omitempty"`

	// Joint angle limits: the knee for leg solvers, the elbow for arm
	// solvers, the middle joint for trigonometric solvers, and the total
	// bend for spine solvers. A zero MaxAngle means the per-type default.
	MinAngle float32 `yaml:"min_angle,omitempty"`
	MaxAngle float32 `yaml:"max_angle,omitempty"`

	// BendDirection hints where the middle joint should point. Zero means
	// forward (0,0,1).
	BendDirection [3]float32 `yaml:"bend_direction,omitempty"`

	// spine
	Weights []float32 `yaml:"weights,omitempty"`

	// leg
	Thigh string `yaml:"thigh,omitempty"`
	Calf  string `yaml:"calf,omitempty"`
	Heel  string `yaml:"heel,omitempty"`
	Toe   string `yaml:"toe,omitempty"`
	// BendWeight blends the heel placement between the straight-leg and
	// bent-leg estimates.
	BendWeight float32 `yaml:"bend_weight,omitempty"`
	// MinHeelAngle keeps the foot from folding into the calf. Zero or
	// negative values capture the angle from the rest pose.
	MinHeelAngle float32 `yaml:"min_heel_angle,omitempty"`

	// arm
	Shoulder    string     `yaml:"shoulder,omitempty"`
	Arm         string     `yaml:"arm,omitempty"`
	Forearm     string     `yaml:"forearm,omitempty"`
	Hand        string     `yaml:"hand,omitempty"`
	SwingWeight float32    `yaml:"swing_weight,omitempty"`
	TwistWeight float32    `yaml:"twist_weight,omitempty"`
	UpDirection [3]float32 `yaml:"up_direction,omitempty"` // zero means up (0,1,0)
}

// ApplyDefaults fills the zero values that stand for per-type defaults.
func (s *SolverConfig) ApplyDefaults() {
	if s.MaxAngle == 0 {
		if s.Type == SolverSpine {
			s.MaxAngle = 90
		} else {
			s.MaxAngle = 180
		}
	}
	if s.BendDirection == ([3]float32{}) {
		s.BendDirection = [3]float32{0, 0, 1}
	}
	if s.UpDirection == ([3]float32{}) {
		s.UpDirection = [3]float32{0, 1, 0}
	}
	if s.Type == SolverLeg && s.MinHeelAngle <= 0 {
		s.MinHeelAngle = -1
	}
}

// Validate checks that the solver names everything its type requires.
func (s *SolverConfig) Validate() error {
	if s.Target == "" {
		return fmt.Errorf("%w (type %q)", ErrMissingTarget, s.Type)
	}

	switch s.Type {
	case SolverIdentity:
		if s.Bone == "" {
			return fmt.Errorf("%w: identity solver needs a bone", ErrMissingBone)
		}
	case SolverTrigonometric:
		if len(s.Bones) != 3 {
			return fmt.Errorf("%w: trigonometric solver needs exactly 3 bones, got %d", ErrTooFewBones, len(s.Bones))
		}
	case SolverChain:
		if len(s.Bones) < 2 {
			return fmt.Errorf("%w: chain solver needs at least 2 bones, got %d", ErrTooFewBones, len(s.Bones))
		}
	case SolverSpine:
		if len(s.Bones) < 3 {
			return fmt.Errorf("%w: spine solver needs at least 3 bones, got %d", ErrTooFewBones, len(s.Bones))
		}
		if len(s.Weights) != 0 && len(s.Weights) != len(s.Bones)-2 {
			return fmt.Errorf("%w: spine with %d bones needs %d weights, got %d",
				ErrBadWeights, len(s.Bones), len(s.Bones)-2, len(s.Weights))
		}
	case SolverLeg:
		for name, v := range map[string]string{
			"thigh": s.Thigh, "calf": s.Calf, "heel": s.Heel, "toe": s.Toe,
		} {
			if v == "" {
				return fmt.Errorf("%w: leg solver needs a %s bone", ErrMissingBone, name)
			}
		}
	case SolverArm:
		for name, v := range map[string]string{
			"shoulder": s.Shoulder, "arm": s.Arm, "forearm": s.Forearm, "hand": s.Hand,
		} {
			if v == "" {
				return fmt.Errorf("%w: arm solver needs a %s bone", ErrMissingBone, name)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSolverType, s.Type)
	}
	return nil
}

// Validate checks every solver in the rig.
func (r *RigConfig) Validate() error {
	for i := range r.Solvers {
		if err := r.Solvers[i].Validate(); err != nil {
			return fmt.Errorf("solver %d: %w", i, err)
		}
	}
	return nil
}
