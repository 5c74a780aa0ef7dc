package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSolverConfigApplyDefaults(t *testing.T) {
	s := SolverConfig{Type: SolverTrigonometric}
	s.ApplyDefaults()

	if s.MaxAngle != 180 {
		t.Errorf("expected max_angle 180, got %f", s.MaxAngle)
	}
	if s.MinAngle != 0 {
		t.Errorf("expected min_angle 0, got %f", s.MinAngle)
	}
	if s.BendDirection != [3]float32{0, 0, 1} {
		t.Errorf("expected forward bend direction, got %v", s.BendDirection)
	}

	spine := SolverConfig{Type: SolverSpine}
	spine.ApplyDefaults()
	if spine.MaxAngle != 90 {
		t.Errorf("expected spine max_angle 90, got %f", spine.MaxAngle)
	}

	leg := SolverConfig{Type: SolverLeg}
	leg.ApplyDefaults()
	if leg.MinHeelAngle != -1 {
		t.Errorf("expected unset min_heel_angle to become -1, got %f", leg.MinHeelAngle)
	}

	arm := SolverConfig{Type: SolverArm}
	arm.ApplyDefaults()
	if arm.UpDirection != [3]float32{0, 1, 0} {
		t.Errorf("expected up direction (0,1,0), got %v", arm.UpDirection)
	}

	// Explicit values survive.
	explicit := SolverConfig{Type: SolverLeg, MaxAngle: 120, MinHeelAngle: 45}
	explicit.ApplyDefaults()
	if explicit.MaxAngle != 120 {
		t.Errorf("expected explicit max_angle 120, got %f", explicit.MaxAngle)
	}
	if explicit.MinHeelAngle != 45 {
		t.Errorf("expected explicit min_heel_angle 45, got %f", explicit.MinHeelAngle)
	}
}

func TestSolverConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SolverConfig
		wantErr error
	}{
		{
			name:    "unknown type",
			cfg:     SolverConfig{Type: "telekinesis", Target: "t"},
			wantErr: ErrUnknownSolverType,
		},
		{
			name:    "missing target",
			cfg:     SolverConfig{Type: SolverIdentity, Bone: "head"},
			wantErr: ErrMissingTarget,
		},
		{
			name:    "identity without bone",
			cfg:     SolverConfig{Type: SolverIdentity, Target: "t"},
			wantErr: ErrMissingBone,
		},
		{
			name:    "trigonometric with two bones",
			cfg:     SolverConfig{Type: SolverTrigonometric, Target: "t", Bones: []string{"a", "b"}},
			wantErr: ErrTooFewBones,
		},
		{
			name:    "chain with one bone",
			cfg:     SolverConfig{Type: SolverChain, Target: "t", Bones: []string{"a"}},
			wantErr: ErrTooFewBones,
		},
		{
			name:    "spine with two bones",
			cfg:     SolverConfig{Type: SolverSpine, Target: "t", Bones: []string{"a", "b"}},
			wantErr: ErrTooFewBones,
		},
		{
			name: "spine with wrong weight count",
			cfg: SolverConfig{
				Type: SolverSpine, Target: "t",
				Bones:   []string{"a", "b", "c", "d"},
				Weights: []float32{1},
			},
			wantErr: ErrBadWeights,
		},
		{
			name:    "leg without heel",
			cfg:     SolverConfig{Type: SolverLeg, Target: "t", Thigh: "a", Calf: "b", Toe: "d"},
			wantErr: ErrMissingBone,
		},
		{
			name:    "arm without hand",
			cfg:     SolverConfig{Type: SolverArm, Target: "t", Shoulder: "a", Arm: "b", Forearm: "c"},
			wantErr: ErrMissingBone,
		},
		{
			name: "valid leg",
			cfg:  SolverConfig{Type: SolverLeg, Target: "t", Thigh: "a", Calf: "b", Heel: "c", Toe: "d"},
		},
		{
			name: "valid spine",
			cfg: SolverConfig{
				Type: SolverSpine, Target: "t",
				Bones:   []string{"a", "b", "c", "d"},
				Weights: []float32{1, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRig(t *testing.T) {
	tmpDir := t.TempDir()
	rigPath := filepath.Join(tmpDir, "rig.yaml")

	yamlContent := `
solvers:
  - type: leg
    target: left_foot_target
    thigh: left_thigh
    calf: left_calf
    heel: left_heel
    toe: left_toe
    bend_weight: 0.5
  - type: chain
    target: tail_target
    bones: [tail1, tail2, tail3]
  - type: arm
    target: right_hand_target
    shoulder: right_shoulder
    arm: right_arm
    forearm: right_forearm
    hand: right_hand
    swing_weight: 0.8
    twist_weight: 0.3
    max_angle: 150
`

	if err := os.WriteFile(rigPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test rig: %v", err)
	}

	rig, err := LoadRig(rigPath)
	if err != nil {
		t.Fatalf("LoadRig() error = %v", err)
	}

	if len(rig.Solvers) != 3 {
		t.Fatalf("expected 3 solvers, got %d", len(rig.Solvers))
	}

	leg := rig.Solvers[0]
	if leg.Type != SolverLeg {
		t.Errorf("solver 0 type = %q, want leg", leg.Type)
	}
	if leg.BendWeight != 0.5 {
		t.Errorf("leg bend_weight = %f, want 0.5", leg.BendWeight)
	}
	// Defaults must have been applied.
	if leg.MaxAngle != 180 {
		t.Errorf("leg max_angle = %f, want default 180", leg.MaxAngle)
	}
	if leg.MinHeelAngle != -1 {
		t.Errorf("leg min_heel_angle = %f, want sentinel -1", leg.MinHeelAngle)
	}
	if leg.BendDirection != [3]float32{0, 0, 1} {
		t.Errorf("leg bend_direction = %v, want forward", leg.BendDirection)
	}

	arm := rig.Solvers[2]
	if arm.MaxAngle != 150 {
		t.Errorf("arm max_angle = %f, want 150", arm.MaxAngle)
	}
	if arm.UpDirection != [3]float32{0, 1, 0} {
		t.Errorf("arm up_direction = %v, want up", arm.UpDirection)
	}
}

func TestLoadRigInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	rigPath := filepath.Join(tmpDir, "rig.yaml")

	yamlContent := `
solvers:
  - type: trigonometric
    target: t
    bones: [only_one]
`

	if err := os.WriteFile(rigPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test rig: %v", err)
	}

	_, err := LoadRig(rigPath)
	if !errors.Is(err, ErrTooFewBones) {
		t.Errorf("LoadRig() error = %v, want %v", err, ErrTooFewBones)
	}
}
