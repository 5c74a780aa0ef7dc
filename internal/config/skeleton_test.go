package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSkeletonConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SkeletonConfig
		wantErr error
	}{
		{
			name: "valid hierarchy",
			cfg: SkeletonConfig{Bones: []BoneConfig{
				{Name: "pelvis"},
				{Name: "spine", Parent: "pelvis"},
				{Name: "chest", Parent: "spine"},
			}},
		},
		{
			name: "empty bone name",
			cfg: SkeletonConfig{Bones: []BoneConfig{
				{Name: ""},
			}},
			wantErr: ErrMissingBone,
		},
		{
			name: "duplicate bone",
			cfg: SkeletonConfig{Bones: []BoneConfig{
				{Name: "spine"},
				{Name: "spine"},
			}},
			wantErr: ErrDuplicateBone,
		},
		{
			name: "unknown parent",
			cfg: SkeletonConfig{Bones: []BoneConfig{
				{Name: "spine", Parent: "pelvis"},
			}},
			wantErr: ErrUnknownParent,
		},
		{
			name: "parent cycle",
			cfg: SkeletonConfig{Bones: []BoneConfig{
				{Name: "a", Parent: "b"},
				{Name: "b", Parent: "a"},
			}},
			wantErr: ErrBoneCycle,
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

func TestLoadSkeleton(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "skeleton.yaml")

	yamlContent := `
name: biped
bones:
  - name: pelvis
    position: [0, 1, 0]
  - name: spine
    parent: pelvis
    position: [0, 0.5, 0]
    rotation: [0, 90, 0]
`

	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test skeleton: %v", err)
	}

	skel, err := LoadSkeleton(path)
	if err != nil {
		t.Fatalf("LoadSkeleton() error = %v", err)
	}

	if skel.Name != "biped" {
		t.Errorf("name = %q, want biped", skel.Name)
	}
	if len(skel.Bones) != 2 {
		t.Fatalf("expected 2 bones, got %d", len(skel.Bones))
	}
	if skel.Bones[0].Position != [3]float32{0, 1, 0} {
		t.Errorf("pelvis position = %v, want [0 1 0]", skel.Bones[0].Position)
	}
	spine := skel.Bones[1]
	if spine.Parent != "pelvis" {
		t.Errorf("spine parent = %q, want pelvis", spine.Parent)
	}
	if spine.Rotation != [3]float32{0, 90, 0} {
		t.Errorf("spine rotation = %v, want [0 90 0]", spine.Rotation)
	}
}

func TestLoadSkeletonInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "skeleton.yaml")

	yamlContent := `
bones:
  - name: spine
    parent: nowhere
    position: [0, 0, 0]
`

	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test skeleton: %v", err)
	}

	_, err := LoadSkeleton(path)
	if !errors.Is(err, ErrUnknownParent) {
		t.Errorf("LoadSkeleton() error = %v, want %v", err, ErrUnknownParent)
	}
}
