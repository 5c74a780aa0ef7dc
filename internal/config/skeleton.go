package config

import (
	"errors"
	"fmt"
)

// Skeleton validation errors.
var (
	ErrDuplicateBone = errors.New("duplicate bone name")
	ErrUnknownParent = errors.New("unknown parent bone")
	ErrBoneCycle     = errors.New("bone parent cycle")
)

// SkeletonConfig describes a bone hierarchy in its rest pose.
type SkeletonConfig struct {
	Name  string       `yaml:"name,omitempty"`
	Bones []BoneConfig `yaml:"bones"`
}

// BoneConfig places one bone relative to its parent. Rotation is XYZ Euler
// angles in degrees. An empty parent attaches the bone to the skeleton root.
type BoneConfig struct {
	Name     string     `yaml:"name"`
	Parent   string     `yaml:"parent,omitempty"`
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation,omitempty"`
}

// Validate checks bone names, parent references, and parent cycles.
func (s *SkeletonConfig) Validate() error {
	parents := make(map[string]string, len(s.Bones))
	for i := range s.Bones {
		b := &s.Bones[i]
		if b.Name == "" {
			return fmt.Errorf("bone %d: %w: empty name", i, ErrMissingBone)
		}
		if _, seen := parents[b.Name]; seen {
			return fmt.Errorf("%w: %q", ErrDuplicateBone, b.Name)
		}
		parents[b.Name] = b.Parent
	}

	for i := range s.Bones {
		b := &s.Bones[i]
		if b.Parent == "" {
			continue
		}
		if _, ok := parents[b.Parent]; !ok {
			return fmt.Errorf("bone %q: %w: %q", b.Name, ErrUnknownParent, b.Parent)
		}
		// Walk the parent chain; revisiting after len(bones) hops means
		// the chain loops.
		cur := b.Parent
		for steps := 0; cur != ""; steps++ {
			if steps > len(s.Bones) {
				return fmt.Errorf("bone %q: %w", b.Name, ErrBoneCycle)
			}
			cur = parents[cur]
		}
	}
	return nil
}
