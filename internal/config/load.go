package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "IKRig")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "IKRig")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ikrig")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "ikrig")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// ParseRig parses a rig description from YAML bytes, applies per-solver
// defaults, and validates it.
func ParseRig(data []byte) (*RigConfig, error) {
	var rig RigConfig
	if err := yaml.Unmarshal(data, &rig); err != nil {
		return nil, fmt.Errorf("parsing rig: %w", err)
	}

	for i := range rig.Solvers {
		rig.Solvers[i].ApplyDefaults()
	}
	if err := rig.Validate(); err != nil {
		return nil, err
	}
	return &rig, nil
}

// LoadRig reads a rig description, applies per-solver defaults, and
// validates it.
func LoadRig(path string) (*RigConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rig %s: %w", path, err)
	}

	rig, err := ParseRig(data)
	if err != nil {
		return nil, fmt.Errorf("rig %s: %w", path, err)
	}
	return rig, nil
}

// ParseSkeleton parses and validates a skeleton description from YAML bytes.
func ParseSkeleton(data []byte) (*SkeletonConfig, error) {
	var skel SkeletonConfig
	if err := yaml.Unmarshal(data, &skel); err != nil {
		return nil, fmt.Errorf("parsing skeleton: %w", err)
	}

	if err := skel.Validate(); err != nil {
		return nil, err
	}
	return &skel, nil
}

// LoadSkeleton reads and validates a skeleton description.
func LoadSkeleton(path string) (*SkeletonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skeleton %s: %w", path, err)
	}

	skel, err := ParseSkeleton(data)
	if err != nil {
		return nil, fmt.Errorf("skeleton %s: %w", path, err)
	}
	return skel, nil
}
