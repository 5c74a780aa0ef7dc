package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	dir := ConfigDir()

	// Create directory if needed
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, "config.yaml")
	return writeYAML(path, c)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	return writeYAML(path, c)
}

// SaveTo writes the rig description to a specific path.
func (r *RigConfig) SaveTo(path string) error {
	return writeYAML(path, r)
}

// SaveTo writes the skeleton description to a specific path.
func (s *SkeletonConfig) SaveTo(path string) error {
	return writeYAML(path, s)
}

// writeYAML marshals v and writes it, creating the parent directory if
// needed.
func writeYAML(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
