// Package config handles application, rig, and skeleton configuration.
package config

// Config holds all application settings.
type Config struct {
	Solve   SolveConfig   `yaml:"solve"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`
}

// SolveConfig holds the solver settings shared by every component.
type SolveConfig struct {
	// ContinuousRotation derives bone rotations from the previous frame
	// instead of the rest pose.
	ContinuousRotation bool `yaml:"continuous_rotation"`
	// Tolerance is the world-space distance at which iterative solvers
	// consider the end effector to have reached the target.
	Tolerance float32 `yaml:"tolerance"`
	// MaxIterations caps iterative solver passes per frame.
	MaxIterations int `yaml:"max_iterations"`
}

// DebugConfig holds debug geometry settings.
type DebugConfig struct {
	DrawGeometry bool `yaml:"draw_geometry"`
	DepthTest    bool `yaml:"depth_test"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Solve: SolveConfig{
			ContinuousRotation: false,
			Tolerance:          0.001,
			MaxIterations:      10,
		},
		Debug: DebugConfig{
			DrawGeometry: false,
			DepthTest:    false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
