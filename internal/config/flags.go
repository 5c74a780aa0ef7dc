package config

import (
	"flag"
	"fmt"
)

// Flags carries the command-line overrides shared by every subcommand.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
}

// Register installs the shared flags on fs. Call before fs.Parse.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging and debug geometry")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
}

// Load resolves configuration with priority: defaults < file < flags.
func (f *Flags) Load() (*Config, error) {
	cfg := Default()

	path := f.ConfigPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	f.apply(cfg)
	return cfg, nil
}

// apply overrides cfg with the flag values.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Debug.DrawGeometry = true
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
}
