package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-local config file.
const LocalPath = "configs/roomscroller.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.roomscroller/roomscroller.yaml -> ./configs/roomscroller.yaml -> embedded default.
// Files are decoded over the defaults, so they only need the keys they change.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("roomscroller.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalPath); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Timing.TargetFPS <= 0:
		return fmt.Errorf("timing.target_fps must be positive, got %d", c.Timing.TargetFPS)
	case c.Timing.MaxDelta < 0:
		return fmt.Errorf("timing.max_delta must not be negative")
	case c.Camera.ViewWidth <= 0 || c.Camera.ViewHeight <= 0:
		return fmt.Errorf("camera view must be positive, got %dx%d", c.Camera.ViewWidth, c.Camera.ViewHeight)
	case c.Camera.Decay < 0:
		return fmt.Errorf("camera.decay must not be negative")
	case c.Atlas.Width <= 0 || c.Atlas.Height <= 0:
		return fmt.Errorf("atlas size must be positive")
	case c.World.Path == "":
		return fmt.Errorf("world.path is required")
	}
	return nil
}

// StoragePath expands a leading ~ in Storage.Path.
func (c Config) StoragePath() (string, error) {
	p := c.Storage.Path
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".roomscroller", filename)
}
