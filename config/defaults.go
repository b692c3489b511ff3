package config

import (
	_ "embed"
)

//go:embed defaults/roomscroller.yaml
var defaultYAML []byte

// Default returns the built-in configuration, used when the embedded YAML
// cannot be parsed and to fill fields a user file leaves out.
func Default() Config {
	return Config{
		Window: WindowConfig{Title: "roomscroller", Scale: 3},
		Timing: TimingConfig{TargetFPS: 60, MaxDelta: 0.1},
		World:  WorldConfig{Path: "worlds/world1.ldtk", ArenaMB: 64},
		Camera: CameraConfig{ViewWidth: 256, ViewHeight: 240, Decay: 7.5},
		Atlas:  AtlasConfig{Width: 512, Height: 512},
		Storage: StorageConfig{
			Path:    "~/.roomscroller/sessions.db",
			Enabled: true,
		},
		Log: LogConfig{Level: "info", Timestamps: true},
	}
}
