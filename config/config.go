// Package config holds the runtime settings of the game: window, frame
// timing, which world to load, camera tuning and where sessions are stored.
// Entity tuning lives in the prefabs package instead.
package config

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Timing  TimingConfig  `yaml:"timing"`
	World   WorldConfig   `yaml:"world"`
	Camera  CameraConfig  `yaml:"camera"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	Debug   DebugConfig   `yaml:"debug"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Scale      int    `yaml:"scale"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// TimingConfig controls frame pacing. MaxDelta clamps the measured frame
// time so a stall does not tunnel entities through walls.
type TimingConfig struct {
	TargetFPS int     `yaml:"target_fps"`
	MaxDelta  float64 `yaml:"max_delta"`
}

// WorldConfig picks the LDtk world. Watch enables hot reload of the world
// file and prefabs.
type WorldConfig struct {
	Path    string `yaml:"path"`
	Watch   bool   `yaml:"watch"`
	ArenaMB int    `yaml:"arena_mb"`
}

type CameraConfig struct {
	ViewWidth  int     `yaml:"view_width"`
	ViewHeight int     `yaml:"view_height"`
	Decay      float64 `yaml:"decay"`
}

type AtlasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type DebugConfig struct {
	Overlay   bool `yaml:"overlay"`
	Collision bool `yaml:"collision"`
}

type StorageConfig struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Timestamps bool   `yaml:"timestamps"`
}

// FrameTime is the target duration of one frame in seconds.
func (c TimingConfig) FrameTime() float64 {
	if c.TargetFPS <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TargetFPS)
}
