// Package config provides YAML/TOML session configuration with embedded
// defaults.
package config

import (
	"errors"
	"fmt"
)

// FermataConfig contains all configuration for a Fermata session.
type FermataConfig struct {
	View      ViewConfig     `yaml:"view" toml:"view"`
	Player    PlayerConfig   `yaml:"player" toml:"player"`
	Obstacles ObstacleConfig `yaml:"obstacles" toml:"obstacles"`
	Pitch     PitchConfig    `yaml:"pitch" toml:"pitch"`
	Keys      KeysConfig     `yaml:"keys" toml:"keys"`

	// Assets is an optional sprite catalog path; empty uses the embedded one.
	Assets string `yaml:"assets" toml:"assets"`

	// DebugMode shows the pitch readouts and reports contract violations.
	DebugMode bool `yaml:"debug_mode" toml:"debug_mode"`

	// Immortal suppresses the silence-timeout death.
	Immortal bool `yaml:"immortal" toml:"immortal"`
}

// ViewConfig is the logical view size in units.
type ViewConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PlayerConfig places the player.
type PlayerConfig struct {
	X float64 `yaml:"x" toml:"x"`
}

// ObstacleConfig defines obstacle movement.
type ObstacleConfig struct {
	ScrollSpeed   float64 `yaml:"scroll_speed" toml:"scroll_speed"` // units per millisecond
	SpawnStartBar bool    `yaml:"start_bar" toml:"start_bar"`
}

// PitchConfig selects and tunes the pitch source.
type PitchConfig struct {
	Source     string  `yaml:"source" toml:"source"`
	WavPath    string  `yaml:"wav_path" toml:"wav_path"`
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
	FrameSize  int     `yaml:"frame_size" toml:"frame_size"`
	MinHz      float64 `yaml:"min_hz" toml:"min_hz"`
	MaxHz      float64 `yaml:"max_hz" toml:"max_hz"`
	Threshold  float64 `yaml:"threshold" toml:"threshold"`
	SilenceRMS float64 `yaml:"silence_rms" toml:"silence_rms"`
	QueueSize  int     `yaml:"queue_size" toml:"queue_size"`
}

// KeysConfig maps digit keys to pitches for the keyboard voice.
type KeysConfig struct {
	BaseHz float64 `yaml:"base_hz" toml:"base_hz"` // pitch of key 1
	StepHz float64 `yaml:"step_hz" toml:"step_hz"` // difference between neighbouring keys
}

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks the values the session cannot run without.
func (c FermataConfig) Validate() error {
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return fmt.Errorf("%w: view size %gx%g", ErrInvalidConfig, c.View.Width, c.View.Height)
	}
	if c.Obstacles.ScrollSpeed < 0 {
		return fmt.Errorf("%w: negative scroll speed %g", ErrInvalidConfig, c.Obstacles.ScrollSpeed)
	}
	if c.Pitch.MinHz <= 0 || c.Pitch.MaxHz <= c.Pitch.MinHz {
		return fmt.Errorf("%w: pitch range %g..%g Hz", ErrInvalidConfig, c.Pitch.MinHz, c.Pitch.MaxHz)
	}
	return nil
}
