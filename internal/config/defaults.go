package config

import (
	_ "embed"
)

//go:embed defaults/fermata.yaml
var defaultFermataYAML []byte

// DefaultFermataConfig returns the hardcoded default configuration.
func DefaultFermataConfig() FermataConfig {
	return FermataConfig{
		View: ViewConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			X: 75,
		},
		Obstacles: ObstacleConfig{
			ScrollSpeed:   0.2,
			SpawnStartBar: true,
		},
		Pitch: PitchConfig{
			Source:     "keys",
			SampleRate: 44100,
			FrameSize:  2048,
			MinHz:      80,
			MaxHz:      1000,
			Threshold:  0.15,
			SilenceRMS: 0.01,
			QueueSize:  256,
		},
		Keys: KeysConfig{
			BaseHz: 200,
			StepHz: 50,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFermataYAML
}
