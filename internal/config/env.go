package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvSource   = "FERMATA_SOURCE"
	EnvWavPath  = "FERMATA_WAV"
	EnvDebug    = "FERMATA_DEBUG"
	EnvImmortal = "FERMATA_IMMORTAL"
)

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with any FERMATA_* variables that are set.
func ApplyEnv(cfg FermataConfig) (FermataConfig, error) {
	if v, ok := os.LookupEnv(EnvSource); ok && v != "" {
		cfg.Pitch.Source = v
	}
	if v, ok := os.LookupEnv(EnvWavPath); ok && v != "" {
		cfg.Pitch.WavPath = v
	}
	for name, dst := range map[string]*bool{EnvDebug: &cfg.DebugMode, EnvImmortal: &cfg.Immortal} {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, name, v)
		}
		*dst = b
	}
	return cfg, nil
}
