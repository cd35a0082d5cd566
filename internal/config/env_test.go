package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSource, "tone")
	t.Setenv(EnvWavPath, "/tmp/take.wav")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvImmortal, "1")

	cfg, err := ApplyEnv(DefaultFermataConfig())
	if err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Pitch.Source != "tone" {
		t.Errorf("source = %q, expected tone", cfg.Pitch.Source)
	}
	if cfg.Pitch.WavPath != "/tmp/take.wav" {
		t.Errorf("wav path = %q", cfg.Pitch.WavPath)
	}
	if !cfg.DebugMode || !cfg.Immortal {
		t.Errorf("debug=%v immortal=%v, expected both true", cfg.DebugMode, cfg.Immortal)
	}
}

func TestApplyEnvUnsetKeepsValues(t *testing.T) {
	t.Setenv(EnvSource, "")
	t.Setenv(EnvDebug, "")

	in := DefaultFermataConfig()
	in.Pitch.Source = "wav"
	in.DebugMode = true

	cfg, err := ApplyEnv(in)
	if err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Pitch.Source != "wav" || !cfg.DebugMode {
		t.Errorf("empty variables should not override: %+v", cfg)
	}
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	t.Setenv(EnvImmortal, "forever")

	_, err := ApplyEnv(DefaultFermataConfig())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("FERMATA_SOURCE=keys\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSource, "")
	os.Unsetenv(EnvSource)

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv(EnvSource); got != "keys" {
		t.Errorf("%s = %q, expected keys", EnvSource, got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
