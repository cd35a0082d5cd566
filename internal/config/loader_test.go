package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultFermataConfig()
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFermataConfig()) {
		t.Errorf("embedded defaults drifted from DefaultFermataConfig:\n%+v\n%+v", cfg, DefaultFermataConfig())
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "debug_mode: true\nview:\n  width: 1024\n  height: 768\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFermata(path)
	if err != nil {
		t.Fatalf("LoadFermata() failed: %v", err)
	}

	if !cfg.DebugMode {
		t.Error("debug_mode should be true")
	}
	if cfg.View.Width != 1024 || cfg.View.Height != 768 {
		t.Errorf("view = %+v, expected 1024x768", cfg.View)
	}
	// Untouched values keep defaults
	if cfg.Player.X != 75 {
		t.Errorf("player.x = %v, expected default 75", cfg.Player.X)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := "immortal = true\n\n[pitch]\nsource = \"tone\"\nmin_hz = 100.0\nmax_hz = 900.0\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFermata(path)
	if err != nil {
		t.Fatalf("LoadFermata() failed: %v", err)
	}

	if !cfg.Immortal {
		t.Error("immortal should be true")
	}
	if cfg.Pitch.Source != "tone" {
		t.Errorf("pitch.source = %q, expected tone", cfg.Pitch.Source)
	}
	if cfg.Pitch.SampleRate != 44100 {
		t.Errorf("pitch.sample_rate = %d, expected default 44100", cfg.Pitch.SampleRate)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFermata(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("view: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFermata(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("view:\n  width: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFermata(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FermataConfig)
		ok     bool
	}{
		{"defaults", func(*FermataConfig) {}, true},
		{"zero height", func(c *FermataConfig) { c.View.Height = 0 }, false},
		{"negative speed", func(c *FermataConfig) { c.Obstacles.ScrollSpeed = -1 }, false},
		{"inverted range", func(c *FermataConfig) { c.Pitch.MinHz, c.Pitch.MaxHz = 500, 100 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFermataConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("absolute path should be unchanged, got %q (%v)", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.fermata/scores.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".fermata", "scores.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
}
