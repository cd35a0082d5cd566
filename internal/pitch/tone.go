package pitch

import (
	"context"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
)

// Note is one step of a synthetic melody. A zero frequency is a rest.
type Note struct {
	Hz       float64
	Duration time.Duration
}

// DefaultMelody hums up and down a fifth with short breaths between phrases.
var DefaultMelody = []Note{
	{220, 600 * time.Millisecond},
	{247, 400 * time.Millisecond},
	{262, 400 * time.Millisecond},
	{294, 600 * time.Millisecond},
	{330, 800 * time.Millisecond},
	{0, 150 * time.Millisecond},
	{294, 400 * time.Millisecond},
	{262, 400 * time.Millisecond},
	{247, 400 * time.Millisecond},
	{220, 800 * time.Millisecond},
	{0, 150 * time.Millisecond},
}

// ToneSource synthesizes a melody and feeds it through the detector, which
// makes the whole audio path observable without a microphone.
type ToneSource struct {
	cfg    config.PitchConfig
	melody []Note
}

// NewToneSource creates a source looping DefaultMelody.
func NewToneSource(cfg config.PitchConfig) *ToneSource {
	return &ToneSource{cfg: cfg, melody: DefaultMelody}
}

// ID returns the registry id.
func (t *ToneSource) ID() string { return "tone" }

// Title returns the display name.
func (t *ToneSource) Title() string { return "Synthetic hum (demo)" }

// Melody renders one pass of the melody as a streamer.
func (t *ToneSource) Melody() beep.Streamer {
	rate := beep.SampleRate(t.cfg.SampleRate)
	parts := make([]beep.Streamer, 0, len(t.melody))
	for _, n := range t.melody {
		if n.Hz <= 0 {
			parts = append(parts, beep.Silence(rate.N(n.Duration)))
			continue
		}
		parts = append(parts, Sine(n.Hz, 0.5, n.Duration, rate))
	}
	return beep.Seq(parts...)
}

// Run loops the melody until ctx is canceled.
func (t *ToneSource) Run(ctx context.Context, emit func(core.PitchSample)) error {
	d := NewDetector(t.cfg)
	for {
		if err := stream(ctx, t.Melody(), d, emit); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}
