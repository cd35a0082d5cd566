package pitch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
)

// ErrNoWavPath is returned when the WAV source has no file configured.
var ErrNoWavPath = errors.New("pitch: no wav path configured")

// WavSource plays a recorded voice through the detector in real time.
type WavSource struct {
	path string
	cfg  config.PitchConfig
}

// NewWavSource creates a source reading the configured WAV file.
func NewWavSource(cfg config.PitchConfig) *WavSource {
	return &WavSource{path: cfg.WavPath, cfg: cfg}
}

// ID returns the registry id.
func (w *WavSource) ID() string { return "wav" }

// Title returns the display name.
func (w *WavSource) Title() string { return "Recorded voice (WAV file)" }

// Open decodes the file and resamples it to the analysis rate.
func (w *WavSource) Open() (beep.StreamSeekCloser, beep.Streamer, error) {
	if w.path == "" {
		return nil, nil, ErrNoWavPath
	}
	f, err := os.Open(w.path)
	if err != nil {
		return nil, nil, fmt.Errorf("pitch: cannot open %s: %w", w.path, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("pitch: cannot decode %s: %w", w.path, err)
	}

	var s beep.Streamer = streamer
	target := beep.SampleRate(w.cfg.SampleRate)
	if format.SampleRate != target {
		s = beep.Resample(4, format.SampleRate, target, streamer)
	}
	return streamer, s, nil
}

// Run streams the file until it ends or ctx is canceled.
func (w *WavSource) Run(ctx context.Context, emit func(core.PitchSample)) error {
	closer, s, err := w.Open()
	if err != nil {
		return err
	}
	defer closer.Close()

	return stream(ctx, s, NewDetector(w.cfg), emit)
}
