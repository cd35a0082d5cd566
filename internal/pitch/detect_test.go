package pitch

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fermata/internal/config"
)

func testPitchConfig() config.PitchConfig {
	return config.DefaultFermataConfig().Pitch
}

func sineFrame(freq, amp float64, n, rate int) []float64 {
	frame := make([]float64, n)
	for i := range frame {
		frame[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return frame
}

func TestDetectSine(t *testing.T) {
	cfg := testPitchConfig()
	d := NewDetector(cfg)

	tests := []float64{110, 220, 330, 440, 660}
	for _, freq := range tests {
		s := d.Detect(sineFrame(freq, 0.5, cfg.FrameSize, cfg.SampleRate))
		require.False(t, s.IsSilence(), "freq %g", freq)
		assert.InDelta(t, freq, s.Hz(), 3, "freq %g", freq)
	}
}

func TestDetectSilence(t *testing.T) {
	cfg := testPitchConfig()
	d := NewDetector(cfg)

	assert.True(t, d.Detect(make([]float64, cfg.FrameSize)).IsSilence(), "zero frame")
	assert.True(t, d.Detect(sineFrame(440, 0.001, cfg.FrameSize, cfg.SampleRate)).IsSilence(), "quiet frame")
	assert.True(t, d.Detect(nil).IsSilence(), "empty frame")
}

func TestDetectLagBounds(t *testing.T) {
	cfg := testPitchConfig()
	cfg.MinHz = 10 // would need a lag longer than half the frame
	d := NewDetector(cfg)

	assert.LessOrEqual(t, d.maxLag, cfg.FrameSize/2)
	assert.GreaterOrEqual(t, d.minLag, 2)
}

func TestAnalyzeStreamer(t *testing.T) {
	cfg := testPitchConfig()
	rate := beep.SampleRate(cfg.SampleRate)
	d := NewDetector(cfg)

	src := beep.Seq(
		Sine(220, 0.5, 200*time.Millisecond, rate),
		beep.Silence(rate.N(200*time.Millisecond)),
	)
	samples := Analyze(src, d)
	require.NotEmpty(t, samples)

	assert.InDelta(t, 220, samples[0].Hz(), 3)
	assert.True(t, samples[len(samples)-1].IsSilence())

	// 400ms at 44.1kHz in 2048-sample frames, last one padded.
	want := (rate.N(400*time.Millisecond) + cfg.FrameSize - 1) / cfg.FrameSize
	assert.Len(t, samples, want)
}
