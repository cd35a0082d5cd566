package pitch

import (
	"math"

	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
)

// Detector estimates the fundamental frequency of mono frames using the YIN
// difference function with cumulative mean normalisation.
type Detector struct {
	sampleRate float64
	frameSize  int
	minLag     int
	maxLag     int
	threshold  float64
	silenceRMS float64

	diff []float64
}

// NewDetector creates a detector from the pitch settings.
func NewDetector(cfg config.PitchConfig) *Detector {
	rate := float64(cfg.SampleRate)
	d := &Detector{
		sampleRate: rate,
		frameSize:  cfg.FrameSize,
		minLag:     int(math.Floor(rate / cfg.MaxHz)),
		maxLag:     int(math.Ceil(rate / cfg.MinHz)),
		threshold:  cfg.Threshold,
		silenceRMS: cfg.SilenceRMS,
	}
	if d.minLag < 2 {
		d.minLag = 2
	}
	// The difference window needs at least maxLag samples after the lag.
	if d.maxLag > d.frameSize/2 {
		d.maxLag = d.frameSize / 2
	}
	d.diff = make([]float64, d.maxLag+2)
	return d
}

// FrameSize returns the number of samples Detect expects.
func (d *Detector) FrameSize() int {
	return d.frameSize
}

// SampleRate returns the analysis sample rate.
func (d *Detector) SampleRate() int {
	return int(d.sampleRate)
}

// Detect returns the pitch of frame, or silence when the frame is quiet or
// aperiodic.
func (d *Detector) Detect(frame []float64) core.PitchSample {
	if len(frame) < 2*d.maxLag || rms(frame) < d.silenceRMS {
		return core.Silence
	}

	window := len(frame) - d.maxLag - 1

	// Difference function d(tau) and its cumulative mean normalisation.
	d.diff[0] = 1
	running := 0.0
	for tau := 1; tau <= d.maxLag+1; tau++ {
		sum := 0.0
		for j := 0; j < window; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		running += sum
		if running == 0 {
			d.diff[tau] = 1
		} else {
			d.diff[tau] = sum * float64(tau) / running
		}
	}

	for tau := d.minLag; tau <= d.maxLag; tau++ {
		if d.diff[tau] >= d.threshold {
			continue
		}
		for tau+1 <= d.maxLag && d.diff[tau+1] < d.diff[tau] {
			tau++
		}
		return core.Pitch(d.sampleRate / d.interpolate(tau))
	}
	return core.Silence
}

// interpolate refines an integer lag with a parabola through its neighbours.
func (d *Detector) interpolate(tau int) float64 {
	if tau <= 1 || tau >= len(d.diff)-1 {
		return float64(tau)
	}
	s0, s1, s2 := d.diff[tau-1], d.diff[tau], d.diff[tau+1]
	denom := 2 * (s0 - 2*s1 + s2)
	if denom == 0 {
		return float64(tau)
	}
	return float64(tau) + (s0-s2)/denom
}

func rms(frame []float64) float64 {
	sum := 0.0
	for _, v := range frame {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(frame)))
}
