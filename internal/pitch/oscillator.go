package pitch

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// sine generates a sine wave for a fixed duration.
type sine struct {
	freq      float64
	amplitude float64
	phase     float64
	remaining int
	rate      beep.SampleRate
}

// Sine returns a streamer producing freq Hz at the given amplitude for d.
func Sine(freq, amplitude float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sine{
		freq:      freq,
		amplitude: amplitude,
		remaining: rate.N(d),
		rate:      rate,
	}
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	for i := range samples {
		if s.remaining <= 0 {
			return i, true
		}
		v := s.amplitude * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.remaining--
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }
