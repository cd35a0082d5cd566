package pitch

import (
	"context"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/fermata/internal/core"
)

// frameReader pulls fixed-size mono frames out of a beep streamer.
type frameReader struct {
	src    beep.Streamer
	stereo [][2]float64
	mono   []float64
}

func newFrameReader(src beep.Streamer, size int) *frameReader {
	return &frameReader{
		src:    src,
		stereo: make([][2]float64, size),
		mono:   make([]float64, size),
	}
}

// next fills the next frame, zero-padding a short final frame. It reports
// false once the streamer is exhausted.
func (r *frameReader) next() ([]float64, bool) {
	filled := 0
	for filled < len(r.stereo) {
		n, ok := r.src.Stream(r.stereo[filled:])
		filled += n
		if !ok {
			break
		}
	}
	if filled == 0 {
		return nil, false
	}
	for i := range r.mono {
		if i < filled {
			r.mono[i] = (r.stereo[i][0] + r.stereo[i][1]) / 2
		} else {
			r.mono[i] = 0
		}
	}
	return r.mono, true
}

// Analyze runs src through d as fast as possible and returns one sample per
// frame.
func Analyze(src beep.Streamer, d *Detector) []core.PitchSample {
	var out []core.PitchSample
	r := newFrameReader(src, d.FrameSize())
	for {
		frame, ok := r.next()
		if !ok {
			return out
		}
		out = append(out, d.Detect(frame))
	}
}

// stream runs src through d in real time, emitting one sample per frame
// duration, until the input ends or ctx is canceled.
func stream(ctx context.Context, src beep.Streamer, d *Detector, emit func(core.PitchSample)) error {
	rate := beep.SampleRate(d.SampleRate())
	ticker := time.NewTicker(rate.D(d.FrameSize()))
	defer ticker.Stop()

	r := newFrameReader(src, d.FrameSize())
	for {
		frame, ok := r.next()
		if !ok {
			return src.Err()
		}
		emit(d.Detect(frame))

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
