package core

import (
	"fmt"
	"math"
)

// PitchSample is one observation from a pitch source: either a fundamental
// frequency in Hz or silence.
type PitchSample struct {
	hz float64
}

// Silence is the sample emitted when no pitch was detected.
var Silence = PitchSample{}

// Pitch returns a sample carrying the given frequency. Non-finite and
// non-positive frequencies produce Silence.
func Pitch(hz float64) PitchSample {
	if math.IsNaN(hz) || math.IsInf(hz, 0) || hz <= 0 {
		return Silence
	}
	return PitchSample{hz: hz}
}

// IsSilence reports whether the sample carries no frequency.
func (p PitchSample) IsSilence() bool {
	return p.hz <= 0
}

// Hz returns the frequency, or 0 for silence.
func (p PitchSample) Hz() float64 {
	return p.hz
}

// String formats the sample for logs.
func (p PitchSample) String() string {
	if p.IsSilence() {
		return "silence"
	}
	return fmt.Sprintf("%.2fHz", p.hz)
}
