// Package tween animates float64 properties over time. An Animator is driven
// by the same tick as the game: tweens advance inside Update and their
// completion callbacks fire there, so all "async" control flow resolves at
// tick boundaries.
//
// Timing and easing come from gween. A Tween runs a normalised gween curve
// from 0 to 1 and applies it to the field in float64, so targets keep their
// precision.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates one property from a start value to a target.
// Configure it with the chained setters right after Animator.Tween returns.
type Tween struct {
	field    *float64
	from     float64
	hasFrom  bool
	to       float64
	duration int
	ease     ease.TweenFunc
	progress *gween.Tween
	then     []func()
	done     bool
	canceled bool
}

// From sets an explicit start value instead of the field's current one.
func (t *Tween) From(v float64) *Tween {
	t.from = v
	t.hasFrom = true
	return t
}

// To sets the target value.
func (t *Tween) To(v float64) *Tween {
	t.to = v
	return t
}

// In sets the duration in milliseconds. A zero duration completes on the
// first update.
func (t *Tween) In(ms int) *Tween {
	if ms < 0 {
		ms = 0
	}
	t.duration = ms
	return t
}

// Ease sets the easing curve, e.g. ease.InQuad.
func (t *Tween) Ease(e ease.TweenFunc) *Tween {
	if e != nil {
		t.ease = e
	}
	return t
}

// Then registers fn to run when the tween completes.
func (t *Tween) Then(fn func()) *Tween {
	t.then = append(t.then, fn)
	return t
}

// Cancel stops the tween where it is; completion callbacks do not run.
func (t *Tween) Cancel() {
	t.canceled = true
}

// Done reports whether the tween reached its target.
func (t *Tween) Done() bool {
	return t.done
}

// Target returns the value the tween animates towards.
func (t *Tween) Target() float64 {
	return t.to
}

// Duration returns the tween length in milliseconds.
func (t *Tween) Duration() int {
	return t.duration
}

// advance moves the tween forward and reports whether it finished.
func (t *Tween) advance(deltaMS int) bool {
	if t.progress == nil {
		if !t.hasFrom {
			t.from = *t.field
		}
		t.progress = gween.New(0, 1, float32(t.duration), t.ease)
	}
	p, finished := t.progress.Update(float32(deltaMS))
	if finished {
		*t.field = t.to
		t.done = true
		return true
	}
	*t.field = t.from + (t.to-t.from)*float64(p)
	return false
}
