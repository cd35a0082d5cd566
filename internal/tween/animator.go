package tween

import "github.com/tanema/gween/ease"

// Animator owns running tweens and advances them on Update.
type Animator struct {
	active   []*Tween
	deferred []*Tween
	updating bool
}

// NewAnimator creates an idle animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Tween starts animating field. The start value is read when the tween first
// advances unless From is set. Tweens created while Update is running begin
// advancing on the following Update.
func (a *Animator) Tween(field *float64) *Tween {
	t := &Tween{field: field, ease: ease.Linear}
	if a.updating {
		a.deferred = append(a.deferred, t)
	} else {
		a.active = append(a.active, t)
	}
	return t
}

// Update advances every active tween by deltaMS and runs completion
// callbacks in the order the tweens were created.
func (a *Animator) Update(deltaMS int) {
	if deltaMS < 0 {
		deltaMS = 0
	}
	a.updating = true

	var finished []*Tween
	kept := a.active[:0]
	for _, t := range a.active {
		if t.canceled {
			continue
		}
		if t.advance(deltaMS) {
			finished = append(finished, t)
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(a.active); i++ {
		a.active[i] = nil
	}
	a.active = kept

	for _, t := range finished {
		for _, fn := range t.then {
			fn()
		}
	}

	a.updating = false
	a.active = append(a.active, a.deferred...)
	a.deferred = a.deferred[:0]
}

// Running returns the number of tweens that have not finished.
func (a *Animator) Running() int {
	n := len(a.deferred)
	for _, t := range a.active {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Clear cancels every tween.
func (a *Animator) Clear() {
	for _, t := range a.active {
		t.Cancel()
	}
	for _, t := range a.deferred {
		t.Cancel()
	}
	a.active = nil
	a.deferred = nil
}
