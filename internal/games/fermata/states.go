package fermata

import (
	"math"

	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/scene"
)

// state is one phase of a session. Hooks default to no-ops via baseState.
type state interface {
	name() string
	onEnter()
	onExit()
	tick(deltaMS int)
	onPitch(p core.PitchSample)
}

type baseState struct{}

func (baseState) onEnter()                 {}
func (baseState) onExit()                  {}
func (baseState) tick(int)                 {}
func (baseState) onPitch(core.PitchSample) {}

// State names reported in GameState and transition history.
const (
	StateCountdown   = "Countdown"
	StateCalibration = "Calibration"
	StatePlaying     = "Playing"
	StateGrace       = "Grace"
	StateDeath       = "Death"
)

// countdownState shows "Get Ready..." before calibration.
type countdownState struct {
	baseState
	s             *Session
	timeRemaining int
}

func (c *countdownState) name() string { return StateCountdown }

func (c *countdownState) onEnter() {
	c.timeRemaining = CountdownMS
	c.s.showBanner("Get Ready...")
}

func (c *countdownState) tick(deltaMS int) {
	c.timeRemaining -= deltaMS
	if c.timeRemaining <= 0 {
		c.s.setState(&calibrationState{s: c.s})
	}
}

func (c *countdownState) onExit() {
	c.s.hideBanner("Get Ready...")
}

// calibrationState centers the pitch window on the first sung note.
type calibrationState struct {
	baseState
	s *Session
}

func (c *calibrationState) name() string { return StateCalibration }

func (c *calibrationState) onEnter() {
	c.s.showBanner("Make a sound!")
	c.s.startingPitch.Update(core.Silence)
}

func (c *calibrationState) onPitch(p core.PitchSample) {
	if p.IsSilence() {
		return
	}
	c.s.topPitch = p.Hz() + CalibrationHalfWindowHz
	c.s.bottomPitch = p.Hz() - CalibrationHalfWindowHz
	c.s.startingPitch.Update(p)
	c.s.setState(newPlayingState(c.s))
}

func (c *calibrationState) onExit() {
	c.s.hideBanner("Make a sound!")
}

// playingState runs the simulation. It survives Grace and resumes with its
// generator and timers intact.
type playingState struct {
	baseState
	s         *Session
	generator *Generator

	silentMS int
	toRemove []*Obstacle
}

func newPlayingState(s *Session) *playingState {
	p := &playingState{
		s:         s,
		generator: NewGenerator(s.scene, s.rng, s.buildObstacle),
	}
	p.generator.OnGenerate.Connect(func(o *Obstacle) {
		s.obstacles = append(s.obstacles, o)
		s.logger.Debug("obstacle spawned", "kind", o.Kind, "y", o.Y(), "next_ms", p.generator.UntilNext())
	})
	return p
}

func (p *playingState) name() string { return StatePlaying }

func (p *playingState) tick(deltaMS int) {
	s := p.s
	p.generator.Update(deltaMS)
	s.score.Update(s.score.Get() + deltaMS)

	p.silentMS += deltaMS
	if p.silentMS >= SilenceDeathMS && !s.cfg.Immortal {
		s.setState(&deathState{s: s})
		return
	}

	playerBox := s.player.Box()
	for _, o := range s.obstacles {
		o.Update(deltaMS)
		if o.Gone() {
			p.toRemove = append(p.toRemove, o)
		}
		if !playerBox.Intersects(o.Box()) {
			continue
		}
		if o.Kind == Deadly {
			s.setState(&deathState{s: s})
			return
		}
		p.toRemove = append(p.toRemove, o)
		p.drain()
		s.setState(newGraceState(s, p))
		return
	}
	p.drain()
}

// drain detaches every obstacle marked for removal this tick.
func (p *playingState) drain() {
	for _, o := range p.toRemove {
		p.s.removeObstacle(o)
	}
	clear(p.toRemove)
	p.toRemove = p.toRemove[:0]
}

func (p *playingState) onPitch(sample core.PitchSample) {
	if sample.IsSilence() {
		return
	}
	p.silentMS = 0

	// Pitches arriving mid-move are dropped, not queued.
	s := p.s
	if s.player.Moving() {
		return
	}
	s.player.move = s.anim.Tween(&s.player.node.Y).
		To(s.targetY(sample.Hz())).
		In(PitchTweenMS)
}

// graceState pauses the run after a rest obstacle while the player spins.
type graceState struct {
	baseState
	s        *Session
	previous *playingState
	overlay  *scene.Node
}

func newGraceState(s *Session, previous *playingState) *graceState {
	overlay := scene.NewTextNode("Breathe!", 200, 50)
	overlay.Bold = true
	overlay.Color = core.ColorBrightWhite
	return &graceState{s: s, previous: previous, overlay: overlay}
}

func (g *graceState) name() string { return StateGrace }

func (g *graceState) onEnter() {
	s := g.s
	w, h := s.scene.Size()
	g.overlay.Alpha = 0
	s.scene.AddCenterAt(g.overlay, w/2, h/2)

	s.anim.Tween(&g.overlay.Alpha).
		To(1).
		In(GraceFadeMS).
		Ease(ease.InQuad).
		Then(func() {
			s.anim.Tween(&g.overlay.Alpha).To(0).In(GraceFadeMS).Ease(ease.OutQuad)
		})

	s.anim.Tween(&s.player.node.Rotation).
		From(0).
		To(2 * math.Pi).
		In(GraceRotationMS).
		Then(func() { s.setState(g.previous) })
}

func (g *graceState) onExit() {
	g.s.scene.Remove(g.overlay)
}

// deathState shows the end dialog. Only the dialog's buttons leave it.
type deathState struct {
	baseState
	s *Session
}

func (d *deathState) name() string { return StateDeath }

func (d *deathState) onEnter() {
	s := d.s
	if s.dialog == nil {
		s.dialog = newDeathDialog()
	}
	w, h := s.scene.Size()
	s.scene.AddCenterAt(s.dialog.node, w/2, h/2)
	s.logger.Info("run ended", "score", s.score.Get()/100, "calibration", s.startingPitch.Get(), "states", len(s.transitions))
}
