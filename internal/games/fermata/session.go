// Package fermata implements the pitch-controlled side-scroller session.
// The singer's pitch moves the avatar up and down through a field of
// obstacles; silence or a deadly obstacle ends the run and a rest obstacle
// forces a short breath.
package fermata

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fermata/internal/assets"
	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/scene"
	"github.com/vovakirdan/fermata/internal/signal"
	"github.com/vovakirdan/fermata/internal/tween"
)

// Session timings, all in milliseconds.
const (
	CountdownMS     = 1500
	SilenceDeathMS  = 500
	SpawnPeriodMS   = 1000
	PitchTweenMS    = 200
	GraceFadeMS     = 500 // each way
	GraceRotationMS = 1000
)

// CalibrationHalfWindowHz is the distance from the calibration pitch to the
// top and bottom of the playable range.
const CalibrationHalfWindowHz = 100

// startBarX is the start bar's left edge in view units.
const startBarX = 30

// Options carries the collaborators a session can be given.
type Options struct {
	Seed   int64       // Seeds the default random source
	Rand   Rand        // Overrides the random source when set
	Logger *log.Logger // Defaults to a discarding logger
}

// Transition records one state change.
type Transition struct {
	From string
	To   string
}

// Session is one run: it owns the active state, the obstacle list, the
// player and the score.
type Session struct {
	// Done fires once the player picks an option in the death dialog.
	Done *signal.Signal[EndOption]

	cfg    config.FermataConfig
	scene  *scene.Scene
	anim   *tween.Animator
	images map[string]*scene.Image
	rng    Rand
	logger *log.Logger

	player    *Player
	obstacles []*Obstacle

	score         *signal.Value[int]
	startingPitch *signal.Value[core.PitchSample]
	pitch         *signal.Signal[core.PitchSample]

	topPitch    float64
	bottomPitch float64

	state       state
	exiting     bool
	transitions []Transition

	banners map[string]*scene.Node
	dialog  *deathDialog
	closers []func() // HUD connections released by Close
}

// NewSession builds a session and enters the countdown.
func NewSession(cfg config.FermataConfig, provider assets.Provider, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fermata: %w", err)
	}
	images, err := assets.Images(provider, assets.Required...)
	if err != nil {
		return nil, fmt.Errorf("fermata: failed to load assets: %w", err)
	}

	s := &Session{
		Done:          signal.New[EndOption](),
		cfg:           cfg,
		scene:         scene.New(cfg.View.Width, cfg.View.Height),
		anim:          tween.NewAnimator(),
		images:        images,
		rng:           opts.Rand,
		logger:        opts.Logger,
		score:         signal.NewValue(0),
		startingPitch: signal.NewValue(core.Silence),
		pitch:         signal.New[core.PitchSample](),
		banners:       make(map[string]*scene.Node),
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(opts.Seed))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.makeBackground()
	if cfg.DebugMode {
		s.makeDebugHUD()
	}
	s.makeHUD()
	s.makePlayer()
	if cfg.Obstacles.SpawnStartBar {
		s.makeStartBar()
	}

	s.setState(&countdownState{s: s})
	return s, nil
}

func (s *Session) makeBackground() {
	bg := scene.NewImageNode(s.images[assets.Background])
	bg.W, bg.H = s.scene.Size()
	s.scene.AddAt(bg, 0, 0)
}

func (s *Session) makeDebugHUD() {
	w, h := s.scene.Size()
	pitch := NewPitchLabel(s.pitch)
	starting := NewStartingPitchLabel(s.pitch)
	s.scene.AddAt(pitch.Node, w-labelW, h-2*labelH)
	s.scene.AddAt(starting.Node, w-labelW, h-labelH)
	s.closers = append(s.closers, pitch.Close, starting.Close)
}

func (s *Session) makeHUD() {
	label := NewScoreLabel(s.score)
	s.scene.AddAt(label.Node, 0, 0)
	s.closers = append(s.closers, label.Close)
}

func (s *Session) makePlayer() {
	_, h := s.scene.Size()
	s.player = newPlayer(s.images[assets.Player])
	s.scene.AddAt(s.player.node, s.cfg.Player.X, h/2)
}

func (s *Session) makeStartBar() {
	_, h := s.scene.Size()
	bar := NewObstacle(Rest, s.images[assets.StartBar], s.cfg.Obstacles.ScrollSpeed)
	s.addObstacle(bar, startBarX, h/2)
}

// buildObstacle makes a detached obstacle of the given kind.
func (s *Session) buildObstacle(kind Kind) *Obstacle {
	img := s.images[assets.EndBar]
	if kind == Rest {
		img = s.images[assets.Rest]
	}
	return NewObstacle(kind, img, s.cfg.Obstacles.ScrollSpeed)
}

// addObstacle attaches o at (x, y) and appends it to the obstacle list.
func (s *Session) addObstacle(o *Obstacle, x, y float64) {
	s.scene.AddAt(o.node, x, y)
	s.obstacles = append(s.obstacles, o)
}

// removeObstacle drops o from the list and detaches it from the scene.
func (s *Session) removeObstacle(o *Obstacle) {
	for i, other := range s.obstacles {
		if other == o {
			s.obstacles = append(s.obstacles[:i], s.obstacles[i+1:]...)
			break
		}
	}
	s.scene.Remove(o.node)
}

// setState exits the current state, then enters next.
func (s *Session) setState(next state) {
	if s.exiting {
		panic("fermata: setState called from onExit")
	}
	prev := s.state
	if prev != nil {
		s.exiting = true
		prev.onExit()
		s.exiting = false
		s.transitions = append(s.transitions, Transition{From: prev.name(), To: next.name()})
		s.logger.Debug("state changed", "from", prev.name(), "to", next.name())
	}
	s.state = next
	next.onEnter()
}

// showBanner displays a centered message, creating it on first use.
func (s *Session) showBanner(text string) {
	n, ok := s.banners[text]
	if !ok {
		w, h := s.scene.Size()
		n = scene.NewTextNode(text, w/2, labelH)
		n.Color = core.ColorBrightWhite
		s.scene.AddCenterAt(n, w/2, h/2)
		s.banners[text] = n
	}
	n.Visible = true
}

func (s *Session) hideBanner(text string) {
	if n, ok := s.banners[text]; ok {
		n.Visible = false
	}
}

// targetY maps a frequency to the player's y: the top of the calibration
// window reaches the top of the view, the bottom reaches the bottom.
func (s *Session) targetY(hz float64) float64 {
	_, h := s.scene.Size()
	p := core.Clamp01((hz - s.bottomPitch) / (s.topPitch - s.bottomPitch))
	return h - h*p
}

// Tick advances the session by deltaMS. Tweens advance first; when one of
// their callbacks changes state the tick ends there.
func (s *Session) Tick(deltaMS int) {
	if deltaMS < 0 {
		if s.cfg.DebugMode {
			s.logger.Warn("negative tick delta clamped", "delta", deltaMS)
		}
		deltaMS = 0
	}
	current := s.state
	s.anim.Update(deltaMS)
	if s.state != current {
		return
	}
	s.state.tick(deltaMS)
}

// OnPitch delivers one pitch observation to the HUD and the active state.
func (s *Session) OnPitch(p core.PitchSample) {
	s.pitch.Emit(p)
	s.state.onPitch(p)
}

// HandleAction routes a key action. Only the death dialog reacts to keys.
func (s *Session) HandleAction(a core.Action) {
	if s.state.name() != StateDeath {
		return
	}
	switch a {
	case core.ActionConfirm:
		s.Choose(s.dialog.focus)
	case core.ActionBack:
		s.Choose(MainMenu)
	default:
		s.dialog.move(a)
	}
}

// Choose presses a death dialog button. It does nothing outside Death.
func (s *Session) Choose(opt EndOption) {
	if s.state.name() != StateDeath {
		return
	}
	s.logger.Debug("dialog choice", "option", opt)
	s.Done.Emit(opt)
}

// Step applies one frame of input: queued pitch samples in arrival order,
// then key actions, then the tick.
func (s *Session) Step(deltaMS int, in core.InputFrame) core.StepResult {
	for _, p := range in.Pitches {
		s.OnPitch(p)
	}
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight, core.ActionConfirm, core.ActionBack} {
		if in.Has(a) {
			s.HandleAction(a)
		}
	}
	s.Tick(deltaMS)
	return core.StepResult{State: s.GameState()}
}

// Render draws the scene into dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	s.scene.Render(dst)
}

// GameState summarizes the session for the platform.
func (s *Session) GameState() core.GameState {
	return core.GameState{
		Score:    s.score.Get(),
		GameOver: s.state.name() == StateDeath,
		State:    s.state.name(),
	}
}

// Score returns the accumulated playing time in milliseconds.
func (s *Session) Score() int {
	return s.score.Get()
}

// StartingPitch returns the calibration sample, or silence before it.
func (s *Session) StartingPitch() core.PitchSample {
	return s.startingPitch.Get()
}

// Player returns the avatar.
func (s *Session) Player() *Player {
	return s.player
}

// Obstacles returns a copy of the obstacle list.
func (s *Session) Obstacles() []*Obstacle {
	out := make([]*Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// Close ends the session. Running tweens are canceled and the HUD and Done
// observers are disconnected. A closed session must not be ticked again.
func (s *Session) Close() {
	s.logger.Debug("session closed", "state", s.state.name(), "tweens", s.anim.Running())
	s.anim.Clear()
	for _, c := range s.closers {
		c()
	}
	s.closers = nil
	s.Done.DisconnectAll()
}
