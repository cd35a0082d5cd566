package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fermata/internal/assets"
	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/games/fermata"
	"github.com/vovakirdan/fermata/internal/pitch"
	"github.com/vovakirdan/fermata/internal/registry"
	"github.com/vovakirdan/fermata/internal/storage"
)

// maxTickMS caps the wall-clock delta fed to the session, so a stalled
// terminal does not teleport obstacles through the player.
const maxTickMS = 250

// Options configures a play screen.
type Options struct {
	Config   config.FermataConfig
	Runtime  core.RuntimeConfig
	SourceID string
	Assets   assets.Provider
	Store    *storage.Store
	Logger   *log.Logger
}

// sourceDoneMsg reports that the pitch source's Run returned.
type sourceDoneMsg struct{ err error }

// navigator holds state shared by every copy of the model.
type navigator struct {
	choice *fermata.EndOption
	runID  int64
	saved  bool
	toMenu bool
}

// Model is the Bubble Tea model for a running session.
type Model struct {
	opts       Options
	session    *fermata.Session
	source     registry.Source
	queue      *pitch.Queue
	ctx        context.Context
	cancel     context.CancelFunc
	nav        *navigator
	screen     *core.Screen
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	err        error
}

// NewModel creates the pitch source and the first session.
func NewModel(opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}
	if opts.Assets == nil {
		catalog, err := assets.Load(opts.Config.Assets)
		if err != nil {
			return Model{}, err
		}
		opts.Assets = catalog
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}

	source, err := registry.Create(opts.SourceID, opts.Config)
	if err != nil {
		return Model{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		opts:       opts,
		source:     source,
		queue:      pitch.NewQueue(opts.Config.Pitch.QueueSize),
		ctx:        ctx,
		cancel:     cancel,
		nav:        &navigator{},
		screen:     core.NewScreen(opts.Runtime.ScreenW, playfieldHeight(opts.Runtime.ScreenH)),
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	if err := m.startSession(); err != nil {
		cancel()
		return Model{}, err
	}
	return m, nil
}

// startSession replaces the session with a fresh one.
func (m *Model) startSession() error {
	seed := m.opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s, err := fermata.NewSession(m.opts.Config, m.opts.Assets, fermata.Options{
		Seed:   seed,
		Logger: m.opts.Logger,
	})
	if err != nil {
		return err
	}

	if m.session != nil {
		m.session.Close()
	}
	nav := m.nav
	s.Done.Connect(func(o fermata.EndOption) {
		nav.choice = &o
	})
	nav.saved = false
	nav.runID = 0

	m.session = s
	m.gameState = s.GameState()
	m.opts.Logger.Info("session started", "source", m.source.ID(), "seed", seed)
	return nil
}

// Init starts the tick loop and the pitch source.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.Runtime.TickRate), m.runSource())
}

// runSource runs the source until the model stops it.
func (m Model) runSource() tea.Cmd {
	ctx, source, queue := m.ctx, m.source, m.queue
	return func() tea.Msg {
		return sourceDoneMsg{err: source.Run(ctx, queue.Emit)}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The session works in view units; only the cell buffer changes.
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case sourceDoneMsg:
		if msg.err != nil {
			m.opts.Logger.Error("pitch source failed", "source", m.source.ID(), "error", msg.err)
		} else {
			m.opts.Logger.Info("pitch source stopped", "source", m.source.ID())
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	// Voice keys feed the keyboard source when it is the active one.
	if h, ok := m.source.(registry.KeyHandler); ok && m.keyMapper.IsVoiceKey(msg) {
		h.HandleKey(msg.String())
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.stop()
		return m, tea.Quit
	}

	// Back leaves a running session; in the death dialog it is a button.
	if action == core.ActionBack && !m.gameState.GameOver {
		m.nav.toMenu = true
		m.stop()
		return m, tea.Quit
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick drains the pitch queue and advances the session by the
// wall-clock time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := 0
	if !m.lastTick.IsZero() {
		delta = int(now.Sub(m.lastTick).Milliseconds())
	}
	delta = core.Clamp(delta, 0, maxTickMS)
	m.lastTick = now

	m.inputFrame.Pitches = m.queue.Drain(m.inputFrame.Pitches)
	result := m.session.Step(delta, m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	// Save the run once, when the death dialog appears
	if m.gameState.GameOver && !m.nav.saved {
		m.saveRun()
	}

	if m.nav.choice != nil {
		choice := *m.nav.choice
		m.nav.choice = nil
		m.recordChoice(choice)

		switch choice {
		case fermata.PlayAgain:
			if err := m.startSession(); err != nil {
				m.err = err
				m.stop()
				return m, tea.Quit
			}
			m.lastTick = time.Time{}
		case fermata.MainMenu:
			m.nav.toMenu = true
			m.stop()
			return m, tea.Quit
		}
	}

	return m, tickCmd(m.opts.Runtime.TickRate)
}

func (m Model) saveRun() {
	m.nav.saved = true
	if m.opts.Store == nil {
		return
	}
	//nolint:errcheck // A failed lookup only skips the log line
	best, _ := m.opts.Store.BestScore()
	id, err := m.opts.Store.SaveRun(storage.Run{
		Score:         m.gameState.Score / 100,
		CalibrationHz: m.session.StartingPitch().Hz(),
		Source:        m.source.ID(),
	})
	if err != nil {
		m.opts.Logger.Warn("could not save run", "error", err)
		return
	}
	m.nav.runID = id
	if score := m.gameState.Score / 100; score > best {
		m.opts.Logger.Info("new best score", "score", score, "previous", best)
	}
}

func (m Model) recordChoice(choice fermata.EndOption) {
	if m.opts.Store == nil || m.nav.runID == 0 {
		return
	}
	if err := m.opts.Store.SetEndOption(m.nav.runID, choice.String()); err != nil {
		m.opts.Logger.Warn("could not record end option", "error", err)
	}
}

// stop cancels the pitch source and closes its queue.
func (m Model) stop() {
	m.cancel()
	m.queue.Close()
	if m.session != nil {
		m.session.Close()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	dir, err := config.ExpandHome("~/.fermata/screenshots")
	if err != nil {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("fermata_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.session.Render(m.screen)
	status := statusLine(m.screen.Width(), m.gameState.State, m.source.Title(),
		m.queue.Dropped(), m.help.View(m.keyMapper.Keys()))
	return RenderScreen(m.screen) + "\n" + status
}

// Session returns the running session.
func (m Model) Session() *fermata.Session {
	return m.session
}

// Result reports how a play screen ended.
type Result struct {
	BackToMenu bool
}

// Run starts the Bubble Tea program for one play screen. PLAY_AGAIN is
// handled inside; MAIN_MENU and Back end the program with BackToMenu set.
func Run(opts Options) (Result, error) {
	model, err := NewModel(opts)
	if err != nil {
		return Result{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	model.stop()
	if err != nil {
		return Result{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return Result{}, nil
	}
	return Result{BackToMenu: m.nav.toMenu}, m.err
}
