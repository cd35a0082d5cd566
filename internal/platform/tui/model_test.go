package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fermata/internal/config"
	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/games/fermata"
	"github.com/vovakirdan/fermata/internal/pitch"
	"github.com/vovakirdan/fermata/internal/storage"
)

// harness drives a Model with a fake clock.
type harness struct {
	t   *testing.T
	m   Model
	now time.Time
}

func newHarness(t *testing.T, store *storage.Store) *harness {
	t.Helper()
	cfg := config.DefaultFermataConfig()
	cfg.Obstacles.SpawnStartBar = false

	m, err := NewModel(Options{
		Config:   cfg,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		SourceID: "keys",
		Store:    store,
		Logger:   log.New(io.Discard),
	})
	require.NoError(t, err)
	t.Cleanup(m.stop)

	h := &harness{t: t, m: m, now: time.Unix(1_700_000_000, 0)}
	h.tick(0)
	return h
}

func (h *harness) tick(d time.Duration) tea.Cmd {
	h.now = h.now.Add(d)
	next, cmd := h.m.Update(TickMsg(h.now))
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(msg tea.KeyMsg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) state() string {
	return h.m.Session().GameState().State
}

// toDeath runs countdown, calibrates on 440Hz and stays silent.
func (h *harness) toDeath() {
	for i := 0; i < 6; i++ {
		h.tick(250 * time.Millisecond)
	}
	require.Equal(h.t, fermata.StateCalibration, h.state())

	require.NoError(h.t, h.m.queue.Push(core.Pitch(440)))
	h.tick(250 * time.Millisecond)
	require.Equal(h.t, fermata.StatePlaying, h.state())

	h.tick(250 * time.Millisecond)
	require.Equal(h.t, fermata.StateDeath, h.state())
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestTickDeltaIsClamped(t *testing.T) {
	h := newHarness(t, nil)

	// A ten second stall counts as one capped tick.
	h.tick(10 * time.Second)
	assert.Equal(t, fermata.StateCountdown, h.state())

	for i := 0; i < 4; i++ {
		h.tick(time.Second)
	}
	assert.Equal(t, fermata.StateCountdown, h.state(), "1250ms of countdown after clamping")

	h.tick(time.Second)
	assert.Equal(t, fermata.StateCalibration, h.state())
}

func TestVoiceKeysFeedSession(t *testing.T) {
	h := newHarness(t, nil)
	go h.m.runSource()()

	for i := 0; i < 6; i++ {
		h.tick(250 * time.Millisecond)
	}
	require.Equal(t, fermata.StateCalibration, h.state())

	h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	require.Eventually(t, func() bool { return h.m.queue.Len() > 0 }, time.Second, 5*time.Millisecond)

	h.tick(16 * time.Millisecond)
	assert.Equal(t, fermata.StatePlaying, h.state())
	assert.Equal(t, 400.0, h.m.Session().StartingPitch().Hz())
}

func TestDeathSavesRunAndPlaysAgain(t *testing.T) {
	store := openStore(t)
	h := newHarness(t, store)
	h.toDeath()

	runs, err := store.TopRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 5, runs[0].Score)
	assert.Equal(t, 440.0, runs[0].CalibrationHz)
	assert.Equal(t, "keys", runs[0].Source)

	// Further ticks in Death do not save again.
	h.tick(250 * time.Millisecond)
	runs, _ = store.TopRuns(10)
	assert.Len(t, runs, 1)

	old := h.m.Session()
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	cmd := h.tick(16 * time.Millisecond)
	require.NotNil(t, cmd)

	assert.NotSame(t, old, h.m.Session(), "PLAY_AGAIN builds a fresh session")
	assert.Zero(t, old.Done.Len(), "the replaced session is closed")
	assert.Equal(t, fermata.StateCountdown, h.state())
	assert.False(t, h.m.nav.toMenu)

	runs, _ = store.TopRuns(10)
	assert.Equal(t, fermata.PlayAgain.String(), runs[0].EndOption)
}

func TestMainMenuChoiceQuits(t *testing.T) {
	store := openStore(t)
	h := newHarness(t, store)
	h.toDeath()

	h.key(tea.KeyMsg{Type: tea.KeyDown})
	h.tick(16 * time.Millisecond)
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	cmd := h.tick(16 * time.Millisecond)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, h.m.nav.toMenu)

	runs, _ := store.TopRuns(1)
	assert.Equal(t, fermata.MainMenu.String(), runs[0].EndOption)
}

func TestBackLeavesRunningSession(t *testing.T) {
	h := newHarness(t, nil)

	cmd := h.key(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, h.m.nav.toMenu)
	assert.ErrorIs(t, h.m.queue.Push(core.Silence), pitch.ErrQueueClosed)
}

func TestViewRendersSession(t *testing.T) {
	h := newHarness(t, nil)
	assert.Contains(t, h.m.View(), "Get Ready...")

	h.key(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Empty(t, h.m.View())
}
