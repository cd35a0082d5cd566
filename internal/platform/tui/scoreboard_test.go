package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/registry"
	"github.com/vovakirdan/fermata/internal/storage"
)

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Run{
		{Score: 12, CalibrationHz: 220, Source: "keys"},
		{Score: 40, CalibrationHz: 330, Source: "tone"},
		{Score: 25, CalibrationHz: 300, Source: "keys", EndOption: "PLAY_AGAIN"},
	} {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}
	return store
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func updateBoard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	board, ok := next.(ScoreboardModel)
	require.True(t, ok)
	return board
}

func TestScoreboardVoiceFilter(t *testing.T) {
	m := NewScoreboardModel(seededStore(t), 100, 40)

	assert.Equal(t, []string{allVoices, "keys", "tone"}, m.voices)
	assert.Len(t, m.visibleRuns(), 3)
	assert.Equal(t, 40, m.visibleRuns()[0].Score)

	m = updateBoard(t, m, tea.KeyMsg{Type: tea.KeyRight})
	runs := m.visibleRuns()
	require.Len(t, runs, 2)
	assert.Equal(t, 25, runs[0].Score)
	assert.Equal(t, 12, runs[1].Score)
	assert.Len(t, m.table.Rows(), 2)

	// Left from "keys" goes back to all, and again wraps to the last voice
	m = updateBoard(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, allVoices, m.voices[m.voice])
	m = updateBoard(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "tone", m.voices[m.voice])
	assert.True(t, containsPlain(m.View(), "tone"))
}

func TestScoreboardClearNeedsConfirmation(t *testing.T) {
	store := seededStore(t)
	m := NewScoreboardModel(store, 100, 40)

	m = updateBoard(t, m, runeKey('x'))
	assert.True(t, m.clearing)
	assert.True(t, containsPlain(m.View(), "Press y to confirm"))

	// Any other key cancels
	m = updateBoard(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, m.clearing)
	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Runs)

	m = updateBoard(t, m, runeKey('x'))
	m = updateBoard(t, m, runeKey('y'))
	assert.False(t, m.clearing)
	assert.Empty(t, m.runs)
	assert.Equal(t, []string{allVoices}, m.voices)
	assert.True(t, containsPlain(m.View(), "No runs recorded yet."))

	stats, err = store.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Runs)
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	m = updateBoard(t, m, runeKey('x'))
	assert.False(t, m.clearing)
	assert.True(t, containsPlain(m.View(), "No runs recorded yet."))

	m = updateBoard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsGoingBack())
	assert.Empty(t, m.View())
}

func TestMenuSelectsSource(t *testing.T) {
	sources := []registry.SourceInfo{
		{ID: "keys", Title: "Keyboard voice"},
		{ID: "tone", Title: "Synthetic hum"},
	}
	m := NewMenuModel(seededStore(t), core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, sources)
	assert.True(t, containsPlain(m.View(), "Best 40  |  3 runs"))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	require.NotNil(t, cmd)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "tone", m.Selected().SourceID)
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), nil)
	assert.True(t, containsPlain(m.View(), "No pitch sources available"))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, next.(MenuModel).Selected())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, next.(MenuModel).WantsScoreboard())

	next, _ = m.Update(runeKey('q'))
	assert.True(t, next.(MenuModel).IsQuitting())
}
