package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fermata/internal/storage"
)

// maxRuns is how many runs the scoreboard loads.
const maxRuns = 100

// allVoices is the filter value that shows every source.
const allVoices = "all"

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Filter  key.Binding
	Clear   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Clear, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Clear, k.Confirm},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "voice"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm clear"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the high score screen.
type ScoreboardModel struct {
	store    *storage.Store
	runs     []storage.Run // every loaded run, best first
	stats    storage.Stats
	voices   []string // filter cycle: allVoices, then each source seen
	voice    int
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	clearing bool // waiting for the clear confirmation
	err      error

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a table sized to the terminal.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Pitch", Width: 10},
		{Title: "Voice", Width: 6},
		{Title: "Ending", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // title, stats, filter, help, border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reads the best runs and totals from the store and rebuilds the
// voice filter from the sources that appear in them.
func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	m.stats = storage.Stats{}
	if m.store != nil {
		runs, err := m.store.TopRuns(maxRuns)
		if err != nil {
			m.err = err
		}
		m.runs = runs
		if stats, err := m.store.Stats(); err == nil {
			m.stats = stats
		}
	}

	m.voices = []string{allVoices}
	for _, r := range m.runs {
		if !slices.Contains(m.voices, r.Source) {
			m.voices = append(m.voices, r.Source)
		}
	}
	slices.Sort(m.voices[1:])
	if m.voice >= len(m.voices) {
		m.voice = 0
	}
	m.updateTableRows()
}

// visibleRuns returns the runs matching the voice filter. Ranks stay
// relative to the filtered list.
func (m ScoreboardModel) visibleRuns() []storage.Run {
	voice := m.voices[m.voice]
	if voice == allVoices {
		return m.runs
	}
	var out []storage.Run
	for _, r := range m.runs {
		if r.Source == voice {
			out = append(out, r)
		}
	}
	return out
}

func (m *ScoreboardModel) updateTableRows() {
	runs := m.visibleRuns()
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		ending := r.EndOption
		if ending == "" {
			ending = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1f Hz", r.CalibrationHz),
			r.Source,
			ending,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycleVoice moves the voice filter by step, wrapping around.
func (m *ScoreboardModel) cycleVoice(step int) {
	n := len(m.voices)
	m.voice = ((m.voice+step)%n + n) % n
	m.updateTableRows()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Any key other than the confirmation cancels a pending clear.
		if m.clearing && !key.Matches(msg, m.keys.Confirm) {
			m.clearing = false
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			step := 1
			if s := msg.String(); s == "left" || s == "h" {
				step = -1
			}
			m.cycleVoice(step)
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil && len(m.runs) > 0 {
				m.clearing = true
			}
			return m, nil

		case key.Matches(msg, m.keys.Confirm):
			if m.clearing {
				m.clearing = false
				if err := m.store.ClearRuns(); err != nil {
					m.err = err
				}
				m.voice = 0
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardWarnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	boardVoiceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	boardTableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)
	boardEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	blocks := []string{boardTitleStyle.Render("HIGH SCORES")}
	if m.stats.Runs > 0 {
		blocks = append(blocks, boardDimStyle.Render(fmt.Sprintf(
			"%d runs  |  best %d  |  average %.1f", m.stats.Runs, m.stats.BestScore, m.stats.AvgScore)))
	}
	blocks = append(blocks, boardDimStyle.Render("voice: ")+boardVoiceStyle.Render(m.voices[m.voice]))

	var content string
	if len(m.visibleRuns()) == 0 {
		content = boardEmptyStyle.Render("No runs recorded yet.\nSing a little to set a high score!")
	} else {
		content = m.table.View()
	}
	blocks = append(blocks, boardTableStyle.Render(content))

	switch {
	case m.clearing:
		blocks = append(blocks, boardWarnStyle.Render("Delete every run? Press y to confirm."))
	case m.err != nil:
		blocks = append(blocks, boardWarnStyle.Render("Error: "+m.err.Error()))
	}
	blocks = append(blocks, boardDimStyle.Render(m.help.View(m.keys)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, blocks...))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
