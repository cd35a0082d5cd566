package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/registry"
	"github.com/vovakirdan/fermata/internal/storage"
)

// MenuItem represents a selectable pitch source in the menu.
type MenuItem struct {
	SourceID string
	Title    string
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	stats          storage.Stats
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user picks a source
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a menu offering the given sources.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, sources []registry.SourceInfo) MenuModel {
	items := make([]MenuItem, 0, len(sources))
	for _, src := range sources {
		items = append(items, MenuItem{SourceID: src.ID, Title: src.Title})
	}

	var stats storage.Stats
	if store != nil {
		//nolint:errcheck // Stats are decoration only
		stats, _ = store.Stats()
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		stats:     stats,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuListStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginTop(1).
			MarginBottom(1)
)

// View renders the menu centered in the terminal.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var list []string
	for i, item := range m.items {
		if i == m.cursor {
			list = append(list, menuCursorStyle.Render("> "+item.Title))
			continue
		}
		list = append(list, "  "+item.Title)
	}
	if len(list) == 0 {
		list = append(list, menuDimStyle.Render("No pitch sources available"))
	}

	blocks := []string{
		menuTitleStyle.Render("F E R M A T A"),
		"Hold a note. Breathe when told.",
	}
	if m.stats.Runs > 0 {
		blocks = append(blocks, menuDimStyle.Render(fmt.Sprintf("Best %d  |  %d runs", m.stats.BestScore, m.stats.Runs)))
	}
	blocks = append(blocks,
		menuListStyle.Render(lipgloss.JoinVertical(lipgloss.Left, list...)),
		menuDimStyle.Render("Up/Down: Navigate  |  Enter: Sing  |  Tab: Scores  |  Q: Quit"),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, blocks...))
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	SourceID        string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, sources []registry.SourceInfo) (MenuResult, error) {
	model := NewMenuModel(store, cfg, sources)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.SourceID = m.Selected().SourceID
	} else {
		result.Quit = true
	}

	return result, nil
}
