package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fermata/internal/core"
)

// statusRows is the number of terminal rows below the playfield.
const statusRows = 1

// ansiCodes holds the terminal color of each core.Color.
var ansiCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// palette holds one style per core.Color.
type palette [len(ansiCodes)]lipgloss.Style

func newPalette() *palette {
	var p palette
	for i, code := range ansiCodes {
		p[i] = lipgloss.NewStyle()
		if code != "" {
			p[i] = p[i].Foreground(lipgloss.Color(code))
		}
	}
	return &p
}

var screenPalette = newPalette()

func (p *palette) style(c core.Color) lipgloss.Style {
	if int(c) >= len(p) {
		return p[core.ColorDefault]
	}
	return p[c]
}

// row renders one screen row, one escape sequence per run of equal color.
// The placeholder cell behind a double-width rune is skipped.
func (p *palette) row(s *core.Screen, y int) string {
	var sb, run strings.Builder
	current := core.ColorDefault
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(p.style(current).Render(run.String()))
		run.Reset()
	}

	for x, w := 0, s.Width(); x < w; x++ {
		cell := s.GetCell(x, y)
		if cell.Rune == 0 {
			continue
		}
		if cell.Color != current {
			flush()
			current = cell.Color
		}
		run.WriteRune(cell.Rune)
	}
	flush()
	return sb.String()
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = screenPalette.row(s, y)
	}
	return strings.Join(rows, "\n")
}

var (
	statusStateStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("4")).
				Padding(0, 1)
	statusTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// statusLine renders the bar under the playfield: the session state and
// pitch source on the left, key help on the right. Help is dropped when the
// terminal is too narrow for both.
func statusLine(width int, state, source string, dropped uint64, helpView string) string {
	left := statusStateStyle.Render(state) + statusTextStyle.Render(" "+source)
	if dropped > 0 {
		left += statusWarnStyle.Render(fmt.Sprintf(" %d dropped", dropped))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(helpView)
	if helpView == "" || gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + helpView
}

// playfieldHeight is the screen height left for the session.
func playfieldHeight(termH int) int {
	return max(termH-statusRows, 1)
}
