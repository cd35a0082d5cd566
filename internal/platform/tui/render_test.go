package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fermata/internal/core"
)

func TestRenderScreenRowsAndWideRunes(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColored(0, 1, "音a", core.ColorDefault)

	out := RenderScreen(s)
	rows := strings.Split(out, "\n")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !containsPlain(rows[1], "音a") {
		t.Errorf("row 1 = %q, want the wide rune followed by a", rows[1])
	}
	if strings.ContainsRune(out, 0) {
		t.Error("placeholder cell leaked into output")
	}
}

func TestPaletteUnknownColorFallsBack(t *testing.T) {
	p := newPalette()
	got := p.style(core.Color(200)).Render("x")
	want := p.style(core.ColorDefault).Render("x")
	if got != want {
		t.Errorf("unknown color rendered %q, want %q", got, want)
	}
}

func TestStatusLine(t *testing.T) {
	line := statusLine(80, "Playing", "Keyboard voice", 0, "q quit")
	if !containsPlain(line, "Playing") || !containsPlain(line, "Keyboard voice") {
		t.Errorf("status line %q misses state or source", line)
	}
	if !containsPlain(line, "q quit") {
		t.Errorf("status line %q misses help", line)
	}
	if w := lipgloss.Width(line); w != 80 {
		t.Errorf("status width = %d, want 80", w)
	}

	narrow := statusLine(10, "Playing", "Keyboard voice", 3, "q quit")
	if containsPlain(narrow, "q quit") {
		t.Error("help should be dropped when it does not fit")
	}
	if !containsPlain(narrow, "3 dropped") {
		t.Errorf("status line %q misses dropped count", narrow)
	}
}

func TestPlayfieldHeight(t *testing.T) {
	tests := []struct{ term, want int }{
		{24, 23},
		{2, 1},
		{1, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := playfieldHeight(tt.term); got != tt.want {
			t.Errorf("playfieldHeight(%d) = %d, want %d", tt.term, got, tt.want)
		}
	}
}
