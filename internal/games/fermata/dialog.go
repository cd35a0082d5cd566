package fermata

import (
	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/scene"
)

// EndOption is the player's choice in the death dialog.
type EndOption int

const (
	PlayAgain EndOption = iota
	MainMenu
)

// String returns the option name stored with score records.
func (e EndOption) String() string {
	if e == MainMenu {
		return "MAIN_MENU"
	}
	return "PLAY_AGAIN"
}

const deathMessage = "Now you must repeat!"

// deathDialog is the modal panel with two buttons.
type deathDialog struct {
	node  *scene.Node
	focus EndOption
}

func newDeathDialog() *deathDialog {
	d := &deathDialog{node: scene.NewPanelNode(nil, 360, 200)}
	d.node.Color = core.ColorBrightWhite
	d.refresh()
	return d
}

// move changes the focused button.
func (d *deathDialog) move(a core.Action) {
	switch a {
	case core.ActionUp, core.ActionLeft:
		d.focus = PlayAgain
	case core.ActionDown, core.ActionRight:
		d.focus = MainMenu
	}
	d.refresh()
}

func (d *deathDialog) refresh() {
	d.node.Lines = []string{
		deathMessage,
		"",
		button("Play again", d.focus == PlayAgain),
		button("Main Menu", d.focus == MainMenu),
	}
}

func button(label string, focused bool) string {
	if focused {
		return "> " + label + " <"
	}
	return "  " + label + "  "
}
