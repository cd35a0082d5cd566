package fermata

import (
	"fmt"

	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/scene"
	"github.com/vovakirdan/fermata/internal/signal"
)

// Label size in view units.
const (
	labelW = 200
	labelH = 30
)

// ScoreLabel shows the score in tenths of a second.
type ScoreLabel struct {
	Node *scene.Node
	conn *signal.Connection
}

// NewScoreLabel creates a label following score.
func NewScoreLabel(score *signal.Value[int]) *ScoreLabel {
	l := &ScoreLabel{Node: scene.NewTextNode("", labelW, labelH)}
	l.Node.Color = core.ColorBrightWhite
	l.conn = score.ConnectNotify(func(ms int) {
		l.Node.SetText(FormatScore(ms))
	})
	return l
}

// Close stops following the score.
func (l *ScoreLabel) Close() { l.conn.Close() }

// FormatScore renders a score in milliseconds as the HUD shows it.
func FormatScore(ms int) string {
	return fmt.Sprintf("Score: %d", ms/100)
}

// PitchLabel shows the latest pitch sample.
type PitchLabel struct {
	Node *scene.Node
	conn *signal.Connection
}

// NewPitchLabel creates a label following every pitch sample.
func NewPitchLabel(pitch *signal.Signal[core.PitchSample]) *PitchLabel {
	l := &PitchLabel{Node: scene.NewTextNode("--", labelW, labelH)}
	l.Node.Color = core.ColorCyan
	l.conn = pitch.Connect(func(p core.PitchSample) {
		if p.IsSilence() {
			l.Node.SetText("--")
			return
		}
		l.Node.SetText(fmt.Sprintf("Pitch: %.2f", p.Hz()))
	})
	return l
}

// Close stops following the pitch.
func (l *PitchLabel) Close() { l.conn.Close() }

// StartingPitchLabel shows the first sung pitch and then stops listening.
type StartingPitchLabel struct {
	Node *scene.Node
	conn *signal.Connection
}

// NewStartingPitchLabel creates a label that latches the first non-silent
// sample.
func NewStartingPitchLabel(pitch *signal.Signal[core.PitchSample]) *StartingPitchLabel {
	l := &StartingPitchLabel{Node: scene.NewTextNode("", labelW, labelH)}
	l.Node.Color = core.ColorCyan
	l.conn = pitch.Connect(func(p core.PitchSample) {
		if p.IsSilence() {
			return
		}
		l.Node.SetText(fmt.Sprintf("Starting: %.2f", p.Hz()))
		l.conn.Close()
	})
	return l
}

// Close stops waiting for the first pitch.
func (l *StartingPitchLabel) Close() { l.conn.Close() }
