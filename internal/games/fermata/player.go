package fermata

import (
	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/scene"
	"github.com/vovakirdan/fermata/internal/tween"
)

// Player is the singer's avatar. Only its y position and rotation change.
type Player struct {
	node *scene.Node
	move *tween.Tween // latest pitch move, nil before the first pitch
}

func newPlayer(img *scene.Image) *Player {
	return &Player{node: scene.NewImageNode(img)}
}

// X returns the fixed left edge.
func (p *Player) X() float64 { return p.node.X }

// Y returns the top edge.
func (p *Player) Y() float64 { return p.node.Y }

// Rotation returns the current rotation in radians.
func (p *Player) Rotation() float64 { return p.node.Rotation }

// Box returns the collision box.
func (p *Player) Box() core.Box {
	return p.node.Box()
}

// Moving reports whether a pitch move is still in flight.
func (p *Player) Moving() bool {
	return p.move != nil && !p.move.Done()
}

// TargetY returns the y the player is moving towards. ok is false before
// the first pitch moves the player.
func (p *Player) TargetY() (y float64, ok bool) {
	if p.move == nil {
		return 0, false
	}
	return p.move.Target(), true
}
