package fermata

import (
	"github.com/vovakirdan/fermata/internal/core"
	"github.com/vovakirdan/fermata/internal/scene"
)

// Kind tells the session what happens when the player touches an obstacle.
type Kind int

const (
	Deadly Kind = iota // Ends the run
	Rest               // Consumed; the player must breathe
)

// String returns the kind name for logs.
func (k Kind) String() string {
	if k == Rest {
		return "rest"
	}
	return "deadly"
}

// Obstacle is a sprite scrolling left at a constant speed.
type Obstacle struct {
	Kind  Kind
	node  *scene.Node
	speed float64 // units per millisecond
}

// NewObstacle creates a detached obstacle drawn with img.
func NewObstacle(kind Kind, img *scene.Image, speed float64) *Obstacle {
	return &Obstacle{
		Kind:  kind,
		node:  scene.NewImageNode(img),
		speed: speed,
	}
}

// Update scrolls the obstacle left by deltaMS worth of movement.
func (o *Obstacle) Update(deltaMS int) {
	o.node.X -= o.speed * float64(deltaMS)
}

// X returns the left edge.
func (o *Obstacle) X() float64 { return o.node.X }

// Y returns the top edge.
func (o *Obstacle) Y() float64 { return o.node.Y }

// Width returns the sprite width.
func (o *Obstacle) Width() float64 { return o.node.W }

// Box returns the collision box.
func (o *Obstacle) Box() core.Box {
	return o.node.Box()
}

// Gone reports whether the obstacle has fully left the view.
func (o *Obstacle) Gone() bool {
	return o.node.X+o.node.W < 0
}

// Node returns the scene node.
func (o *Obstacle) Node() *scene.Node {
	return o.node
}
