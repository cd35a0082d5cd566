// Package scene is the node graph the session draws into: images, text and
// panels placed in view units. Nodes are attached to and detached from a
// Scene; the Scene rasterizes itself into a core.Screen.
package scene

import "github.com/vovakirdan/fermata/internal/core"

// NodeID identifies an attached node. Zero means detached.
type NodeID uint32

// Kind selects how a node is drawn.
type Kind int

const (
	KindImage Kind = iota // Sprite art, anchored at its top-left corner
	KindText              // Single line of text, centered on its box
	KindPanel             // Boxed multi-line panel, centered on its box
)

// Image is an opaque render handle with known dimensions.
type Image struct {
	Name   string
	Width  float64
	Height float64
	// Frames holds alternative art, selected by node rotation in quarter turns.
	Frames [][]string
	Color  core.Color
	// Tile repeats the first frame across the node instead of drawing it once.
	Tile bool
}

// Node is one drawable element.
type Node struct {
	id NodeID

	Kind     Kind
	X, Y     float64
	W, H     float64
	Alpha    float64
	Rotation float64
	Visible  bool
	Color    core.Color

	Image *Image
	Text  string
	Bold  bool
	Lines []string
}

// NewImageNode creates a visible node sized to img.
func NewImageNode(img *Image) *Node {
	return &Node{
		Kind:    KindImage,
		W:       img.Width,
		H:       img.Height,
		Alpha:   1,
		Visible: true,
		Color:   img.Color,
		Image:   img,
	}
}

// NewTextNode creates a visible text node with the given box size.
func NewTextNode(text string, w, h float64) *Node {
	return &Node{
		Kind:    KindText,
		W:       w,
		H:       h,
		Alpha:   1,
		Visible: true,
		Text:    text,
	}
}

// NewPanelNode creates a visible panel covering w×h.
func NewPanelNode(lines []string, w, h float64) *Node {
	return &Node{
		Kind:    KindPanel,
		W:       w,
		H:       h,
		Alpha:   1,
		Visible: true,
		Lines:   lines,
	}
}

// ID returns the node's scene id, or zero when detached.
func (n *Node) ID() NodeID {
	return n.id
}

// Box returns the node's bounding box in view units.
func (n *Node) Box() core.Box {
	return core.NewBox(n.X, n.Y, n.W, n.H)
}

// SetText replaces the text and returns the node for chaining.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	return n
}
