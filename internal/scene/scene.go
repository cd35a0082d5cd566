package scene

import "github.com/kamstrup/intmap"

// Scene holds attached nodes in draw order.
type Scene struct {
	width  float64
	height float64
	nodes  *intmap.Map[NodeID, *Node]
	order  []NodeID
	nextID NodeID
}

// New creates an empty scene with a view of width×height units.
func New(width, height float64) *Scene {
	return &Scene{
		width:  width,
		height: height,
		nodes:  intmap.New[NodeID, *Node](64),
	}
}

// Size returns the view dimensions.
func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

// Add attaches n on top of every other node at its current position.
// Adding an attached node is a no-op.
func (s *Scene) Add(n *Node) *Node {
	if s.Contains(n) {
		return n
	}
	s.nextID++
	n.id = s.nextID
	s.nodes.Put(n.id, n)
	s.order = append(s.order, n.id)
	return n
}

// AddAt attaches n with its top-left corner at (x, y).
func (s *Scene) AddAt(n *Node, x, y float64) *Node {
	n.X, n.Y = x, y
	return s.Add(n)
}

// AddCenterAt attaches n centered on (cx, cy).
func (s *Scene) AddCenterAt(n *Node, cx, cy float64) *Node {
	return s.AddAt(n, cx-n.W/2, cy-n.H/2)
}

// Remove detaches n and reports whether it was attached.
func (s *Scene) Remove(n *Node) bool {
	if !s.Contains(n) {
		return false
	}
	s.nodes.Del(n.id)
	for i, id := range s.order {
		if id == n.id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	n.id = 0
	return true
}

// Contains reports whether n is attached to this scene.
func (s *Scene) Contains(n *Node) bool {
	if n == nil || n.id == 0 {
		return false
	}
	got, ok := s.nodes.Get(n.id)
	return ok && got == n
}

// Len returns the number of attached nodes.
func (s *Scene) Len() int {
	return s.nodes.Len()
}

// Each calls fn for every attached node from bottom to top.
func (s *Scene) Each(fn func(*Node)) {
	for _, id := range s.order {
		if n, ok := s.nodes.Get(id); ok {
			fn(n)
		}
	}
}
