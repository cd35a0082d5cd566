// Package signal is a small single-threaded pub/sub used to wire the session
// to its HUD: a Signal delivers every emitted value to its slots, and a Value
// holds a current value and notifies slots when it changes.
//
// Neither type is safe for concurrent use; everything runs on the game loop.
package signal

// Connection is a handle to one slot. Closing it detaches the slot; closing
// from inside the slot itself is allowed.
type Connection struct {
	closed bool
	owner  interface{ prune() }
}

// Close detaches the slot. Further calls are no-ops.
func (c *Connection) Close() {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	if c.owner != nil {
		c.owner.prune()
	}
}

// Closed reports whether the connection has been closed.
func (c *Connection) Closed() bool {
	return c.closed
}

type slot[T any] struct {
	fn   func(T)
	conn *Connection
}

// Signal emits values to connected slots in connection order.
type Signal[T any] struct {
	slots    []slot[T]
	emitting int
	dirty    bool
}

// New creates an empty signal.
func New[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Connect attaches fn and returns its connection.
func (s *Signal[T]) Connect(fn func(T)) *Connection {
	conn := &Connection{owner: s}
	s.slots = append(s.slots, slot[T]{fn: fn, conn: conn})
	return conn
}

// Emit calls every open slot with v. Slots connected during emission are not
// called until the next Emit.
func (s *Signal[T]) Emit(v T) {
	s.emitting++
	n := len(s.slots)
	for i := 0; i < n; i++ {
		sl := s.slots[i]
		if sl.conn.closed {
			continue
		}
		sl.fn(v)
	}
	s.emitting--
	if s.emitting == 0 && s.dirty {
		s.compact()
	}
}

// Len returns the number of open slots.
func (s *Signal[T]) Len() int {
	n := 0
	for _, sl := range s.slots {
		if !sl.conn.closed {
			n++
		}
	}
	return n
}

// DisconnectAll closes every slot.
func (s *Signal[T]) DisconnectAll() {
	for _, sl := range s.slots {
		sl.conn.closed = true
	}
	s.prune()
}

func (s *Signal[T]) prune() {
	if s.emitting > 0 {
		s.dirty = true
		return
	}
	s.compact()
}

func (s *Signal[T]) compact() {
	kept := s.slots[:0]
	for _, sl := range s.slots {
		if !sl.conn.closed {
			kept = append(kept, sl)
		}
	}
	for i := len(kept); i < len(s.slots); i++ {
		s.slots[i] = slot[T]{}
	}
	s.slots = kept
	s.dirty = false
}
