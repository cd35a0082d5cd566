package signal

// Value holds a current value and notifies slots when Update changes it.
type Value[T comparable] struct {
	current T
	changed Signal[T]
}

// NewValue creates a value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.current
}

// Update stores next and emits it if it differs from the current value.
func (v *Value[T]) Update(next T) {
	if next == v.current {
		return
	}
	v.current = next
	v.changed.Emit(next)
}

// Connect attaches fn to change notifications.
func (v *Value[T]) Connect(fn func(T)) *Connection {
	return v.changed.Connect(fn)
}

// ConnectNotify attaches fn and immediately calls it with the current value.
func (v *Value[T]) ConnectNotify(fn func(T)) *Connection {
	conn := v.Connect(fn)
	fn(v.current)
	return conn
}
