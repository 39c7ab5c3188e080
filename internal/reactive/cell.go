// Package reactive provides typed value cells that notify subscribers when
// their value changes.
//
// Notification is synchronous and depth-first: a listener that sets another
// cell runs that cell's listeners to completion before the next listener of
// the first cell is called. A listener must not set the cell it observes.
// Cells are not safe for concurrent use; callers serialize access.
package reactive

// Listener receives the new and the previous value of a cell.
type Listener[T any] func(newValue, oldValue T)

type subscription[T any] struct {
	fn     Listener[T]
	active bool
}

// Cell holds a single value of type T.
type Cell[T any] struct {
	value T
	equal func(a, b T) bool
	subs  []*subscription[T]
}

// New returns a cell for a comparable type, using == to detect changes.
func New[T comparable](v T) *Cell[T] {
	return &Cell[T]{
		value: v,
		equal: func(a, b T) bool { return a == b },
	}
}

// NewFunc returns a cell that uses equal to detect changes. Use it for
// slices, maps and structs that are not comparable or whose identity is
// not what matters.
func NewFunc[T any](v T, equal func(a, b T) bool) *Cell[T] {
	return &Cell[T]{value: v, equal: equal}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set stores v and, when it differs from the current value, calls every
// listener with (v, old) in subscription order.
func (c *Cell[T]) Set(v T) {
	old := c.value
	if c.equal(old, v) {
		return
	}
	c.value = v

	// Listeners added during this pass wait for the next change.
	subs := c.subs
	for _, s := range subs {
		if s.active {
			s.fn(v, old)
		}
	}
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is idempotent and takes effect immediately, including
// for a notification pass already in progress.
func (c *Cell[T]) Subscribe(fn Listener[T]) (unsubscribe func()) {
	s := &subscription[T]{fn: fn, active: true}
	c.subs = append(c.subs, s)
	return func() {
		if !s.active {
			return
		}
		s.active = false
		for i, other := range c.subs {
			if other == s {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				break
			}
		}
	}
}

// Len reports the number of active subscribers.
func (c *Cell[T]) Len() int {
	return len(c.subs)
}
