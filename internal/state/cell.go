// Package state provides the reactive value cells the views are built
// around: publish-on-change containers with a pull-based current-value read.
package state

import "sync"

// Cell holds a single value and notifies subscribers whenever it is set.
// Reads never block writers for longer than the copy; subscriber callbacks
// run outside the lock, in subscription order.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	order []int
	next  int
}

// NewCell creates a cell holding the given initial value.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores a new value and notifies all subscribers.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	callbacks := make([]func(T), 0, len(c.order))
	for _, id := range c.order {
		if fn, ok := c.subs[id]; ok {
			callbacks = append(callbacks, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(value)
	}
}

// Subscribe registers fn to run on every Set. The returned function removes
// the subscription; calling it more than once is harmless.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.order = append(c.order, id)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
