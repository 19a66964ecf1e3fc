// Package binding provides a small observable value holder: get/set plus
// synchronously invoked watchers that receive before/after values.
package binding

import "sync"

type watcher[T any] struct {
	id int
	fn func(old, new T)
}

// Value holds a single value of type T. Every successful Set invokes the
// registered watchers synchronously, in registration order, passing the
// replaced and the new value.
type Value[T any] struct {
	mu       sync.Mutex
	current  T
	watchers []watcher[T]
	nextID   int
}

// NewValue creates a Value seeded with initial. No watchers are notified
// for the seed.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current value and notifies all watchers.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	old := v.current
	v.current = next
	snapshot := make([]watcher[T], len(v.watchers))
	copy(snapshot, v.watchers)
	v.mu.Unlock()

	// Watchers run outside the lock so they may call Get or Set.
	for _, w := range snapshot {
		w.fn(old, next)
	}
}

// Watch registers fn to be called on every Set. The returned function
// removes the registration; calling it more than once is harmless.
func (v *Value[T]) Watch(fn func(old, new T)) (remove func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.watchers = append(v.watchers, watcher[T]{id: id, fn: fn})
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i, w := range v.watchers {
			if w.id == id {
				v.watchers = append(v.watchers[:i], v.watchers[i+1:]...)
				return
			}
		}
	}
}
