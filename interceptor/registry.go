package interceptor

import "sync"

// Handle identifies one registration in a Registry. Unlike a position, a
// Handle stays valid when other entries are removed. The zero Handle never
// matches an entry.
type Handle struct {
	id         uint64
	generation uint64
}

// Valid reports whether h was issued by a registry.
func (h Handle) Valid() bool { return h.id != 0 }

type entry[T any] struct {
	id      uint64
	handler T
}

// Registry is an ordered collection of handlers. Registration order is
// execution order and entries are never reordered.
//
// A Registry is safe for concurrent use. Handlers returns a snapshot, so a
// chain that is already running is not affected by later registrations.
type Registry[T any] struct {
	mu         sync.RWMutex
	entries    []entry[T]
	nextID     uint64
	generation uint64
}

// NewRegistry creates a registry pre-populated with defaults, in order.
func NewRegistry[T any](defaults ...T) *Registry[T] {
	r := &Registry[T]{}
	for _, h := range defaults {
		r.Use(h)
	}
	return r
}

// Use appends h and returns a handle that can later be passed to Eject.
func (r *Registry[T]) Use(h T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(h)
}

// Register appends h and returns its current 0-based position. The position
// goes stale as soon as an earlier entry is removed; prefer Use and Eject.
func (r *Registry[T]) Register(h T) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendLocked(h)
	return len(r.entries) - 1
}

func (r *Registry[T]) appendLocked(h T) Handle {
	r.nextID++
	r.entries = append(r.entries, entry[T]{id: r.nextID, handler: h})
	return Handle{id: r.nextID, generation: r.generation}
}

// RemoveAt removes the entry at position i. Out-of-range positions are
// ignored. Every later entry shifts down by one.
func (r *Registry[T]) RemoveAt(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.entries) {
		return
	}
	r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
}

// Eject removes the entry registered under h. It returns false when h is
// unknown, was already ejected, or predates a Clear.
func (r *Registry[T]) Eject(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !h.Valid() || h.generation != r.generation {
		return false
	}
	for i, e := range r.entries {
		if e.id == h.id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every entry. All previously issued handles become stale.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.generation++
}

// Handlers returns the registered handlers in execution order.
func (r *Registry[T]) Handlers() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.handler
	}
	return out
}

// Len returns the number of registered handlers.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
