// Package registry interns names into dense indices.
package registry

import (
	"strconv"
	"sync"
)

// Registry interns names into dense indices.
// The first name seen gets index 0, the next new name 1, and so on.
// An index, once assigned, is never reused or reassigned.
// Safe for concurrent use.
type Registry[I ~int] struct {
	mu      sync.RWMutex
	indices map[string]I
	names   []string
}

// New creates a new empty registry.
func New[I ~int]() *Registry[I] {
	return &Registry[I]{
		indices: make(map[string]I),
	}
}

// Of creates a registry pre-populated with names, in order.
func Of[I ~int](names ...string) *Registry[I] {
	r := New[I]()
	for _, n := range names {
		r.Intern(n)
	}
	return r
}

// Intern returns the index of name, assigning the next free index if the
// name has not been seen before.
func (r *Registry[I]) Intern(name string) I {
	r.mu.RLock()
	idx, ok := r.indices[name]
	r.mu.RUnlock()
	if ok {
		return idx
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check: another writer may have interned it between the locks.
	if idx, ok := r.indices[name]; ok {
		return idx
	}
	idx = I(len(r.names))
	r.indices[name] = idx
	r.names = append(r.names, name)
	return idx
}

// Lookup returns the index of name without interning it.
func (r *Registry[I]) Lookup(name string) (I, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.indices[name]
	return idx, ok
}

// Resolve returns the name behind an index.
func (r *Registry[I]) Resolve(idx I) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx < 0 || int(idx) >= len(r.names) {
		return "", false
	}
	return r.names[idx], true
}

// Name is Resolve for presentation code: unknown indices render as "#<n>".
func (r *Registry[I]) Name(idx I) string {
	if n, ok := r.Resolve(idx); ok {
		return n
	}
	return "#" + strconv.Itoa(int(idx))
}

// Len returns the number of interned names.
func (r *Registry[I]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Names returns the interned names in index order.
func (r *Registry[I]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
