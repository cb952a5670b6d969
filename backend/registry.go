// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates a backend from options. Implementations validate
// options and return descriptive errors.
type Factory func(opts Options) (Backend, error)

// Entry is a registered backend.
type Entry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	//   - 100: GPU surfaces
	//   - 50: CPU raster surfaces
	//   - 20: host document or terminal surfaces
	//   - 0: headless
	Priority int

	// Factory creates backend instances.
	Factory Factory

	// Available reports if the backend can run in this process.
	Available func() bool
}

// Registry manages registered backends.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry.
// Most code should use the package-level Register and New.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a backend to the global registry. It is typically called
// from init. A nil available means always available; registering an
// existing name replaces it.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) { globalRegistry.Unregister(name) }

// List returns registered names, highest priority first.
func List() []string { return globalRegistry.List() }

// Available returns available names, highest priority first.
func Available() []string { return globalRegistry.Available() }

// Get returns a copy of the named entry.
func Get(name string) (*Entry, bool) { return globalRegistry.Get(name) }

// New creates the named backend from the global registry.
func New(name string, opts Options) (Backend, error) { return globalRegistry.New(name, opts) }

// NewBest creates the highest-priority available backend whose factory
// accepts opts.
func NewBest(opts Options) (Backend, error) { return globalRegistry.NewBest(opts) }

// Register adds a backend to r.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if factory == nil {
		panic("backend: Register factory is nil")
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from r.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// List returns registered names, highest priority first.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(false)
}

// Available returns available names, highest priority first.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames(true)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	c := *e
	return &c, true
}

// New creates the named backend.
func (r *Registry) New(name string, opts Options) (Backend, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &UnavailableError{Name: name}
	}
	return e.Factory(opts)
}

// NewBest tries available backends in priority order and returns the
// first one created. If all fail, the last error is returned.
func (r *Registry) NewBest(opts Options) (Backend, error) {
	r.mu.RLock()
	names := r.sortedNames(true)
	r.mu.RUnlock()

	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}
	var errs []error
	for _, name := range names {
		b, err := r.New(name, opts)
		if err == nil {
			return b, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// sortedNames must be called with the lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	type ranked struct {
		name     string
		priority int
	}
	rs := make([]ranked, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		rs = append(rs, ranked{name: name, priority: e.Priority})
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].priority != rs[j].priority {
			return rs[i].priority > rs[j].priority
		}
		return rs[i].name < rs[j].name
	})
	names := make([]string, len(rs))
	for i, e := range rs {
		names[i] = e.name
	}
	return names
}

// ErrNoBackendAvailable is returned when no backend is registered or
// available.
var ErrNoBackendAvailable = errors.New("backend: no backend available")

// NotFoundError indicates a named backend is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "backend: not found: " + e.Name
}

// UnavailableError indicates a backend exists but cannot run here.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "backend: unavailable: " + e.Name
}
