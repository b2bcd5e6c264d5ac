package views

import (
	"context"
	"sync"
	"time"

	"github.com/a-h/templ"
)

type registryKey struct {
	prefix  string
	name    string
	format  string
	partial bool
}

type registered struct {
	component templ.Component
	updatedAt time.Time
}

// Registry is a Lookup over templ components registered in code.
// Re-registering a component bumps its modification time, which invalidates
// cached resolutions on the next lookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registered
	now     func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]registered),
		now:     time.Now,
	}
}

// Register stores a full template.
func (r *Registry) Register(prefix, name, format string, c templ.Component) {
	r.register(registryKey{prefix: prefix, name: name, format: format}, c)
}

// RegisterPartial stores a partial template.
func (r *Registry) RegisterPartial(prefix, name, format string, c templ.Component) {
	r.register(registryKey{prefix: prefix, name: name, format: format, partial: true}, c)
}

func (r *Registry) register(key registryKey, c templ.Component) {
	if key.name == "" || key.format == "" {
		panic("views: registry name and format are required")
	}
	if c == nil {
		panic("views: nil component")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := registryID(key)
	ts := r.now()
	if prev, ok := r.entries[id]; ok && !ts.After(prev.updatedAt) {
		ts = prev.updatedAt.Add(time.Nanosecond)
	}
	r.entries[id] = registered{component: c, updatedAt: ts}
}

// Unregister removes a template.
func (r *Registry) Unregister(prefix, name, format string, partial bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, registryID(registryKey{prefix: prefix, name: name, format: format, partial: partial}))
}

// Find returns registered components for the requested formats.
func (r *Registry) Find(_ context.Context, s Search) ([]Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []Candidate
	for _, format := range s.Formats {
		id := registryID(registryKey{prefix: s.Prefix, name: s.Name, format: format, partial: s.Partial})
		if e, ok := r.entries[id]; ok {
			found = append(found, Candidate{
				Identifier:  id,
				VirtualPath: virtualPath(s.Prefix, s.Name),
				Format:      format,
				UpdatedAt:   e.updatedAt,
			})
		}
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found, nil
}

// Decorate attaches the registered component.
func (r *Registry) Decorate(_ context.Context, c Candidate) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[c.Identifier]
	if !ok {
		return nil, ErrNotFound
	}
	return &Template{Candidate: c, Component: e.component}, nil
}

func registryID(k registryKey) string {
	id := "templ:" + virtualPath(k.prefix, k.name) + "." + k.format
	if k.partial {
		id += "#partial"
	}
	return id
}
