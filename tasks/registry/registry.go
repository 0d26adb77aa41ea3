package registry

import (
	"slices"
	"sync"

	"task-middleware/tasks"
)

var _ tasks.Services = (*Registry)(nil)

// Registry is the services bundle: a mapping between capability names and
// their implementations. It is filled during start-up and then shared
// read-only by every effect the middleware performs.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[string]any
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		capabilities: make(map[string]any),
	}
}

// Register binds a capability to a name, replacing any previous binding.
// This should be called during application initialization, before the
// registry is handed to the middleware.
func (r *Registry) Register(name string, capability any) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.capabilities[name] = capability
	return r
}

// Capability returns the implementation registered under name.
func (r *Registry) Capability(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.capabilities[name]
	return c, ok
}

// Names returns the registered capability names in sorted order.
// This is useful for health checks and debugging.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.capabilities))
	for name := range r.capabilities {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
