package indicator

import (
	"fmt"
	"sort"
	"sync"
)

// Factory opens an indicator backend.
type Factory func() (Indicator, error)

// Registry manages indicator backends by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a backend to the registry.
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("indicator %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Open creates the named backend.
func (r *Registry) Open(name string) (Indicator, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("indicator %q not found (have %v)", name, r.List())
	}
	ind, err := f()
	if err != nil {
		return nil, fmt.Errorf("open indicator %q: %w", name, err)
	}
	return ind, nil
}

// List returns all registered backend names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
