package ai

import (
	"fmt"
	"strings"
	"sync"
)

// Factory builds a provider bound to a model name.
type Factory func(model string) (Provider, error)

// Registry maps provider names to factories. Names are matched
// case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[normalize(name)] = f
}

// Build constructs a provider for the given model, or errors when no
// factory is registered under name.
func (r *Registry) Build(name, model string) (Provider, error) {
	r.mu.RLock()
	f, ok := r.factories[normalize(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no completion provider registered as %q", name)
	}
	return f(model)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
