// Package searchapi holds the concrete web-search provider clients.
// Each is a thin REST wrapper that normalizes rows to the domain shape
// and converts failures to *domain.ProviderError.
package searchapi

import (
	"fmt"

	"search-orchestrator/internal/domain"
)

// Registry holds configured providers by name.
type Registry struct {
	providers map[string]domain.SearchProvider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]domain.SearchProvider)}
}

// Register adds a provider under its own name.
func (r *Registry) Register(p domain.SearchProvider) {
	r.providers[p.Name()] = p
}

// Get returns the named provider.
func (r *Registry) Get(name string) (domain.SearchProvider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("search provider %q not configured", name)
	}
	return p, nil
}
