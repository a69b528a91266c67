package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"lumos-hq/relay/pkg/providers"
)

// Registry is an immutable name-to-provider mapping built at startup.
// All lookups after construction are read-only, so Registry is safe for
// concurrent use without locking.
type Registry struct {
	providers   map[string]providers.Provider
	names       []string
	defaultName string
}

// New builds a registry from the given providers. defaultName must match
// one of them. Provider names must be unique and non-empty.
func New(defaultName string, provs ...providers.Provider) (*Registry, error) {
	if len(provs) == 0 {
		return nil, errors.New("registry requires at least one provider")
	}

	byName := make(map[string]providers.Provider, len(provs))
	for _, p := range provs {
		name := p.Name()
		if name == "" {
			return nil, errors.New("provider with empty name")
		}
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("duplicate provider name %q", name)
		}
		byName[name] = p
	}

	if _, ok := byName[defaultName]; !ok {
		return nil, fmt.Errorf("default provider %q is not registered", defaultName)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	slog.Info("provider registry initialized",
		"providers", names,
		"default", defaultName,
	)

	return &Registry{
		providers:   byName,
		names:       names,
		defaultName: defaultName,
	}, nil
}

// Resolve returns the provider registered under name. It returns an
// UnknownProviderError listing the known names when no provider matches.
func (r *Registry) Resolve(name string) (providers.Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, &providers.UnknownProviderError{
			Name:  name,
			Known: r.Names(),
		}
	}
	return p, nil
}

// Default returns the default provider.
func (r *Registry) Default() providers.Provider {
	return r.providers[r.defaultName]
}

// DefaultName returns the default provider's name.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Has reports whether a provider is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}

// Names returns all registered provider names in sorted order.
// The returned slice is a copy and safe to modify.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Close closes every registered provider. All providers are closed even
// if some return errors; the first error is returned.
func (r *Registry) Close() error {
	var firstErr error
	for _, name := range r.names {
		if err := r.providers[name].Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing provider %q: %w", name, err)
		}
	}
	return firstErr
}
