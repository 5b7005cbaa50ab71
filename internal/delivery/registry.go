package delivery

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotRegistered is returned for a provider name the registry does not
// know.
var ErrNotRegistered = errors.New("provider not registered")

// Registry holds delivery providers in registration order and answers
// which of them can run right now.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds p under its name. Names must be unique.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return errors.New("cannot register nil provider")
	}
	name := p.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider already registered: %s", name)
	}
	r.providers[name] = p
	r.order = append(r.order, name)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(providers ...Provider) {
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	return p, nil
}

// Names returns the provider names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Status reports whether the named provider can be used: nil when it is
// registered and its capability check passes, ErrNotRegistered when it is
// unknown, and the Validate error otherwise.
func (r *Registry) Status(name string) error {
	p, err := r.Get(name)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Available returns the names of usable providers in registration order.
func (r *Registry) Available() []string {
	var names []string
	for _, name := range r.Names() {
		if r.Status(name) == nil {
			names = append(names, name)
		}
	}
	return names
}

// Select returns the first usable provider in priority order. An empty
// priority list means registration order. When none is usable the error
// wraps ErrNoProvider together with each candidate's status.
func (r *Registry) Select(priority []string) (Provider, error) {
	if len(priority) == 0 {
		priority = r.Names()
	}

	var errs []error
	for _, name := range priority {
		if err := r.Status(name); err != nil {
			errs = append(errs, err)
			continue
		}
		return r.Get(name)
	}
	if len(errs) == 0 {
		return nil, ErrNoProvider
	}
	return nil, fmt.Errorf("%w: %w", ErrNoProvider, errors.Join(errs...))
}
