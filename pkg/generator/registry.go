// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a generator from its configuration section.
type Factory func(config Config, opts ...Option) (Generator, error)

// Registry maps generator names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("register generator: name is empty")
	}
	if factory == nil {
		return fmt.Errorf("register generator: factory is nil for %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("register generator: %s is already registered", name)
	}
	r.factories[name] = factory

	return nil
}

// New creates the generator registered under name.
func (r *Registry) New(name string, config Config, opts ...Option) (Generator, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown generator %q, registered generators are %v", name, r.Names())
	}

	g, err := factory(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator %s: %w", name, err)
	}

	return g, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Build creates one generator per configuration section, ordered by name.
func (r *Registry) Build(sections map[string]Config, opts ...Option) ([]Generator, error) {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	generators := make([]Generator, 0, len(names))
	for _, name := range names {
		g, err := r.New(name, sections[name], opts...)
		if err != nil {
			return nil, err
		}
		generators = append(generators, g)
	}

	return generators, nil
}
