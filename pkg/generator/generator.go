// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"context"

	"github.com/awsgitops/awsgitops/pkg/document"
)

// Generator locates exactly one live cloud resource and writes selected fields
// of its description into a document.
//
// The stages must run in order: GetInstance, IsOperational, GetData, Generate.
// A stage fails with a StageOrder error when its predecessor did not succeed.
// Reset returns the generator to its initial state so it can process the next document.
type Generator interface {
	// Name returns the registered name of the generator, e.g. rds.
	Name() string
	// GetInstance matches exactly one live resource against the configured pattern.
	GetInstance(ctx context.Context) error
	// IsOperational checks that the matched resource is ready.
	IsOperational(ctx context.Context) error
	// GetData captures the description of the matched resource.
	GetData(ctx context.Context) error
	// Generate writes the configured targets into the document guarded by h.
	Generate(ctx context.Context, h *document.Handle) error
	// Reset clears the matched resource and its data.
	Reset()
	// State returns the lifecycle state.
	State() State
}

// Resource is one live cloud resource as returned by a Lister.
type Resource struct {
	// ID uniquely identifies the resource within its category.
	ID string
	// Data is the description of the resource as a tree of
	// map[string]any, []any and scalars.
	Data map[string]any
}

// Lister lists the live resources of a category.
// Two calls may return different results.
type Lister interface {
	List(ctx context.Context, category string) ([]Resource, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context, category string) ([]Resource, error)

// List calls f.
func (f ListerFunc) List(ctx context.Context, category string) ([]Resource, error) {
	return f(ctx, category)
}

// State is the lifecycle state of a generator.
type State int

const (
	StateIdle State = iota
	StateMatched
	StateOperational
	StateFetched
	StateGenerated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMatched:
		return "matched"
	case StateOperational:
		return "operational-checked"
	case StateFetched:
		return "data-fetched"
	case StateGenerated:
		return "generated"
	}
	return "unknown"
}
