// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"context"

	"github.com/awsgitops/awsgitops/pkg/document"
	"github.com/sourcegraph/conc/pool"
)

// Runner drives a set of generators through their lifecycle for each input document.
type Runner struct {
	generators  []Generator
	maxParallel int
}

// RunnerOption is a function that sets an option on a Runner.
type RunnerOption func(*Runner)

// WithMaxParallel limits the number of generators running at the same time.
// Zero or less means no limit.
func WithMaxParallel(n int) RunnerOption {
	return func(r *Runner) {
		r.maxParallel = n
	}
}

// NewRunner returns a Runner for the given generators.
func NewRunner(generators []Generator, opts ...RunnerOption) *Runner {
	r := &Runner{
		generators: generators,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resets every generator and runs them concurrently against the document guarded by h.
// Only the write stage is serialized. It returns the errors of all failed generators joined.
func (r *Runner) Run(ctx context.Context, h *document.Handle) error {
	p := pool.New().WithErrors()
	if r.maxParallel > 0 {
		p = p.WithMaxGoroutines(r.maxParallel)
	}

	for _, g := range r.generators {
		g := g
		g.Reset()
		p.Go(func() error {
			return Execute(ctx, g, h)
		})
	}

	return p.Wait()
}

// Execute runs the stages of g in order and stops at the first failure.
func Execute(ctx context.Context, g Generator, h *document.Handle) error {
	stages := []func() error{
		func() error { return g.GetInstance(ctx) },
		func() error { return g.IsOperational(ctx) },
		func() error { return g.GetData(ctx) },
		func() error { return g.Generate(ctx, h) },
	}

	for _, stage := range stages {
		if err := stage(); err != nil {
			return err
		}
	}

	return nil
}
