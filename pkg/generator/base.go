// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/awsgitops/awsgitops/pkg/document"
)

// OperationalFunc checks the readiness of a matched resource.
type OperationalFunc func(ctx context.Context, r Resource) error

// options contains the options of a Base generator.
type options struct {
	categories  []string
	operational OperationalFunc
	reporter    Reporter
}

// Option is a function that sets an option on a Base generator.
type Option func(*options)

// WithCategories sets the categories the generator accepts.
func WithCategories(categories ...string) Option {
	return func(o *options) {
		o.categories = categories
	}
}

// WithOperationalCheck sets the readiness check run when the configuration requires it.
func WithOperationalCheck(fn OperationalFunc) Option {
	return func(o *options) {
		o.operational = fn
	}
}

// WithReporter sets the reporter receiving status updates and log events.
func WithReporter(reporter Reporter) Option {
	return func(o *options) {
		o.reporter = reporter
	}
}

// Base implements the generator lifecycle on top of a Lister.
// Resource types embed it and contribute their categories and readiness check.
// A Base is not safe for concurrent use; distinct generators may run in parallel.
type Base struct {
	name   string
	lister Lister
	config Config
	options

	state    State
	category string
	id       string
	matched  Resource
	data     map[string]any
}

var _ Generator = &Base{}

// NewBase returns a Base generator named name listing resources with lister.
func NewBase(name string, lister Lister, config Config, opts ...Option) (*Base, error) {
	if lister == nil {
		return nil, fmt.Errorf("%s: lister must not be nil", name)
	}
	if err := config.Validate(); err != nil {
		return nil, newError(name, InvalidConfig, "invalid configuration", err)
	}

	b := &Base{
		name:   name,
		lister: lister,
		config: config,
	}
	for _, opt := range opts {
		opt(&b.options)
	}
	if b.reporter == nil {
		b.reporter = Discard
	}

	return b, nil
}

// Name returns the name of the generator.
func (b *Base) Name() string {
	return b.name
}

// State returns the lifecycle state.
func (b *Base) State() State {
	return b.state
}

// Category returns the category of the matched resource.
func (b *Base) Category() string {
	return b.category
}

// ID returns the identifier of the matched resource, empty before a match.
func (b *Base) ID() string {
	return b.id
}

// Snapshot returns the captured resource data. It is only valid once GetData succeeded.
func (b *Base) Snapshot() (map[string]any, bool) {
	if b.state < StateFetched {
		return nil, false
	}
	return b.data, true
}

// GetInstance lists the resources of the configured category and keeps the
// only one whose identifier fully matches the configured pattern.
func (b *Base) GetInstance(ctx context.Context) error {
	if err := b.expect(StageGetInstance, StateIdle); err != nil {
		return err
	}
	b.reporter.SetStatus(b.name, StageGetInstance, "Retrieving resource")

	category := b.config.Category
	if !b.validCategory(category) {
		b.reporter.Log(b.name, SeverityError, fmt.Sprintf("%q is not a valid %s category. Try %s",
			category, b.name, quoteList(b.categories)))
		b.reporter.SetStatus(b.name, StageGetInstance, "Invalid category")
		return newError(b.name, InvalidCategory, fmt.Sprintf("invalid category %q", category), nil)
	}

	re, err := compilePattern(b.config.NamePattern)
	if err != nil {
		b.reporter.Log(b.name, SeverityError, err.Error())
		b.reporter.SetStatus(b.name, StageGetInstance, "Invalid name pattern")
		return newError(b.name, InvalidConfig, "invalid name pattern", err)
	}

	resources, err := b.lister.List(ctx, category)
	if err != nil {
		b.reporter.Log(b.name, SeverityError, fmt.Sprintf("Failed to list %s %ss: %s", b.name, category, err))
		b.reporter.SetStatus(b.name, StageGetInstance, "Failed to list resources")
		return newError(b.name, ListFailed, fmt.Sprintf("failed to list %ss", category), err)
	}

	var matches []Resource
	for _, r := range resources {
		if re.MatchString(r.ID) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 1:
	case 0:
		b.reporter.Log(b.name, SeverityError, fmt.Sprintf("No %s %s names matched pattern %s",
			b.name, category, b.config.NamePattern))
		b.reporter.SetStatus(b.name, StageGetInstance, "Failed to match a resource")
		return newError(b.name, NoMatch, fmt.Sprintf("no %s matched pattern %s", category, b.config.NamePattern), nil)
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		b.reporter.Log(b.name, SeverityError, fmt.Sprintf("Multiple %s %ss matched: %v", b.name, category, ids))
		b.reporter.SetStatus(b.name, StageGetInstance, "Failed to match a resource")
		return newError(b.name, AmbiguousMatch, fmt.Sprintf("%d %ss matched pattern %s: %v",
			len(ids), category, b.config.NamePattern, ids), nil)
	}

	b.category = category
	b.id = matches[0].ID
	b.matched = matches[0]
	b.state = StateMatched
	b.reporter.SetStatus(b.name, StageGetInstance, fmt.Sprintf("Matched %s %s", category, b.id))

	return nil
}

// IsOperational runs the readiness check of the resource type against the
// matched resource when the configuration requires it.
func (b *Base) IsOperational(ctx context.Context) error {
	if err := b.expect(StageOperational, StateMatched); err != nil {
		return err
	}

	if !b.config.RequireOperational || b.operational == nil {
		b.reporter.SetStatus(b.name, StageOperational, "N/A")
		b.state = StateOperational
		return nil
	}

	b.reporter.SetStatus(b.name, StageOperational, "Checking readiness")
	if err := b.operational(ctx, b.matched); err != nil {
		b.reporter.Log(b.name, SeverityError, fmt.Sprintf("%s %s is not operational: %s", b.category, b.id, err))
		b.reporter.SetStatus(b.name, StageOperational, "Not operational")
		return newError(b.name, NotOperational, fmt.Sprintf("%s %s is not operational", b.category, b.id), err)
	}

	b.reporter.SetStatus(b.name, StageOperational, "Operational")
	b.state = StateOperational

	return nil
}

// GetData lists the resources again and captures the description of the matched one.
// The resource must still exist.
func (b *Base) GetData(ctx context.Context) error {
	if err := b.expect(StageGetData, StateOperational); err != nil {
		return err
	}
	b.reporter.SetStatus(b.name, StageGetData, "Retrieving data")

	resources, err := b.lister.List(ctx, b.category)
	if err != nil {
		b.reporter.Log(b.name, SeverityError, fmt.Sprintf("Failed to list %s %ss: %s", b.name, b.category, err))
		b.reporter.SetStatus(b.name, StageGetData, "Failed to list resources")
		return newError(b.name, ListFailed, fmt.Sprintf("failed to list %ss", b.category), err)
	}

	for _, r := range resources {
		if r.ID == b.id {
			b.data = deepCopy(r.Data).(map[string]any)
			b.state = StateFetched
			b.reporter.SetStatus(b.name, StageGetData, "Successful")
			return nil
		}
	}

	b.reporter.Log(b.name, SeverityError, fmt.Sprintf("%s %s %s disappeared before its data could be retrieved",
		b.name, b.category, b.id))
	b.reporter.SetStatus(b.name, StageGetData, "Resource disappeared")

	return newError(b.name, ResourceVanished, fmt.Sprintf("%s %s disappeared", b.category, b.id), nil)
}

// Generate writes the configured targets into the document.
// The document lock is held for the whole call.
func (b *Base) Generate(_ context.Context, h *document.Handle) error {
	if b.state != StateGenerated {
		if err := b.expect(StageGenerate, StateFetched); err != nil {
			return err
		}
	}

	return h.Apply(func(doc *document.Document) error {
		b.reporter.SetStatus(b.name, StageGenerate, "Generating yaml")

		warn := func(msg string) {
			b.reporter.Log(b.name, SeverityWarning, msg)
		}
		if err := applyTargets(doc, b.config.Targets, b.data, warn); err != nil {
			err.Generator = b.name
			b.reporter.Log(b.name, SeverityError, err.Message)
			if err.Reason == TargetNotFound {
				b.reporter.SetStatus(b.name, StageGenerate, "Failed to locate target")
			} else {
				b.reporter.SetStatus(b.name, StageGenerate, "Failed to write target")
			}
			return err
		}

		b.state = StateGenerated
		b.reporter.SetStatus(b.name, StageGenerate, "Successful")
		return nil
	})
}

// Reset returns the generator to the idle state.
func (b *Base) Reset() {
	b.state = StateIdle
	b.category = ""
	b.id = ""
	b.matched = Resource{}
	b.data = nil
}

func (b *Base) expect(stage Stage, want State) error {
	if b.state == want {
		return nil
	}
	return newError(b.name, StageOrder,
		fmt.Sprintf("stage %s requires state %s, generator is %s", stage, want, b.state), nil)
}

func (b *Base) validCategory(category string) bool {
	for _, c := range b.categories {
		if c == category {
			return true
		}
	}
	return false
}

func quoteList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, i := range items {
		quoted = append(quoted, fmt.Sprintf("'%s'", i))
	}
	return strings.Join(quoted, " or ")
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	}
	return v
}
