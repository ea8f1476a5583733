// SPDX-FileCopyrightText: 2022 SAP SE or an SAP affiliate company and Gardener contributors.
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/awsgitops/awsgitops/pkg/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLister returns the next result set on every call and repeats the last one.
type fakeLister struct {
	mu      sync.Mutex
	results [][]Resource
	err     error
	calls   int
}

func (f *fakeLister) List(_ context.Context, _ string) ([]Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return nil, nil
	}
	i := f.calls - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i], nil
}

func resources(ids ...string) []Resource {
	out := make([]Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, Resource{ID: id, Data: map[string]any{"id": id}})
	}
	return out
}

func newTestBase(t *testing.T, lister Lister, config Config, opts ...Option) (*Base, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	opts = append([]Option{WithCategories("instance", "cluster"), WithReporter(rec)}, opts...)
	b, err := NewBase("rds", lister, config, opts...)
	require.NoError(t, err)
	return b, rec
}

func TestGetInstance(t *testing.T) {
	testCases := []struct {
		name      string
		resources []Resource
		pattern   string
		category  string
		wantID    string
		reason    Reason
	}{
		{
			name:      "exactly one match",
			resources: resources("prod-db-1", "staging-db-1"),
			pattern:   `^prod-db-\d+$`,
			category:  "instance",
			wantID:    "prod-db-1",
		},
		{
			name:      "pattern must match the whole identifier",
			resources: resources("prod-db-1", "prod-db-1-replica"),
			pattern:   `prod-db-\d+`,
			category:  "instance",
			wantID:    "prod-db-1",
		},
		{
			name:      "substring match is not a match",
			resources: resources("my-prod-db-1"),
			pattern:   `prod-db-\d+`,
			category:  "instance",
			reason:    NoMatch,
		},
		{
			name:     "empty list",
			pattern:  `.*`,
			category: "instance",
			reason:   NoMatch,
		},
		{
			name:      "ambiguous",
			resources: resources("prod-db-1", "prod-db-2"),
			pattern:   `prod-db-\d+`,
			category:  "cluster",
			reason:    AmbiguousMatch,
		},
		{
			name:      "invalid category",
			resources: resources("prod-db-1"),
			pattern:   `prod-db-1`,
			category:  "table",
			reason:    InvalidCategory,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lister := &fakeLister{results: [][]Resource{tc.resources}}
			b, rec := newTestBase(t, lister, Config{Category: tc.category, NamePattern: tc.pattern})

			err := b.GetInstance(context.Background())
			if tc.reason != "" {
				require.Error(t, err)
				assert.True(t, IsReason(err, tc.reason), "expected %s, got %v", tc.reason, err)
				assert.Equal(t, StateIdle, b.State())
				assert.Empty(t, b.ID())
				assert.Len(t, rec.Logs(SeverityError), 1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, b.ID())
			assert.Equal(t, tc.category, b.Category())
			assert.Equal(t, StateMatched, b.State())
		})
	}
}

func TestGetInstanceLogsMatches(t *testing.T) {
	lister := &fakeLister{results: [][]Resource{resources("prod-db-1", "prod-db-2")}}
	b, rec := newTestBase(t, lister, Config{Category: "instance", NamePattern: `prod-db-\d`})

	require.Error(t, b.GetInstance(context.Background()))
	logs := rec.Logs(SeverityError)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "prod-db-1")
	assert.Contains(t, logs[0], "prod-db-2")
}

func TestGetInstanceListFailure(t *testing.T) {
	lister := &fakeLister{err: errors.New("throttled")}
	b, _ := newTestBase(t, lister, Config{Category: "instance", NamePattern: `x`})

	err := b.GetInstance(context.Background())
	require.Error(t, err)
	assert.True(t, IsReason(err, ListFailed))
	assert.ErrorContains(t, err, "throttled")
}

func TestNewBaseInvalidConfig(t *testing.T) {
	_, err := NewBase("rds", &fakeLister{}, Config{Category: "instance"})
	require.Error(t, err)
	assert.True(t, IsReason(err, InvalidConfig))

	_, err = NewBase("rds", &fakeLister{}, Config{Category: "instance", NamePattern: `(`})
	require.Error(t, err)

	_, err = NewBase("rds", &fakeLister{}, Config{Category: "instance", NamePattern: "x",
		Targets: []Target{{TargetPath: []document.Path{{}}, Src: document.Path{"Endpoint"}}}})
	require.Error(t, err)
	assert.True(t, IsReason(err, InvalidConfig))
	assert.ErrorContains(t, err, "targetPath[0] must not be empty")

	_, err = NewBase("rds", &fakeLister{}, Config{
		Category:    "instance",
		NamePattern: "x",
		Targets:     []Target{{TargetName: []string{"host"}}},
	})
	require.Error(t, err)

	_, err = NewBase("rds", nil, Config{Category: "instance", NamePattern: "x"})
	require.Error(t, err)
}

func TestStageOrder(t *testing.T) {
	lister := &fakeLister{results: [][]Resource{resources("prod-db-1")}}
	b, _ := newTestBase(t, lister, Config{Category: "instance", NamePattern: `prod-db-1`})
	ctx := context.Background()
	h := document.NewHandle(document.New())

	assert.True(t, IsReason(b.IsOperational(ctx), StageOrder))
	assert.True(t, IsReason(b.GetData(ctx), StageOrder))
	assert.True(t, IsReason(b.Generate(ctx, h), StageOrder))

	_, ok := b.Snapshot()
	assert.False(t, ok)

	require.NoError(t, b.GetInstance(ctx))
	assert.True(t, IsReason(b.GetInstance(ctx), StageOrder), "a second match requires a reset")
	assert.True(t, IsReason(b.GetData(ctx), StageOrder))

	require.NoError(t, b.IsOperational(ctx))
	require.NoError(t, b.GetData(ctx))
	require.NoError(t, b.Generate(ctx, h))
	assert.Equal(t, StateGenerated, b.State())

	data, ok := b.Snapshot()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": "prod-db-1"}, data)
}

func TestIsOperational(t *testing.T) {
	notReady := func(_ context.Context, r Resource) error {
		if r.Data["status"] != "available" {
			return errors.New("status is " + r.Data["status"].(string))
		}
		return nil
	}
	lister := &fakeLister{results: [][]Resource{{{ID: "db", Data: map[string]any{"status": "creating"}}}}}
	ctx := context.Background()

	b, _ := newTestBase(t, lister, Config{Category: "instance", NamePattern: "db"}, WithOperationalCheck(notReady))
	require.NoError(t, b.GetInstance(ctx))
	require.NoError(t, b.IsOperational(ctx), "check only runs when required")

	b, rec := newTestBase(t, lister, Config{Category: "instance", NamePattern: "db", RequireOperational: true},
		WithOperationalCheck(notReady))
	require.NoError(t, b.GetInstance(ctx))
	err := b.IsOperational(ctx)
	require.Error(t, err)
	assert.True(t, IsReason(err, NotOperational))
	assert.ErrorContains(t, err, "status is creating")
	assert.Equal(t, StateMatched, b.State())
	assert.True(t, IsReason(b.GetData(ctx), StageOrder), "a failed check short-circuits later stages")
	assert.NotEmpty(t, rec.Logs(SeverityError))
}

func TestGetDataResourceVanished(t *testing.T) {
	lister := &fakeLister{results: [][]Resource{
		resources("prod-db-1", "staging-db-1"),
		resources("staging-db-1"),
	}}
	b, _ := newTestBase(t, lister, Config{Category: "instance", NamePattern: `prod-db-\d+`})
	ctx := context.Background()

	require.NoError(t, b.GetInstance(ctx))
	require.NoError(t, b.IsOperational(ctx))
	err := b.GetData(ctx)
	require.Error(t, err)
	assert.True(t, IsReason(err, ResourceVanished))
	assert.Equal(t, 2, lister.calls)

	_, ok := b.Snapshot()
	assert.False(t, ok)
}

func TestGetDataCopiesSnapshot(t *testing.T) {
	data := map[string]any{"Endpoint": map[string]any{"Address": "x.example.com"}}
	lister := &fakeLister{results: [][]Resource{{{ID: "db", Data: data}}}}
	b, _ := newTestBase(t, lister, Config{Category: "instance", NamePattern: "db"})
	ctx := context.Background()

	require.NoError(t, b.GetInstance(ctx))
	require.NoError(t, b.IsOperational(ctx))
	require.NoError(t, b.GetData(ctx))

	data["Endpoint"].(map[string]any)["Address"] = "changed"
	snapshot, ok := b.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "x.example.com", snapshot["Endpoint"].(map[string]any)["Address"])
}

func TestReset(t *testing.T) {
	lister := &fakeLister{results: [][]Resource{resources("prod-db-1")}}
	b, _ := newTestBase(t, lister, Config{Category: "instance", NamePattern: `prod-db-1`})
	ctx := context.Background()

	require.NoError(t, Execute(ctx, b, document.NewHandle(document.New())))
	b.Reset()

	assert.Equal(t, StateIdle, b.State())
	assert.Empty(t, b.ID())
	assert.Empty(t, b.Category())
	_, ok := b.Snapshot()
	assert.False(t, ok)

	require.NoError(t, b.GetInstance(ctx))
}
