package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/legalease-cli/internal/core/ports/driven"
)

func newTestRunStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := NewRunStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRun(id string, started time.Time) driven.Run {
	return driven.Run{
		ID:         id,
		Kind:       driven.RunKindBuild,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Documents:  4,
		Sections:   120,
		Chunks:     640,
	}
}

func TestRunStore(t *testing.T) {
	ctx := context.Background()

	t.Run("record and list", func(t *testing.T) {
		store := newTestRunStore(t)
		started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, store.Record(ctx, testRun("run-1", started)))

		runs, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 1)

		got := runs[0]
		assert.Equal(t, "run-1", got.ID)
		assert.Equal(t, driven.RunKindBuild, got.Kind)
		assert.Equal(t, 4, got.Documents)
		assert.Equal(t, 120, got.Sections)
		assert.Equal(t, 640, got.Chunks)
		assert.Empty(t, got.Error)
		assert.True(t, got.StartedAt.Equal(started))
	})

	t.Run("lists most recent first", func(t *testing.T) {
		store := newTestRunStore(t)
		base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

		require.NoError(t, store.Record(ctx, testRun("old", base)))
		require.NoError(t, store.Record(ctx, testRun("new", base.Add(time.Hour))))
		require.NoError(t, store.Record(ctx, testRun("mid", base.Add(30*time.Minute))))

		runs, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "new", runs[0].ID)
		assert.Equal(t, "mid", runs[1].ID)
		assert.Equal(t, "old", runs[2].ID)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		store := newTestRunStore(t)
		base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		for i, id := range []string{"a", "b", "c"} {
			require.NoError(t, store.Record(ctx, testRun(id, base.Add(time.Duration(i)*time.Minute))))
		}

		runs, err := store.List(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})

	t.Run("records failures", func(t *testing.T) {
		store := newTestRunStore(t)
		run := testRun("failed", time.Now().UTC())
		run.Kind = driven.RunKindIndex
		run.Error = "encoder unreachable"
		require.NoError(t, store.Record(ctx, run))

		runs, err := store.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, driven.RunKindIndex, runs[0].Kind)
		assert.Equal(t, "encoder unreachable", runs[0].Error)
	})

	t.Run("empty store lists nothing", func(t *testing.T) {
		store := newTestRunStore(t)
		runs, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})

	t.Run("reopening keeps history", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewRunStore(dir)
		require.NoError(t, err)
		require.NoError(t, store.Record(ctx, testRun("persisted", time.Now().UTC())))
		require.NoError(t, store.Close())

		reopened, err := NewRunStore(dir)
		require.NoError(t, err)
		defer reopened.Close()

		runs, err := reopened.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "persisted", runs[0].ID)
	})
}
