package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/schema-scout/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStoreAtPath(filepath.Join(t.TempDir(), "history.duckdb"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := &models.HistoryEntry{
		SchemaFile:     "schema.json",
		Query:          "find usr orders",
		CorrectedQuery: "find user orders",
		OutputFormat:   "json",
		Threshold:      0.1,
		TableCount:     2,
		TopScore:       0.85,
		DurationMs:     12,
	}
	require.NoError(t, store.Record(ctx, entry))

	// ID and timestamp are assigned on insert.
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, "schema.json", got.SchemaFile)
	assert.Equal(t, "find usr orders", got.Query)
	assert.Equal(t, "find user orders", got.CorrectedQuery)
	assert.Equal(t, "json", got.OutputFormat)
	assert.InDelta(t, 0.1, got.Threshold, 1e-9)
	assert.Equal(t, 2, got.TableCount)
	assert.InDelta(t, 0.85, got.TopScore, 1e-9)
}

func TestRecent_OrderAndLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		err := store.Record(ctx, &models.HistoryEntry{
			SchemaFile:   "schema.json",
			Query:        "query",
			OutputFormat: "json",
			Threshold:    0.1,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i-1].CreatedAt.After(entries[i].CreatedAt),
			"entries must be newest first")
	}
}

func TestRecent_Empty(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.Record(ctx, &models.HistoryEntry{
		SchemaFile: "a.json", Query: "q", OutputFormat: "json",
	}))
	require.NoError(t, store.Record(ctx, &models.HistoryEntry{
		SchemaFile: "b.json", Query: "q", OutputFormat: "yaml",
	}))

	n, err = store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.duckdb")

	store, err := NewStoreAtPath(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), &models.HistoryEntry{
		SchemaFile: "schema.json", Query: "orders", OutputFormat: "json",
	}))
	require.NoError(t, store.Close())

	reopened, err := NewStoreAtPath(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
