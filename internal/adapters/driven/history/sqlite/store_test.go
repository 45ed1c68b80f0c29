package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same directory must not re-apply migrations.
	again, err := NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}

func TestSave_And_Recent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.Save(ctx, domain.Interaction{
			ID:        fmt.Sprintf("turn-%d", i),
			Namespace: "default",
			Prompt:    fmt.Sprintf("question %d", i),
			Answer:    fmt.Sprintf("answer %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	interactions, err := store.Recent(ctx, "default", 10)
	require.NoError(t, err)
	require.Len(t, interactions, 3)

	// Oldest first so the slice reads as a transcript.
	assert.Equal(t, "question 0", interactions[0].Prompt)
	assert.Equal(t, "question 2", interactions[2].Prompt)
	assert.Equal(t, "answer 2", interactions[2].Answer)
}

func TestRecent_LimitKeepsNewest(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, domain.Interaction{
			ID:        fmt.Sprintf("turn-%d", i),
			Namespace: "default",
			Prompt:    fmt.Sprintf("question %d", i),
			Answer:    "answer",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	interactions, err := store.Recent(ctx, "default", 2)
	require.NoError(t, err)
	require.Len(t, interactions, 2)
	assert.Equal(t, "question 3", interactions[0].Prompt)
	assert.Equal(t, "question 4", interactions[1].Prompt)
}

func TestRecent_NamespaceIsolation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Interaction{
		ID: "a", Namespace: "alpha", Prompt: "p", Answer: "a",
	}))
	require.NoError(t, store.Save(ctx, domain.Interaction{
		ID: "b", Namespace: "beta", Prompt: "p", Answer: "a",
	}))

	alpha, err := store.Recent(ctx, "alpha", 10)
	require.NoError(t, err)
	assert.Len(t, alpha, 1)

	missing, err := store.Recent(ctx, "gamma", 10)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestSave_UpsertsByID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Interaction{
		ID: "turn-1", Namespace: "default", Prompt: "first", Answer: "one",
	}))
	require.NoError(t, store.Save(ctx, domain.Interaction{
		ID: "turn-1", Namespace: "default", Prompt: "revised", Answer: "two",
	}))

	interactions, err := store.Recent(ctx, "default", 10)
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, "revised", interactions[0].Prompt)
	assert.Equal(t, "two", interactions[0].Answer)
}

func TestSave_RejectsEmptyID(t *testing.T) {
	store := setupTestStore(t)

	err := store.Save(context.Background(), domain.Interaction{Namespace: "default"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSave_FillsCreatedAt(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Interaction{
		ID: "turn-1", Namespace: "default", Prompt: "p", Answer: "a",
	}))

	interactions, err := store.Recent(ctx, "default", 1)
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.False(t, interactions[0].CreatedAt.IsZero())
}
