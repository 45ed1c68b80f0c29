package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

func entry(id string, vector []float32, text string) domain.IndexedEntry {
	return domain.IndexedEntry{
		ID:       id,
		Vector:   vector,
		Metadata: domain.ChunkMetadata{Text: text, Source: "doc"},
	}
}

func TestUpsert_WritesEntries(t *testing.T) {
	store := NewStore(2)
	ctx := context.Background()

	n, err := store.Upsert(ctx, "ns", []domain.IndexedEntry{
		entry("doc-0", []float32{1, 0}, "first"),
		entry("doc-1", []float32{0, 1}, "second"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.Count("ns"))
}

func TestUpsert_OverwritesById(t *testing.T) {
	store := NewStore(2)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "ns", []domain.IndexedEntry{entry("doc-0", []float32{1, 0}, "old")})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, "ns", []domain.IndexedEntry{entry("doc-0", []float32{1, 0}, "new")})
	require.NoError(t, err)

	assert.Equal(t, 1, store.Count("ns"))

	results, err := store.Query(ctx, "ns", []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new", results[0].Text)
}

func TestUpsert_EmptyNamespace(t *testing.T) {
	store := NewStore(2)

	_, err := store.Upsert(context.Background(), "", []domain.IndexedEntry{entry("doc-0", []float32{1, 0}, "x")})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	store := NewStore(3)

	_, err := store.Upsert(context.Background(), "ns", []domain.IndexedEntry{entry("doc-0", []float32{1, 0}, "x")})

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestQuery_OrdersByScoreDescending(t *testing.T) {
	store := NewStore(2)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "ns", []domain.IndexedEntry{
		entry("doc-0", []float32{1, 0}, "east"),
		entry("doc-1", []float32{0, 1}, "north"),
		entry("doc-2", []float32{1, 1}, "northeast"),
	})
	require.NoError(t, err)

	results, err := store.Query(ctx, "ns", []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "east", results[0].Text)
	assert.Equal(t, "northeast", results[1].Text)
	assert.Equal(t, "north", results[2].Text)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score)
	}
}

func TestQuery_RespectsTopK(t *testing.T) {
	store := NewStore(2)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "ns", []domain.IndexedEntry{
		entry("doc-0", []float32{1, 0}, "a"),
		entry("doc-1", []float32{0.9, 0.1}, "b"),
		entry("doc-2", []float32{0.8, 0.2}, "c"),
	})
	require.NoError(t, err)

	results, err := store.Query(ctx, "ns", []float32{1, 0}, 2)

	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestQuery_FewerEntriesThanTopK(t *testing.T) {
	store := NewStore(2)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "ns", []domain.IndexedEntry{entry("doc-0", []float32{1, 0}, "only")})
	require.NoError(t, err)

	results, err := store.Query(ctx, "ns", []float32{1, 0}, 3)

	require.NoError(t, err)
	// Not padded to topK.
	require.Len(t, results, 1)
	assert.Equal(t, "only", results[0].Text)
}

func TestQuery_MissingNamespaceIsEmpty(t *testing.T) {
	store := NewStore(2)

	results, err := store.Query(context.Background(), "never-written", []float32{1, 0}, 3)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_EmptyVector(t *testing.T) {
	store := NewStore(2)

	_, err := store.Query(context.Background(), "ns", nil, 3)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuery_CarriesSourceMetadata(t *testing.T) {
	store := NewStore(2)
	ctx := context.Background()

	e := entry("lexdoc-0", []float32{1, 0}, "Bulgarian LLC formation requires...")
	e.Metadata.Source = "lexdoc"
	_, err := store.Upsert(ctx, "ns", []domain.IndexedEntry{e})
	require.NoError(t, err)

	results, err := store.Query(ctx, "ns", []float32{1, 0}, 3)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "lexdoc", results[0].Source)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
}
