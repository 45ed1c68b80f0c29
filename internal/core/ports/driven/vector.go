package driven

import (
	"context"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

// VectorStore persists embeddings in a namespaced similarity index and
// answers top-K nearest-neighbour queries by cosine similarity.
//
// Namespaces are flat partition keys separating unrelated corpora.
// A namespace that was never written to behaves as empty: queries return
// zero matches rather than an error.
type VectorStore interface {
	// Upsert writes entries into the namespace, overwriting records that
	// share an id. It returns the number of entries written. Safe to call
	// repeatedly with the same ids.
	Upsert(ctx context.Context, namespace string, entries []domain.IndexedEntry) (int, error)

	// Query returns up to topK entries nearest to the vector, ordered by
	// score descending, each carrying back its stored text metadata.
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]domain.ScoredChunk, error)

	// Close releases resources.
	Close() error
}
