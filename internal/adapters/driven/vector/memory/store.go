// Package memory provides an in-memory vector store using brute-force
// cosine similarity. It backs tests and offline use.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is an in-memory implementation of driven.VectorStore.
// Records are keyed by id within a namespace; upserting an existing id
// overwrites it. A namespace never written to behaves as empty.
type Store struct {
	mu        sync.RWMutex
	dimension int
	// entries[namespace][id]; order[namespace] preserves first-insertion
	// order so score ties break stably.
	entries map[string]map[string]domain.IndexedEntry
	order   map[string][]string
}

// NewStore creates an in-memory vector store for vectors of the given
// dimension. dimension <= 0 disables the dimension check.
func NewStore(dimension int) *Store {
	return &Store{
		dimension: dimension,
		entries:   make(map[string]map[string]domain.IndexedEntry),
		order:     make(map[string][]string),
	}
}

// Upsert writes entries into the namespace, overwriting by id.
func (s *Store) Upsert(_ context.Context, namespace string, entries []domain.IndexedEntry) (int, error) {
	if namespace == "" {
		return 0, fmt.Errorf("%w: namespace is empty", domain.ErrInvalidInput)
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, err
		}
		if s.dimension > 0 && len(e.Vector) != s.dimension {
			return 0, fmt.Errorf("%w: entry %s has dimension %d, index expects %d",
				domain.ErrDimensionMismatch, e.ID, len(e.Vector), s.dimension)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.entries[namespace]
	if !ok {
		ns = make(map[string]domain.IndexedEntry)
		s.entries[namespace] = ns
	}
	for _, e := range entries {
		if _, exists := ns[e.ID]; !exists {
			s.order[namespace] = append(s.order[namespace], e.ID)
		}
		ns[e.ID] = e
	}
	return len(entries), nil
}

// Query returns up to topK entries nearest to the vector by cosine
// similarity, ordered by score descending. Ties break by insertion order.
func (s *Store) Query(_ context.Context, namespace string, vector []float32, topK int) ([]domain.ScoredChunk, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: query vector is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ns, ok := s.entries[namespace]
	if !ok {
		// Missing namespace is an empty result, not an error.
		return []domain.ScoredChunk{}, nil
	}

	type scored struct {
		rank  int
		score float64
		entry domain.IndexedEntry
	}
	candidates := make([]scored, 0, len(ns))
	for rank, id := range s.order[namespace] {
		e := ns[id]
		candidates = append(candidates, scored{rank: rank, score: cosine(e.Vector, vector), entry: e})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].rank < candidates[j].rank
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}
	results := make([]domain.ScoredChunk, 0, topK)
	for _, c := range candidates[:topK] {
		results = append(results, domain.ScoredChunk{
			Text:   c.entry.Metadata.Text,
			Source: c.entry.Metadata.Source,
			Score:  c.score,
		})
	}
	return results, nil
}

// Count returns the number of entries stored in a namespace.
func (s *Store) Count(namespace string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[namespace])
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
