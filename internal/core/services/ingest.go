package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/clause-labs/retriva-cli/internal/chunker"
	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driving"
	"github.com/clause-labs/retriva-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService turns raw document text into indexed chunks.
// It owns no persistent state; re-running an ingestion with the same
// source prefix fully overwrites the previous run because chunk ids are
// deterministic from (prefix, index).
type IngestService struct {
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewIngestService creates a new ingestion service.
func NewIngestService(c *chunker.Chunker, embedder driven.EmbeddingService, store driven.VectorStore) *IngestService {
	return &IngestService{
		chunker:  c,
		embedder: embedder,
		store:    store,
	}
}

// Ingest chunks rawText, embeds every chunk in one batch, and upserts the
// entries into the namespace. Either all chunks are written or the call
// fails with the first encountered error; callers recover by re-ingesting.
func (s *IngestService) Ingest(ctx context.Context, rawText, sourcePrefix, namespace string) (driving.IngestResult, error) {
	logger.Section("Ingestion")

	if strings.TrimSpace(rawText) == "" {
		return driving.IngestResult{}, fmt.Errorf("%w: no text to ingest", domain.ErrInvalidInput)
	}
	if sourcePrefix == "" {
		return driving.IngestResult{}, fmt.Errorf("%w: source prefix is empty", domain.ErrInvalidInput)
	}
	if namespace == "" {
		return driving.IngestResult{}, fmt.Errorf("%w: namespace is empty", domain.ErrInvalidInput)
	}
	if s.embedder == nil {
		return driving.IngestResult{}, domain.ErrEmbeddingUnavailable
	}
	if s.store == nil {
		return driving.IngestResult{}, domain.ErrStoreUnavailable
	}

	windows := s.chunker.Chunk(rawText)
	logger.Debug("Chunked %d characters into %d windows", utf8.RuneCountInString(rawText), len(windows))

	// Window indexes are assigned before filtering so ids stay stable for
	// a given document regardless of whitespace-only tails.
	chunks := make([]domain.Chunk, 0, len(windows))
	for i, text := range windows {
		if text == "" {
			logger.Debug("Skipping empty window %d", i)
			continue
		}
		chunks = append(chunks, domain.Chunk{
			SourcePrefix: sourcePrefix,
			Index:        i,
			Text:         text,
		})
	}
	if len(chunks) == 0 {
		return driving.IngestResult{}, fmt.Errorf("%w: document contains only whitespace", domain.ErrInvalidInput)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	logger.Debug("Embedding %d chunks with %s", len(chunks), s.embedder.ModelName())
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return driving.IngestResult{}, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return driving.IngestResult{}, fmt.Errorf("%w: got %d vectors for %d chunks",
			domain.ErrProviderFailure, len(vectors), len(chunks))
	}

	entries := make([]domain.IndexedEntry, len(chunks))
	for i, c := range chunks {
		entries[i] = domain.IndexedEntry{
			ID:     c.ID(),
			Vector: vectors[i],
			Metadata: domain.ChunkMetadata{
				Text:   c.Text,
				Source: c.SourcePrefix,
			},
		}
	}

	written, err := s.store.Upsert(ctx, namespace, entries)
	if err != nil {
		return driving.IngestResult{}, fmt.Errorf("upsert chunks: %w", err)
	}
	logger.Info("Upserted %d chunks from %q into namespace %q", written, sourcePrefix, namespace)

	return driving.IngestResult{
		ChunksWritten: written,
		SourcePrefix:  sourcePrefix,
	}, nil
}

// IsInputError reports whether err is a caller mistake rather than an
// infrastructure failure. CLI adapters use it to pick exit behaviour.
func IsInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput)
}
