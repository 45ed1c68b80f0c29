package domain

import (
	"fmt"
	"time"
)

// Document is a source text reduced to a flat string plus the prefix that
// namespaces its chunk ids. Origin (file, pasted text, PDF, URL) is resolved
// before a Document is built.
type Document struct {
	// SourcePrefix identifies the originating document or ingestion batch.
	// Combined with a chunk index it forms a globally unique chunk id.
	SourcePrefix string

	// Text is the full flattened text content before chunking.
	Text string

	// Origin records where the text came from ("file", "text", "pdf", "url").
	Origin string

	// IngestedAt is when the document entered the pipeline.
	IngestedAt time.Time
}

// Chunk is a contiguous, possibly overlapping window of a source document.
// Chunks are generated once per ingestion and are immutable; updates happen
// by re-ingesting under the same prefix.
type Chunk struct {
	// SourcePrefix is the id namespace inherited from the document.
	SourcePrefix string

	// Index is the zero-based position within the document's chunk sequence.
	Index int

	// Text is the trimmed window content.
	Text string
}

// ID returns the deterministic chunk identifier "{prefix}-{index}".
func (c Chunk) ID() string {
	return fmt.Sprintf("%s-%d", c.SourcePrefix, c.Index)
}

// ChunkMetadata is the typed metadata persisted alongside a vector.
// It replaces the untyped payload maps the store API speaks natively.
type ChunkMetadata struct {
	// Text is the chunk content, carried back verbatim on query.
	Text string

	// Source is the source prefix of the originating ingestion.
	Source string
}

// IndexedEntry is a persisted vector store record.
type IndexedEntry struct {
	// ID is the unique record key within a namespace.
	ID string

	// Vector is the embedding for the chunk text.
	Vector []float32

	// Metadata carries the chunk text and provenance.
	Metadata ChunkMetadata
}

// Validate checks an entry is well formed before it reaches the store.
func (e IndexedEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: entry id is empty", ErrInvalidInput)
	}
	if len(e.Vector) == 0 {
		return fmt.Errorf("%w: entry %s has no vector", ErrInvalidInput, e.ID)
	}
	if e.Metadata.Text == "" {
		return fmt.Errorf("%w: entry %s has no text metadata", ErrInvalidInput, e.ID)
	}
	return nil
}
