package driving

import "context"

// IngestResult reports what one ingestion call wrote.
type IngestResult struct {
	// ChunksWritten is the number of chunks embedded and upserted.
	ChunksWritten int

	// SourcePrefix is the id namespace the chunks were written under.
	SourcePrefix string
}

// IngestService turns a raw document into indexed, queryable chunks.
type IngestService interface {
	// Ingest chunks rawText, embeds each chunk, and upserts the results
	// into the namespace. Either all chunks are written or the call fails
	// with the first encountered error; re-running with the same prefix
	// fully overwrites because chunk ids are deterministic.
	Ingest(ctx context.Context, rawText, sourcePrefix, namespace string) (IngestResult, error)
}
