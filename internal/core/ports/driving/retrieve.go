package driving

import (
	"context"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

// RetrieveService turns a query string into a ranked list of scored chunks.
type RetrieveService interface {
	// Retrieve embeds the query and returns up to topK chunks ordered by
	// score descending. topK <= 0 selects the configured default.
	Retrieve(ctx context.Context, query, namespace string, topK int) ([]domain.ScoredChunk, error)
}
