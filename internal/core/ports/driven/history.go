package driven

import (
	"context"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

// HistoryStore persists prompt/answer interactions so recent conversation
// turns can be folded back into the grounding context.
type HistoryStore interface {
	// Save stores an interaction.
	Save(ctx context.Context, interaction domain.Interaction) error

	// Recent returns up to limit interactions for a namespace,
	// oldest first so they read as a transcript.
	Recent(ctx context.Context, namespace string, limit int) ([]domain.Interaction, error)

	// Close releases resources.
	Close() error
}
