package driving

import (
	"context"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

// AnswerOptions configures a grounded question.
type AnswerOptions struct {
	// TopK overrides the configured retrieval depth when positive.
	TopK int

	// Reference is an optional primary document prepended to the context.
	Reference string

	// Temperature is passed through to the chat model when set.
	// Nil means the service default; an explicit zero requests
	// deterministic sampling.
	Temperature *float64
}

// AnswerService answers a natural-language question grounded in retrieved
// chunks plus recent conversation history.
type AnswerService interface {
	// Answer retrieves chunks for the query, assembles the grounding
	// context, calls the chat model, and records the interaction.
	Answer(ctx context.Context, query, namespace string, opts AnswerOptions) (domain.Answer, error)
}
