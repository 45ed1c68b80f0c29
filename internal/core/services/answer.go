package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driving"
	"github.com/clause-labs/retriva-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// DefaultTemperature keeps answers close to the retrieved text.
const DefaultTemperature = 0.1

// systemPreamble instructs the model to stay inside the provided context.
const systemPreamble = "You are an assistant answering questions about the ingested documents. " +
	"Use the provided context to answer the user's question. " +
	"If the answer isn't found, say so or provide the best reasoning you can."

// AnswerService answers questions grounded in retrieved chunks plus
// recent conversation history.
type AnswerService struct {
	retriever    driving.RetrieveService
	llm          driven.LLMService
	history      driven.HistoryStore
	historyTurns int
}

// NewAnswerService creates a new answer service.
// The history store is optional; when nil, answers are generated without
// conversational context and interactions are not recorded.
func NewAnswerService(
	retriever driving.RetrieveService,
	llm driven.LLMService,
	history driven.HistoryStore,
	historyTurns int,
) *AnswerService {
	if historyTurns <= 0 {
		historyTurns = domain.DefaultHistoryTurns
	}
	return &AnswerService{
		retriever:    retriever,
		llm:          llm,
		history:      history,
		historyTurns: historyTurns,
	}
}

// Answer retrieves chunks for the query, assembles the grounding context,
// calls the chat model, and records the interaction.
func (s *AnswerService) Answer(ctx context.Context, query, namespace string, opts driving.AnswerOptions) (domain.Answer, error) {
	logger.Section("Answer")

	if strings.TrimSpace(query) == "" {
		return domain.Answer{}, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return domain.Answer{}, domain.ErrLLMUnavailable
	}

	retrieved, err := s.retriever.Retrieve(ctx, query, namespace, opts.TopK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve context: %w", err)
	}

	sections := make([]Section, 0, 2)
	if opts.Reference != "" {
		sections = append(sections, Section{Label: "Reference Document", Content: opts.Reference})
	}
	if s.history != nil {
		interactions, err := s.history.Recent(ctx, namespace, s.historyTurns)
		if err != nil {
			// History is optional context; the answer proceeds without it.
			logger.Warn("Loading history failed: %v", err)
		} else if len(interactions) > 0 {
			sections = append(sections, Section{Label: "Previous Interactions", Content: FormatHistory(interactions)})
		}
	}

	groundingContext := AssembleContext(retrieved, sections...)
	logger.Debug("Assembled context: %d chars, %d chunks, %d sections",
		len(groundingContext), len(retrieved), len(sections))

	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPreamble + "\nCONTEXT: " + groundingContext},
		{Role: "user", Content: query},
	}

	text, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: &temperature})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	if s.history != nil {
		interaction := domain.Interaction{
			ID:        uuid.New().String(),
			Namespace: namespace,
			Prompt:    query,
			Answer:    text,
			CreatedAt: time.Now(),
		}
		if err := s.history.Save(ctx, interaction); err != nil {
			logger.Warn("Saving interaction failed: %v", err)
		}
	}

	return domain.Answer{
		Text:      text,
		Retrieved: retrieved,
		Context:   groundingContext,
	}, nil
}
