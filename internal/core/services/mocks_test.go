package services

import (
	"context"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Vectors are looked up by text; unknown texts get the fallback vector.
type mockEmbeddingService struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	calls    int
}

func newMockEmbedder() *mockEmbeddingService {
	return &mockEmbeddingService{
		vectors:  make(map[string][]float32),
		fallback: []float32{1, 0},
	}
}

func (m *mockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			result[i] = v
		} else {
			result[i] = m.fallback
		}
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int { return 2 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockVectorStore implements driven.VectorStore with error injection.
type mockVectorStore struct {
	upserted  map[string][]domain.IndexedEntry
	results   []domain.ScoredChunk
	upsertErr error
	queryErr  error
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{upserted: make(map[string][]domain.IndexedEntry)}
}

func (m *mockVectorStore) Upsert(_ context.Context, namespace string, entries []domain.IndexedEntry) (int, error) {
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	m.upserted[namespace] = append(m.upserted[namespace], entries...)
	return len(entries), nil
}

func (m *mockVectorStore) Query(_ context.Context, _ string, _ []float32, topK int) ([]domain.ScoredChunk, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if topK > len(m.results) {
		return m.results, nil
	}
	return m.results[:topK], nil
}

func (m *mockVectorStore) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	answer   string
	chatErr  error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLMService) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.messages = messages
	m.opts = opts
	if m.chatErr != nil {
		return "", m.chatErr
	}
	if m.answer != "" {
		return m.answer, nil
	}
	return "mock answer", nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockHistoryStore implements driven.HistoryStore for testing.
type mockHistoryStore struct {
	saved     []domain.Interaction
	recent    []domain.Interaction
	saveErr   error
	recentErr error
}

func (m *mockHistoryStore) Save(_ context.Context, interaction domain.Interaction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, interaction)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, _ string, limit int) ([]domain.Interaction, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	if limit > len(m.recent) {
		return m.recent, nil
	}
	return m.recent[:limit], nil
}

func (m *mockHistoryStore) Close() error { return nil }
