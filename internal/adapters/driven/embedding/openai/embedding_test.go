package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func embeddingHandler(t *testing.T, vectors map[string][]float64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		type datum struct {
			Embedding []float64 `json:"embedding"`
			Index     int       `json:"index"`
		}
		resp := struct {
			Data []datum `json:"data"`
		}{}
		// Answer out of order to exercise index-based reassembly.
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, datum{Embedding: vectors[req.Input[i]], Index: i})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key"})

	require.NoError(t, err)
	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestNewEmbeddingService_KnownModelDimensions(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key", Model: "text-embedding-3-large"})

	require.NoError(t, err)
	assert.Equal(t, 3072, svc.Dimensions())
}

func TestEmbed_RejectsEmptyText(t *testing.T) {
	calls := 0
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Embed(context.Background(), "   ")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, calls, "no provider call should be made for empty input")
}

func TestEmbed_ReturnsVector(t *testing.T) {
	server := newTestServer(t, embeddingHandler(t, map[string][]float64{
		"hello": {0.1, 0.2, 0.3},
	}))
	svc, err := NewEmbeddingService(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		Model:             "custom-model",
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)

	vec, err := svc.Embed(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedBatch_OrdersByIndex(t *testing.T) {
	server := newTestServer(t, embeddingHandler(t, map[string][]float64{
		"first":  {1, 0},
		"second": {0, 1},
	}))
	svc, err := NewEmbeddingService(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		Model:             "custom-model",
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)

	vecs, err := svc.EmbedBatch(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0}, vecs[0])
	assert.Equal(t, []float32{0, 1}, vecs[1])
}

func TestEmbedBatch_EmptyInputSlice(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key"})
	require.NoError(t, err)

	vecs, err := svc.EmbedBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestEmbedBatch_ProviderError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth"}}`))
	})
	svc, err := NewEmbeddingService(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{"hello"})

	require.ErrorIs(t, err, domain.ErrProviderFailure)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestEmbedBatch_MissingEmbedding(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	svc, err := NewEmbeddingService(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		RequestsPerSecond: 1000,
	})
	require.NoError(t, err)

	_, err = svc.EmbedBatch(context.Background(), []string{"hello"})

	require.ErrorIs(t, err, domain.ErrProviderFailure)
}

func TestPing(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	assert.Error(t, svc.Ping(context.Background()))
}
