// Package pinecone provides a vector store adapter using the Pinecone REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the Pinecone store.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// IndexHost is the index endpoint, e.g.
	// https://my-index-abc123.svc.us-east-1-aws.pinecone.io (required).
	IndexHost string

	// Dimension is the expected vector size. When positive, mismatched
	// vectors are rejected locally before the write is attempted.
	Dimension int

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a minimal REST client to a Pinecone index.
// Records are keyed by id within a namespace; upserts overwrite.
type Store struct {
	client    *http.Client
	indexHost string
	apiKey    string
	dimension int
}

// upsertRequest is the Pinecone /vectors/upsert request format.
type upsertRequest struct {
	Vectors   []vectorRecord `json:"vectors"`
	Namespace string         `json:"namespace"`
}

// vectorRecord is the Pinecone wire representation of one entry.
type vectorRecord struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata recordMetadata `json:"metadata"`
}

// recordMetadata is the typed metadata payload.
type recordMetadata struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// upsertResponse is the Pinecone /vectors/upsert response format.
type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

// queryRequest is the Pinecone /query request format.
type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
	Namespace       string    `json:"namespace"`
}

// queryResponse is the Pinecone /query response format.
type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata recordMetadata `json:"metadata"`
	} `json:"matches"`
}

// errorResponse is the Pinecone error body.
type errorResponse struct {
	Message string `json:"message"`
}

// NewStore creates a new Pinecone-backed vector store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.IndexHost == "" {
		return nil, fmt.Errorf("pinecone: index host is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		indexHost: cfg.IndexHost,
		apiKey:    cfg.APIKey,
		dimension: cfg.Dimension,
	}, nil
}

// Upsert writes entries into the namespace, overwriting records that share
// an id. Returns the count reported by the index.
func (s *Store) Upsert(ctx context.Context, namespace string, entries []domain.IndexedEntry) (int, error) {
	if namespace == "" {
		return 0, fmt.Errorf("%w: namespace is empty", domain.ErrInvalidInput)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	vectors := make([]vectorRecord, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, err
		}
		if s.dimension > 0 && len(e.Vector) != s.dimension {
			return 0, fmt.Errorf("%w: entry %s has dimension %d, index expects %d",
				domain.ErrDimensionMismatch, e.ID, len(e.Vector), s.dimension)
		}
		vectors[i] = vectorRecord{
			ID:     e.ID,
			Values: e.Vector,
			Metadata: recordMetadata{
				Text:   e.Metadata.Text,
				Source: e.Metadata.Source,
			},
		}
	}

	var resp upsertResponse
	err := s.postJSON(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   vectors,
		Namespace: namespace,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.UpsertedCount, nil
}

// Query returns up to topK matches ordered by score descending.
// A namespace that was never written to yields zero matches.
func (s *Store) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]domain.ScoredChunk, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: query vector is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	var resp queryResponse
	err := s.postJSON(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
		Namespace:       namespace,
	}, &resp)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ScoredChunk, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		results = append(results, domain.ScoredChunk{
			Text:   m.Metadata.Text,
			Source: m.Metadata.Source,
			Score:  m.Score,
		})
	}
	return results, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// postJSON sends a JSON request to the index and decodes the response.
func (s *Store) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.indexHost+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: pinecone %s: %v", domain.ErrStoreUnavailable, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrStoreUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(payload, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: pinecone %s status %d: %s",
				domain.ErrStoreUnavailable, path, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: pinecone %s status %d", domain.ErrStoreUnavailable, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrStoreUnavailable, err)
		}
	}
	return nil
}
