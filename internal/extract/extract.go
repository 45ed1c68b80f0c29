// Package extract reduces ingestion sources to a flat document.
// Each source kind (local file, pasted text, PDF, URL) is resolved to a
// domain.Document carrying the text plus the prefix that namespaces its
// chunk ids.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/logger"
)

// maxFetchBody caps how much of a remote response is read.
const maxFetchBody = 10 << 20 // 10 MiB

// FromText wraps pasted text in a document. The prefix is generated so
// repeated pastes never collide with file-derived prefixes.
func FromText(text string) (domain.Document, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Document{}, fmt.Errorf("%w: text is empty", domain.ErrInvalidInput)
	}

	prefix := fmt.Sprintf("user-%s-%d", uuid.New().String()[:8], time.Now().Unix())
	return domain.Document{
		SourcePrefix: prefix,
		Text:         text,
		Origin:       "text",
		IngestedAt:   time.Now(),
	}, nil
}

// FromFile reads a local text file. The source prefix is the base name
// without its extension, so re-ingesting the same file overwrites its
// previous chunks.
func FromFile(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return domain.Document{}, fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, path)
	}

	return domain.Document{
		SourcePrefix: Prefix(path),
		Text:         string(data),
		Origin:       "file",
		IngestedAt:   time.Now(),
	}, nil
}

// Prefix derives a chunk id prefix from a file path: the base name with
// its extension stripped.
func Prefix(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Fetcher downloads remote documents over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given timeout. A zero timeout
// falls back to the default fetch timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = domain.DefaultFetchTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// FromURL fetches a URL and treats the body as plain text. Bytes that are
// not valid UTF-8 are dropped.
func (f *Fetcher) FromURL(ctx context.Context, rawURL string) (domain.Document, error) {
	if strings.TrimSpace(rawURL) == "" {
		return domain.Document{}, fmt.Errorf("%w: url is empty", domain.ErrInvalidInput)
	}

	logger.Debug("Fetching %s", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: fetching %s: %v", domain.ErrFetchFailed, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Document{}, fmt.Errorf("%w: fetching %s: status %d", domain.ErrFetchFailed, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBody))
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: reading %s: %v", domain.ErrFetchFailed, rawURL, err)
	}

	text := strings.ToValidUTF8(string(body), "")
	if strings.TrimSpace(text) == "" {
		return domain.Document{}, fmt.Errorf("%w: %s returned no text", domain.ErrFetchFailed, rawURL)
	}

	return domain.Document{
		SourcePrefix: urlPrefix(rawURL),
		Text:         text,
		Origin:       "url",
		IngestedAt:   time.Now(),
	}, nil
}

// urlPrefix derives a chunk id prefix from a URL: the last path segment,
// or the host when the path is empty.
func urlPrefix(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 && idx < len(trimmed)-1 {
		segment := trimmed[idx+1:]
		segment = strings.TrimSuffix(segment, filepath.Ext(segment))
		if segment != "" && !strings.Contains(segment, ":") {
			return segment
		}
	}
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	return strings.ReplaceAll(trimmed, "/", "-")
}
