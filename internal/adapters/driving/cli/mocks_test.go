package cli

import (
	"context"
	"time"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driving"
	"github.com/clause-labs/retriva-cli/internal/extract"
)

type stubIngestService struct {
	result  driving.IngestResult
	err     error
	gotText string
	gotNS   string
}

func (s *stubIngestService) Ingest(_ context.Context, rawText, sourcePrefix, namespace string) (driving.IngestResult, error) {
	s.gotText = rawText
	s.gotNS = namespace
	if s.err != nil {
		return driving.IngestResult{}, s.err
	}
	if s.result.SourcePrefix == "" {
		s.result.SourcePrefix = sourcePrefix
	}
	return s.result, nil
}

type stubRetrieveService struct {
	results []domain.ScoredChunk
	err     error
	gotTopK int
}

func (s *stubRetrieveService) Retrieve(_ context.Context, _, _ string, topK int) ([]domain.ScoredChunk, error) {
	s.gotTopK = topK
	return s.results, s.err
}

type stubAnswerService struct {
	answer  domain.Answer
	err     error
	gotOpts driving.AnswerOptions
}

func (s *stubAnswerService) Answer(_ context.Context, _, _ string, opts driving.AnswerOptions) (domain.Answer, error) {
	s.gotOpts = opts
	return s.answer, s.err
}

type stubConfigStore struct {
	data map[string]any
}

func newStubConfigStore() *stubConfigStore {
	return &stubConfigStore{data: make(map[string]any)}
}

func (s *stubConfigStore) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *stubConfigStore) GetString(key string) string {
	v, _ := s.data[key].(string)
	return v
}

func (s *stubConfigStore) GetInt(key string) int {
	switch v := s.data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func (s *stubConfigStore) Set(key string, value any) error {
	s.data[key] = value
	return nil
}

func (s *stubConfigStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

func (s *stubConfigStore) Save() error { return nil }

// setupTestServices wires stub services and returns them with a cleanup
// that restores the previous wiring and flag defaults.
func setupTestServices() (*stubIngestService, *stubRetrieveService, *stubAnswerService, *stubConfigStore, func()) {
	ingest := &stubIngestService{result: driving.IngestResult{ChunksWritten: 3}}
	retrieve := &stubRetrieveService{}
	answer := &stubAnswerService{answer: domain.Answer{Text: "stub answer"}}
	config := newStubConfigStore()

	SetServices(Services{
		Ingest:   ingest,
		Retrieve: retrieve,
		Answer:   answer,
		Config:   config,
		Fetcher:  extract.NewFetcher(time.Second),
		Settings: domain.DefaultSettings(),
	})

	cleanup := func() {
		SetServices(Services{})
		namespace = ""
		ingestText = ""
		ingestURL = ""
		ingestPDF = false
		ingestWatch = false
		queryTopK = 0
		queryJSON = false
		queryRaw = false
		queryRefFile = ""
		queryTemperature = 0
		queryCmd.Flags().Lookup("temperature").Changed = false
		rootCmd.SetArgs(nil)
	}

	return ingest, retrieve, answer, config, cleanup
}
