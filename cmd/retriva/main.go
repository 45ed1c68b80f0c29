// Command retriva is the entry point for the document question-answering
// pipeline. It assembles the driven adapters from configuration and
// environment, wires them into the core services, and hands control to
// the CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	configfile "github.com/clause-labs/retriva-cli/internal/adapters/driven/config/file"
	openaiembed "github.com/clause-labs/retriva-cli/internal/adapters/driven/embedding/openai"
	historysqlite "github.com/clause-labs/retriva-cli/internal/adapters/driven/history/sqlite"
	openaillm "github.com/clause-labs/retriva-cli/internal/adapters/driven/llm/openai"
	"github.com/clause-labs/retriva-cli/internal/adapters/driven/vector/memory"
	"github.com/clause-labs/retriva-cli/internal/adapters/driven/vector/pinecone"
	"github.com/clause-labs/retriva-cli/internal/adapters/driving/cli"
	"github.com/clause-labs/retriva-cli/internal/chunker"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
	"github.com/clause-labs/retriva-cli/internal/core/services"
	"github.com/clause-labs/retriva-cli/internal/extract"
	"github.com/clause-labs/retriva-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Secrets come from the environment; a .env file is a convenience.
	_ = godotenv.Load()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings := configStore.Settings()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     apiKey,
		Model:      settings.EmbeddingModel,
		Dimensions: settings.Dimension,
		Timeout:    settings.ProviderTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}
	defer embedder.Close()

	store, err := newVectorStore(settings.Dimension, settings.StoreTimeout)
	if err != nil {
		return err
	}
	defer store.Close()

	llm, err := openaillm.NewLLMService(openaillm.Config{
		APIKey:  apiKey,
		Model:   settings.ChatModel,
		Timeout: settings.ProviderTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating chat service: %w", err)
	}
	defer llm.Close()

	history, err := historysqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer history.Close()

	chunks := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithOverlap(settings.ChunkOverlap),
	)

	ingest := services.NewIngestService(chunks, embedder, store)
	retrieve := services.NewRetrieveService(embedder, store, settings.TopK)
	answer := services.NewAnswerService(retrieve, llm, history, settings.HistoryTurns)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Ingest:   ingest,
		Retrieve: retrieve,
		Answer:   answer,
		Config:   configStore,
		Fetcher:  extract.NewFetcher(settings.FetchTimeout),
		Settings: settings,
	})

	return cli.Execute()
}

// newVectorStore connects to Pinecone when credentials are present and
// falls back to the in-process store otherwise. The fallback keeps the
// pipeline usable offline; its contents do not survive the process.
func newVectorStore(dimension int, timeout time.Duration) (driven.VectorStore, error) {
	apiKey := os.Getenv("PINECONE_API_KEY")
	indexHost := os.Getenv("PINECONE_INDEX_HOST")

	if apiKey != "" && indexHost != "" {
		store, err := pinecone.NewStore(pinecone.Config{
			APIKey:    apiKey,
			IndexHost: indexHost,
			Dimension: dimension,
			Timeout:   timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("creating vector store: %w", err)
		}
		return store, nil
	}

	logger.Warn("PINECONE_API_KEY or PINECONE_INDEX_HOST not set; using in-memory vector store")
	return memory.NewStore(dimension), nil
}
