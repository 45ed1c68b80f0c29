package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/extract"
	"github.com/clause-labs/retriva-cli/internal/logger"
	"github.com/clause-labs/retriva-cli/internal/watcher"
)

var (
	ingestText  string
	ingestURL   string
	ingestPDF   bool
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Chunk, embed, and index a document",
	Long: `Reads a document, splits it into overlapping chunks, embeds each
chunk, and writes the vectors to the index.

Sources:
  retriva ingest notes.txt          ingest a text file
  retriva ingest contract.pdf       ingest a PDF (by extension)
  retriva ingest --url https://...  ingest a web page
  retriva ingest --text "..."       ingest pasted text
  retriva ingest --watch ./docs     re-ingest files in a directory on change

Re-ingesting the same source overwrites its previous chunks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestText, "text", "", "ingest raw text instead of a file")
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "ingest the body of a URL")
	ingestCmd.Flags().BoolVar(&ingestPDF, "pdf", false, "treat the file as a PDF regardless of extension")
	ingestCmd.Flags().BoolVar(&ingestWatch, "watch", false, "watch a directory and re-ingest on change")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch {
	case ingestWatch:
		if len(args) != 1 {
			return errors.New("--watch requires a directory argument")
		}
		return runIngestWatch(ctx, cmd, args[0])

	case ingestText != "":
		doc, err := extract.FromText(ingestText)
		if err != nil {
			return err
		}
		return ingestDocument(ctx, cmd, doc)

	case ingestURL != "":
		if fetcher == nil {
			return errors.New("fetcher not configured")
		}
		doc, err := fetcher.FromURL(ctx, ingestURL)
		if err != nil {
			return err
		}
		return ingestDocument(ctx, cmd, doc)

	case len(args) == 1:
		doc, err := extractPath(args[0])
		if err != nil {
			return err
		}
		return ingestDocument(ctx, cmd, doc)

	default:
		return errors.New("provide a file argument, --text, or --url")
	}
}

// extractPath picks the extractor by the --pdf flag or file extension.
func extractPath(path string) (domain.Document, error) {
	if ingestPDF || strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extract.FromPDF(path)
	}
	return extract.FromFile(path)
}

func ingestDocument(ctx context.Context, cmd *cobra.Command, doc domain.Document) error {
	result, err := ingestService.Ingest(ctx, doc.Text, doc.SourcePrefix, activeNamespace())
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %q: %d chunks written to namespace %q\n",
		result.SourcePrefix, result.ChunksWritten, activeNamespace())
	return nil
}

func runIngestWatch(ctx context.Context, cmd *cobra.Command, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch target: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", dir)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(dir, 0, func(ctx context.Context, path string) {
		doc, err := extractPath(path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return
		}
		if err := ingestDocument(ctx, cmd, doc); err != nil {
			logger.Warn("Re-ingesting %s failed: %v", path, err)
		}
	})

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
