package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driving"
)

var (
	queryTopK        int
	queryJSON        bool
	queryRaw         bool
	queryRefFile     string
	queryTemperature float64
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question against the indexed documents",
	Long: `Embeds the question, retrieves the closest chunks, and generates a
grounded answer through the chat model.

With --raw, prints the retrieved chunks without calling the chat model.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	queryCmd.Flags().BoolVar(&queryRaw, "raw", false, "print retrieved chunks without generating an answer")
	queryCmd.Flags().StringVar(&queryRefFile, "reference", "", "file whose content is prepended to the context")
	queryCmd.Flags().Float64Var(&queryTemperature, "temperature", 0, "sampling temperature, 0 for deterministic answers")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if queryRaw {
		return runQueryRaw(ctx, cmd, question)
	}

	if answerService == nil {
		return errors.New("answer service not configured")
	}

	opts := driving.AnswerOptions{TopK: queryTopK}
	if cmd.Flags().Changed("temperature") {
		opts.Temperature = &queryTemperature
	}
	if queryRefFile != "" {
		reference, err := referenceContent(queryRefFile)
		if err != nil {
			return err
		}
		opts.Reference = reference
	}

	answer, err := answerService.Answer(ctx, question, activeNamespace(), opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputAnswerJSON(cmd, answer)
	}

	cmd.Println(answer.Text)
	return nil
}

func runQueryRaw(ctx context.Context, cmd *cobra.Command, question string) error {
	if retrieveService == nil {
		return errors.New("retrieve service not configured")
	}

	retrieved, err := retrieveService.Retrieve(ctx, question, activeNamespace(), queryTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(retrieved, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputChunksTable(cmd, retrieved)
}

func outputChunksTable(cmd *cobra.Command, retrieved []domain.ScoredChunk) error {
	if len(retrieved) == 0 {
		cmd.Println("No matching chunks found.")
		return nil
	}

	cmd.Println("Retrieved chunks:")
	cmd.Println()
	for i, chunk := range retrieved {
		cmd.Printf("  [%d] score %.2f", i+1, chunk.Score)
		if chunk.Source != "" {
			cmd.Printf("  source %s", chunk.Source)
		}
		cmd.Println()
		cmd.Printf("      %s\n", snippet(chunk.Text, 200))
		cmd.Println()
	}
	return nil
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// referenceContent loads the optional reference document.
func referenceContent(path string) (string, error) {
	doc, err := extractPath(path)
	if err != nil {
		return "", fmt.Errorf("reading reference: %w", err)
	}
	return doc.Text, nil
}

// snippet truncates text to at most n characters on a rune boundary.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
