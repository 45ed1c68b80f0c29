package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pipeline configuration",
	Long: `View and change persisted pipeline options.

Recognized keys:
  pipeline.embedding_model  embedding model name
  pipeline.chat_model       chat model name
  pipeline.dimension        embedding vector size
  pipeline.namespace        default vector store namespace
  pipeline.top_k            default retrieval depth
  pipeline.chunk_size       chunk window size in characters
  pipeline.chunk_overlap    characters each window extends past its end
  pipeline.history_turns    interactions folded into the context
  pipeline.provider_timeout_seconds  bound on embedding and chat calls
  pipeline.store_timeout_seconds     bound on vector store calls
  pipeline.fetch_timeout_seconds     bound on URL fetches`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

// intConfigKeys are persisted as integers; everything else is a string.
var intConfigKeys = map[string]bool{
	"pipeline.dimension":                true,
	"pipeline.top_k":                    true,
	"pipeline.chunk_size":               true,
	"pipeline.chunk_overlap":            true,
	"pipeline.history_turns":            true,
	"pipeline.provider_timeout_seconds": true,
	"pipeline.store_timeout_seconds":    true,
	"pipeline.fetch_timeout_seconds":    true,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	effective := map[string]any{
		"pipeline.embedding_model":          settings.EmbeddingModel,
		"pipeline.chat_model":               settings.ChatModel,
		"pipeline.dimension":                settings.Dimension,
		"pipeline.namespace":                settings.Namespace,
		"pipeline.top_k":                    settings.TopK,
		"pipeline.chunk_size":               settings.ChunkSize,
		"pipeline.chunk_overlap":            settings.ChunkOverlap,
		"pipeline.history_turns":            settings.HistoryTurns,
		"pipeline.provider_timeout_seconds": int(settings.ProviderTimeout.Seconds()),
		"pipeline.store_timeout_seconds":    int(settings.StoreTimeout.Seconds()),
		"pipeline.fetch_timeout_seconds":    int(settings.FetchTimeout.Seconds()),
	}

	keys := make([]string, 0, len(effective))
	for key := range effective {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cmd.Println("Configuration:")
	for _, key := range keys {
		marker := " "
		if _, ok := configStore.Get(key); ok {
			marker = "*"
		}
		cmd.Printf("  %s %-26s %v\n", marker, key, effective[key])
	}
	cmd.Println()
	cmd.Println("Keys marked * are set explicitly; others use defaults.")
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	var value any = raw
	if intConfigKeys[key] {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, raw)
		}
		value = int64(n)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if _, ok := configStore.Get(key); !ok {
		cmd.Printf("%s is not set\n", key)
		return nil
	}

	if err := configStore.Delete(key); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Unset %s\n", key)
	return nil
}
