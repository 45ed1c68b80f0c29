// Package cli implements the command-line driving adapter.
// Commands hold no pipeline logic; they parse flags, call the core
// services, and format output.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driving"
	"github.com/clause-labs/retriva-cli/internal/extract"
	"github.com/clause-labs/retriva-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	namespace string
)

// Services the commands depend on, injected once from main.
var (
	ingestService   driving.IngestService
	retrieveService driving.RetrieveService
	answerService   driving.AnswerService
	configStore     driven.ConfigStore
	fetcher         *extract.Fetcher
	settings        domain.Settings
)

var rootCmd = &cobra.Command{
	Use:   "retriva",
	Short: "Ingest documents and ask questions grounded in them",
	Long: `Retriva chunks documents, embeds the chunks, and indexes them in a
vector store. Queries are embedded the same way and answered from the
closest chunks, optionally through a chat model.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&namespace, "namespace", "", "vector store namespace (default from config)")
}

// Services bundles everything the commands need.
type Services struct {
	Ingest   driving.IngestService
	Retrieve driving.RetrieveService
	Answer   driving.AnswerService
	Config   driven.ConfigStore
	Fetcher  *extract.Fetcher
	Settings domain.Settings
}

// SetServices injects the service implementations. Must be called before
// Execute.
func SetServices(s Services) {
	ingestService = s.Ingest
	retrieveService = s.Retrieve
	answerService = s.Answer
	configStore = s.Config
	fetcher = s.Fetcher
	settings = s.Settings
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// activeNamespace resolves the namespace flag against the configured
// default.
func activeNamespace() string {
	if namespace != "" {
		return namespace
	}
	if settings.Namespace != "" {
		return settings.Namespace
	}
	return domain.DefaultNamespace
}
