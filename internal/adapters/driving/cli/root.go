// Package cli provides the cobra command tree. Commands hold no pipeline
// logic; they parse flags, call the injected services and render results.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/legalease/legalease-cli/internal/adapters/driven/config/file"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
	"github.com/legalease/legalease-cli/internal/core/ports/driving"
	"github.com/legalease/legalease-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Set by SetServices before Execute; commands check for
// nil so a partially wired binary fails with a message, not a panic.
var (
	datasetBuilder   driving.DatasetBuilder
	retrievalService driving.RetrievalService
	answerService    driving.AnswerService
	runStore         driven.RunStore
	settingsStore    *file.SettingsStore
	settings         file.Settings
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "legalease",
	Short: "Statute segmentation, chunking and retrieval",
	Long: `LegalEase turns raw statute text files into a chunked, embeddable
dataset and serves similarity search and grounded question answering
over the resulting vector index.

Typical workflow:
  legalease build     # segment statutes into a raw chunk dataset
  legalease clean     # strip TOC noise and re-chunk by token budget
  legalease index     # embed chunks and build the vector index
  legalease search    # query the index
  legalease ask       # retrieval-augmented question answering`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the command tree needs.
type Services struct {
	Dataset   driving.DatasetBuilder
	Retrieval driving.RetrievalService
	Answer    driving.AnswerService
	Runs      driven.RunStore
	Config    *file.SettingsStore
	Settings  file.Settings
}

// SetServices injects the wired services. Call before Execute.
func SetServices(s Services) {
	datasetBuilder = s.Dataset
	retrievalService = s.Retrieval
	answerService = s.Answer
	runStore = s.Runs
	settingsStore = s.Config
	settings = s.Settings
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
