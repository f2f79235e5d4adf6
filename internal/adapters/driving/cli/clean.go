package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legalease/legalease-cli/internal/core/ports/driving"
)

var (
	cleanInput     string
	cleanOutput    string
	cleanMinTokens int
	cleanMaxTokens int
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a raw dataset and re-chunk by token budget",
	Long: `Reassembles each document from a raw dataset, strips table-of-contents
blocks, drops non-substantive sections and re-chunks the survivors into
token-budgeted pieces. Documents that lose all their headings drop out.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanInput, "input", "i", "", "raw dataset path")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "cleaned dataset output path")
	cleanCmd.Flags().IntVar(&cleanMinTokens, "min-tokens", 0, "minimum chunk size in tokens (default 300)")
	cleanCmd.Flags().IntVar(&cleanMaxTokens, "max-tokens", 0, "maximum chunk size in tokens (default 500)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	if datasetBuilder == nil {
		return errors.New("dataset builder not configured")
	}

	opts := driving.CleanOptions{
		InputPath:  cleanInput,
		OutputPath: cleanOutput,
		MinTokens:  cleanMinTokens,
		MaxTokens:  cleanMaxTokens,
	}
	if opts.InputPath == "" {
		opts.InputPath = settings.Paths.DatasetPath
	}
	if opts.OutputPath == "" {
		opts.OutputPath = settings.Paths.CleanDatasetPath
	}
	if opts.MinTokens == 0 {
		opts.MinTokens = settings.Chunking.MinTokens
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = settings.Chunking.MaxTokens
	}

	summary, err := datasetBuilder.Clean(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	cmd.Printf("Cleaned dataset: %d documents, %d sections kept, %d chunks\n",
		summary.Documents, summary.Sections, summary.Chunks)
	cmd.Printf("Output: %s\n", summary.Output)
	return nil
}
