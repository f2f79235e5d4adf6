package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the dataset and build the vector index",
	Long: `Encodes every chunk in the configured dataset with the embedding
provider and persists the resulting vector index. Searches served while a
rebuild is running keep using the previous index until the new one lands.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	summary, err := retrievalService.BuildIndex(cmd.Context())
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	cmd.Printf("Indexed %d chunks with %s\n", summary.IndexedChunks, summary.EmbeddingModel)
	cmd.Printf("Index: %s\n", summary.IndexPath)
	return nil
}
