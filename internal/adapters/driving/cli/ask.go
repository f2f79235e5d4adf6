package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legalease/legalease-cli/internal/core/domain"
)

var (
	askTopK         int
	askMaxNewTokens int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question grounded in the indexed statutes",
	Long: `Retrieves the most relevant statute chunks for the question, builds a
grounded prompt and asks the configured LLM for an answer. The answer cites
only the retrieved passages; it is research assistance, not legal advice.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "context passages to retrieve (default 5)")
	askCmd.Flags().IntVar(&askMaxNewTokens, "max-new-tokens", 0, "generation budget (default 512)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if answerService == nil {
		return errors.New("answer service not configured")
	}

	topK := askTopK
	if topK == 0 {
		topK = settings.Retrieval.TopK
	}
	maxNew := askMaxNewTokens
	if maxNew == 0 {
		maxNew = settings.Retrieval.MaxNewTokens
	}

	answer, err := answerService.Answer(cmd.Context(), question, topK, maxNew)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrIndexNotBuilt):
			return errors.New("no index found - run 'legalease index' first")
		case errors.Is(err, domain.ErrLLMUnavailable):
			return fmt.Errorf("generation unavailable: %w", err)
		}
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Println("Sources:")
	for i := range answer.Sources {
		src := &answer.Sources[i]
		cmd.Printf("  [%d] %s §%s (%s)\n", i+1, src.LawName, src.SectionID, src.ChunkID)
	}
	return nil
}
