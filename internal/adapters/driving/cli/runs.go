package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded pipeline runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to show (0 = all)")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run store not configured")
	}

	runs, err := runStore.List(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "FAILED: " + run.Error
		}
		cmd.Printf("%s  %-6s  %s  docs=%d sections=%d chunks=%d  %s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.Kind,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
			run.Documents, run.Sections, run.Chunks,
			status,
		)
	}
	return nil
}
