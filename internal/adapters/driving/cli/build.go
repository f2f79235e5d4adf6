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
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/legalease/legalease-cli/internal/core/ports/driving"
)

var (
	buildDocsDir   string
	buildOutput    string
	buildChunkSize int
	buildOverlap   int
	buildWatch     bool
)

// watchDebounce coalesces bursts of filesystem events into one rebuild.
const watchDebounce = 500 * time.Millisecond

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the raw chunk dataset from statute files",
	Long: `Reads every .txt statute in the docs directory, normalises and segments
it into sections, slices each section with a sliding character window and
writes the resulting chunk records as a JSON dataset.

A document whose filename matches no known statute aborts the whole run;
nothing is written in that case.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildDocsDir, "docs", "", "directory of statute .txt files")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "dataset output path")
	buildCmd.Flags().IntVar(&buildChunkSize, "chunk-size", 0, "window size in characters (default 1200)")
	buildCmd.Flags().IntVar(&buildOverlap, "overlap", 0, "window overlap in characters (default 200)")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when the docs directory changes")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if datasetBuilder == nil {
		return errors.New("dataset builder not configured")
	}

	opts := driving.BuildOptions{
		DocsDir:    buildDocsDir,
		OutputPath: buildOutput,
		ChunkSize:  buildChunkSize,
		Overlap:    buildOverlap,
	}
	if opts.DocsDir == "" {
		opts.DocsDir = settings.Paths.DocsDir
	}
	if opts.OutputPath == "" {
		opts.OutputPath = settings.Paths.DatasetPath
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = settings.Chunking.ChunkSize
	}
	if opts.Overlap == 0 {
		opts.Overlap = settings.Chunking.Overlap
	}

	if buildWatch {
		return watchAndBuild(cmd, opts)
	}
	return buildOnce(cmd, opts)
}

func buildOnce(cmd *cobra.Command, opts driving.BuildOptions) error {
	summary, err := datasetBuilder.Build(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Built dataset: %d documents, %d sections, %d chunks\n",
		summary.Documents, summary.Sections, summary.Chunks)
	cmd.Printf("Output: %s\n", summary.Output)
	return nil
}

// watchAndBuild runs an initial build, then rebuilds whenever a .txt file in
// the docs directory changes. Runs until interrupted.
func watchAndBuild(cmd *cobra.Command, opts driving.BuildOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := buildOnce(cmd, opts); err != nil {
		// Keep watching; the next save may fix the input.
		cmd.PrintErrf("initial build: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(opts.DocsDir); err != nil {
		return fmt.Errorf("watch %s: %w", opts.DocsDir, err)
	}
	cmd.Printf("Watching %s (Ctrl-C to stop)\n", opts.DocsDir)

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".txt") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerCh = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("watch error: %v\n", err)

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := buildOnceCtx(ctx, cmd, opts); err != nil {
				cmd.PrintErrf("rebuild: %v\n", err)
			}
		}
	}
}

func buildOnceCtx(ctx context.Context, cmd *cobra.Command, opts driving.BuildOptions) error {
	summary, err := datasetBuilder.Build(ctx, opts)
	if err != nil {
		return err
	}
	cmd.Printf("Rebuilt dataset: %d documents, %d sections, %d chunks\n",
		summary.Documents, summary.Sections, summary.Chunks)
	return nil
}
