// Command legalease is the statute segmentation, chunking and retrieval CLI.
package main

import (
	"fmt"
	"os"

	"github.com/legalease/legalease-cli/internal/adapters/driven/ai"
	configfile "github.com/legalease/legalease-cli/internal/adapters/driven/config/file"
	storagefile "github.com/legalease/legalease-cli/internal/adapters/driven/storage/file"
	"github.com/legalease/legalease-cli/internal/adapters/driven/storage/sqlite"
	"github.com/legalease/legalease-cli/internal/adapters/driving/cli"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
	"github.com/legalease/legalease-cli/internal/core/services"
	"github.com/legalease/legalease-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settingsStore, err := configfile.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("init settings: %w", err)
	}
	settings, err := settingsStore.Load()
	if err != nil {
		return err
	}

	embedder, err := ai.CreateEmbeddingService(settings.Embedding)
	if err != nil {
		return fmt.Errorf("init embedding service: %w", err)
	}
	defer embedder.Close()

	llm, err := ai.CreateLLMService(settings.LLM)
	if err != nil {
		return fmt.Errorf("init LLM service: %w", err)
	}
	if llm != nil {
		defer llm.Close()
	}

	// Run history is bookkeeping; a broken store must not block the pipeline.
	var runStore driven.RunStore
	if rs, err := sqlite.NewRunStore(settings.Paths.DataDir); err != nil {
		logger.Warn("Run history unavailable: %v", err)
	} else {
		runStore = rs
		defer rs.Close()
	}

	datasetStore := storagefile.NewDatasetStore()
	indexStore := storagefile.NewIndexStore(settings.Paths.IndexDir)

	// The index serves the cleaned dataset when one exists, otherwise the
	// raw build output.
	datasetPath := settings.Paths.CleanDatasetPath
	if !datasetStore.Exists(datasetPath) {
		datasetPath = settings.Paths.DatasetPath
	}

	datasetBuilder := services.NewDatasetBuilder(datasetStore, runStore)
	retrieval, err := services.NewRetrievalService(datasetPath, datasetStore, indexStore, embedder, runStore)
	if err != nil {
		return err
	}
	answer := services.NewAnswerService(retrieval, llm)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Dataset:   datasetBuilder,
		Retrieval: retrieval,
		Answer:    answer,
		Runs:      runStore,
		Config:    settingsStore,
		Settings:  settings,
	})
	return cli.Execute()
}
