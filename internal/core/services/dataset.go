package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legalease/legalease-cli/internal/chunkers"
	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
	"github.com/legalease/legalease-cli/internal/core/ports/driving"
	"github.com/legalease/legalease-cli/internal/logger"
	"github.com/legalease/legalease-cli/internal/normalisers/statute"
	"github.com/legalease/legalease-cli/internal/segmenter"
)

// Ensure DatasetBuilder implements the interface.
var _ driving.DatasetBuilder = (*DatasetBuilder)(nil)

// DatasetBuilder orchestrates the segmentation/chunking pipeline across a
// document collection. Processing order is stable (documents by name,
// sections by position, chunks by emission) so re-running against unchanged
// input yields byte-identical output.
type DatasetBuilder struct {
	datasetStore driven.DatasetStore
	runStore     driven.RunStore // optional
	chunkers     *chunkers.Registry
}

// NewDatasetBuilder creates a dataset builder. The runStore is optional;
// when nil, runs are not recorded.
func NewDatasetBuilder(datasetStore driven.DatasetStore, runStore driven.RunStore) *DatasetBuilder {
	registry := chunkers.NewRegistry()
	chunkers.RegisterDefaults(registry)
	return &DatasetBuilder{
		datasetStore: datasetStore,
		runStore:     runStore,
		chunkers:     registry,
	}
}

// Build ingests every .txt document in the docs directory and emits
// sliding-window chunk records. Ingestion is all-or-nothing: a document
// matching no allowed statute aborts the run before anything is written.
func (b *DatasetBuilder) Build(ctx context.Context, opts driving.BuildOptions) (domain.BuildSummary, error) {
	started := time.Now()
	summary, err := b.build(ctx, opts)
	b.recordRun(ctx, driven.RunKindBuild, started, summary, err)
	return summary, err
}

func (b *DatasetBuilder) build(ctx context.Context, opts driving.BuildOptions) (domain.BuildSummary, error) {
	logger.Section("Dataset Build")

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = chunkers.DefaultWindowSize
	}
	overlap := opts.Overlap
	if overlap == 0 {
		overlap = chunkers.DefaultWindowOverlap
		if overlap >= chunkSize {
			// An explicit window smaller than the stock overlap keeps the
			// stock 1:6 overlap ratio instead.
			overlap = chunkSize / 6
		}
	}
	chunker, err := b.chunkers.Build(chunkers.StrategyWindow, map[string]any{
		"chunk_size": chunkSize,
		"overlap":    overlap,
	})
	if err != nil {
		return domain.BuildSummary{}, err
	}

	files, err := listTextFiles(opts.DocsDir)
	if err != nil {
		return domain.BuildSummary{}, err
	}
	logger.Debug("Found %d statute files in %s", len(files), opts.DocsDir)

	var (
		records  []domain.ChunkRecord
		sections int
	)
	for _, path := range files {
		st, err := domain.ResolveStatute(path)
		if err != nil {
			return domain.BuildSummary{}, err
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return domain.BuildSummary{}, fmt.Errorf("read %s: %w", path, err)
		}

		docID := stem(path)
		normalized := statute.Normalize(string(raw))
		language := domain.DetectLanguage(normalized)
		secs := segmenter.Segment(normalized, segmenter.WithWholeDocumentFallback())
		logger.Debug("%s: language=%s sections=%d", docID, language, len(secs))
		sections += len(secs)

		counters := make(map[string]int)
		for _, sec := range secs {
			pieces, err := chunker.Chunk(sec.Text)
			if err != nil {
				return domain.BuildSummary{}, fmt.Errorf("chunk %s section %s: %w", docID, sec.SectionID, err)
			}
			for _, piece := range pieces {
				idx := counters[sec.SectionID]
				counters[sec.SectionID]++

				start, end := piece.Start, piece.End
				rec := domain.ChunkRecord{
					DocID:          docID,
					LawName:        st.LawName,
					Domain:         st.Domain,
					Jurisdiction:   domain.Jurisdiction,
					Source:         domain.SourceType,
					Language:       language,
					SectionID:      sec.SectionID,
					SectionTitle:   sec.Title,
					ChunkID:        domain.DeriveChunkID(docID, sec.SectionID, idx),
					ChunkIndex:     idx,
					ChunkCharStart: &start,
					ChunkCharEnd:   &end,
					Text:           piece.Text,
				}
				if err := rec.Validate(); err != nil {
					return domain.BuildSummary{}, err
				}
				records = append(records, rec)
			}
		}
	}

	if err := b.datasetStore.Save(ctx, opts.OutputPath, records); err != nil {
		return domain.BuildSummary{}, fmt.Errorf("save dataset: %w", err)
	}
	logger.Info("Wrote %d chunk records to %s", len(records), opts.OutputPath)

	return domain.BuildSummary{
		Documents: len(files),
		Sections:  sections,
		Chunks:    len(records),
		Output:    opts.OutputPath,
	}, nil
}

// Clean re-segments a raw dataset after TOC removal, drops non-substantive
// sections, cleans titles and re-chunks by token budget. Unlike Build, a
// document whose text yields no surviving headings drops out entirely:
// initial construction must never lose documents, later cleanup may.
func (b *DatasetBuilder) Clean(ctx context.Context, opts driving.CleanOptions) (domain.BuildSummary, error) {
	started := time.Now()
	summary, err := b.clean(ctx, opts)
	b.recordRun(ctx, driven.RunKindClean, started, summary, err)
	return summary, err
}

func (b *DatasetBuilder) clean(ctx context.Context, opts driving.CleanOptions) (domain.BuildSummary, error) {
	logger.Section("Dataset Clean")

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = chunkers.DefaultMaxTokens
	}
	minTokens := opts.MinTokens
	if minTokens == 0 {
		minTokens = chunkers.DefaultMinTokens
		if minTokens >= maxTokens {
			// An explicit maximum below the stock minimum keeps the stock
			// 3:5 budget ratio instead.
			minTokens = maxTokens * 3 / 5
		}
	}
	chunker, err := b.chunkers.Build(chunkers.StrategyTokens, map[string]any{
		"min_tokens": minTokens,
		"max_tokens": maxTokens,
	})
	if err != nil {
		return domain.BuildSummary{}, err
	}

	records, err := b.datasetStore.Load(ctx, opts.InputPath)
	if err != nil {
		return domain.BuildSummary{}, err
	}

	docOrder, grouped := groupByDoc(records)
	logger.Debug("Loaded %d records across %d documents", len(records), len(docOrder))

	var (
		cleaned      []domain.ChunkRecord
		sectionsKept int
	)
	for _, docID := range docOrder {
		docRecords := grouped[docID]
		sample := docRecords[0]

		text := statute.Normalize(rebuildText(docRecords))
		text = segmenter.RemoveTOCBlocks(text)
		secs := segmenter.Segment(text)

		counters := make(map[string]int)
		for _, sec := range secs {
			if segmenter.IsNonSubstantive(sec) {
				logger.Debug("%s: dropping non-substantive section %s", docID, sec.SectionID)
				continue
			}
			sectionsKept++

			title, _ := segmenter.CleanTitle(sec.Title)
			pieces, err := chunker.Chunk(sec.Text)
			if err != nil {
				return domain.BuildSummary{}, fmt.Errorf("chunk %s section %s: %w", docID, sec.SectionID, err)
			}
			for _, piece := range pieces {
				idx := counters[sec.SectionID]
				counters[sec.SectionID]++

				rec := domain.ChunkRecord{
					DocID:        docID,
					LawName:      sample.LawName,
					Domain:       sample.Domain,
					Jurisdiction: sample.Jurisdiction,
					Source:       sample.Source,
					Language:     sample.Language,
					SectionID:    sec.SectionID,
					SectionTitle: title,
					ChunkID:      domain.DeriveChunkID(docID, sec.SectionID, idx),
					ChunkIndex:   idx,
					Text:         piece.Text,
				}
				if err := rec.Validate(); err != nil {
					return domain.BuildSummary{}, err
				}
				cleaned = append(cleaned, rec)
			}
		}
	}

	if err := b.datasetStore.Save(ctx, opts.OutputPath, cleaned); err != nil {
		return domain.BuildSummary{}, fmt.Errorf("save cleaned dataset: %w", err)
	}
	logger.Info("Wrote %d cleaned records to %s", len(cleaned), opts.OutputPath)

	return domain.BuildSummary{
		Documents: len(docOrder),
		Sections:  sectionsKept,
		Chunks:    len(cleaned),
		Output:    opts.OutputPath,
	}, nil
}

// recordRun stores run bookkeeping. Failures are logged, never propagated.
func (b *DatasetBuilder) recordRun(ctx context.Context, kind string, started time.Time, summary domain.BuildSummary, runErr error) {
	if b.runStore == nil {
		return
	}
	run := driven.Run{
		ID:         uuid.New().String(),
		Kind:       kind,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Documents:  summary.Documents,
		Sections:   summary.Sections,
		Chunks:     summary.Chunks,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := b.runStore.Record(ctx, run); err != nil {
		logger.Warn("Recording %s run failed: %v", kind, err)
	}
}

// listTextFiles returns the .txt files in dir sorted by name.
// Returns domain.ErrNotFound when the directory is missing or holds none.
func listTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: docs directory %s", domain.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("read docs directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no .txt files in %s", domain.ErrNotFound, dir)
	}
	sort.Strings(files)
	return files, nil
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// groupByDoc splits records by document, preserving both first-seen document
// order and record order within each document.
func groupByDoc(records []domain.ChunkRecord) ([]string, map[string][]domain.ChunkRecord) {
	var order []string
	grouped := make(map[string][]domain.ChunkRecord)
	for _, rec := range records {
		if _, ok := grouped[rec.DocID]; !ok {
			order = append(order, rec.DocID)
		}
		grouped[rec.DocID] = append(grouped[rec.DocID], rec)
	}
	return order, grouped
}

// rebuildText reassembles a document from its chunk texts, blank-line
// separated. Overlapping window chunks duplicate some text; the following
// normalise/segment pass tolerates that.
func rebuildText(records []domain.ChunkRecord) string {
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Text != "" {
			parts = append(parts, rec.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
