package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/legalease-cli/internal/adapters/driven/storage/memory"
	"github.com/legalease/legalease-cli/internal/chunkers"
	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driving"
)

const contractActText = `THE CONTRACT ACT, 1872
1. Short title
This Act may be called the Contract Act, 1872. It extends to the whole of Pakistan and it shall come into force on the first day of September.
2. Interpretation clause
In this Act the following words and expressions are used in the following senses unless a contrary intention appears from the context of the provision concerned.`

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDatasetBuilderBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("builds records from statute files", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "Contract Act, 1872.txt", contractActText)

		store := memory.NewDatasetStore()
		builder := NewDatasetBuilder(store, nil)

		summary, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "out.json"})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Documents)
		assert.Equal(t, 2, summary.Sections)
		assert.Equal(t, 2, summary.Chunks)

		records, err := store.Load(ctx, "out.json")
		require.NoError(t, err)
		require.Len(t, records, 2)

		first := records[0]
		assert.Equal(t, "Contract Act, 1872", first.DocID)
		assert.Equal(t, "Contract Act, 1872", first.LawName)
		assert.Equal(t, "Contract Law", first.Domain)
		assert.Equal(t, domain.Jurisdiction, first.Jurisdiction)
		assert.Equal(t, domain.SourceType, first.Source)
		assert.Equal(t, domain.LanguageEnglish, first.Language)
		assert.Equal(t, "1", first.SectionID)
		assert.Equal(t, "Short title", first.SectionTitle)
		assert.Equal(t, "Contract Act, 1872::sec-1::chunk-0", first.ChunkID)
		assert.Equal(t, 0, first.ChunkIndex)
		require.NotNil(t, first.ChunkCharStart)
		require.NotNil(t, first.ChunkCharEnd)
		assert.Equal(t, 0, *first.ChunkCharStart)

		assert.Equal(t, "2", records[1].SectionID)
	})

	t.Run("heading free document falls back to whole document", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "Companies Act, 2017.txt", "plain prose with no headings whatsoever")

		store := memory.NewDatasetStore()
		builder := NewDatasetBuilder(store, nil)

		summary, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "out.json"})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Sections)

		records, err := store.Load(ctx, "out.json")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "root", records[0].SectionID)
		assert.Equal(t, "", records[0].SectionTitle)
	})

	t.Run("unknown statute aborts before writing", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "Contract Act, 1872.txt", contractActText)
		writeDoc(t, dir, "Penal Code, 1860.txt", "1. Offences\nWhoever commits an offence.")

		store := memory.NewDatasetStore()
		builder := NewDatasetBuilder(store, nil)

		_, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "out.json"})
		assert.ErrorIs(t, err, domain.ErrUnknownStatute)
		assert.False(t, store.Exists("out.json"))
	})

	t.Run("missing docs directory", func(t *testing.T) {
		builder := NewDatasetBuilder(memory.NewDatasetStore(), nil)
		_, err := builder.Build(ctx, driving.BuildOptions{DocsDir: "/does/not/exist", OutputPath: "out.json"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("directory without txt files", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "notes.md", "not a statute")

		builder := NewDatasetBuilder(memory.NewDatasetStore(), nil)
		_, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "out.json"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("long section splits with continuing chunk index", func(t *testing.T) {
		dir := t.TempDir()
		body := strings.Repeat("every agreement enforceable by law is a contract under this provision ", 40)
		writeDoc(t, dir, "Contract Act, 1872.txt", "10. What agreements are contracts\n"+body)

		store := memory.NewDatasetStore()
		builder := NewDatasetBuilder(store, nil)

		_, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "out.json", ChunkSize: 400, Overlap: 50})
		require.NoError(t, err)

		records, err := store.Load(ctx, "out.json")
		require.NoError(t, err)
		require.Greater(t, len(records), 1)
		for i, rec := range records {
			assert.Equal(t, i, rec.ChunkIndex)
			assert.Equal(t, domain.DeriveChunkID(rec.DocID, rec.SectionID, i), rec.ChunkID)
		}
	})

	t.Run("chunk size alone keeps a default overlap", func(t *testing.T) {
		dir := t.TempDir()
		body := strings.Repeat("every agreement enforceable by law is a contract under this provision ", 40)
		writeDoc(t, dir, "Contract Act, 1872.txt", "10. What agreements are contracts\n"+body)

		store := memory.NewDatasetStore()
		builder := NewDatasetBuilder(store, nil)

		_, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "out.json", ChunkSize: 400})
		require.NoError(t, err)

		records, err := store.Load(ctx, "out.json")
		require.NoError(t, err)
		require.Greater(t, len(records), 1)
		assert.Equal(t, *records[0].ChunkCharEnd-chunkers.DefaultWindowOverlap, *records[1].ChunkCharStart)
	})

	t.Run("tiny explicit chunk size shrinks the default overlap", func(t *testing.T) {
		dir := t.TempDir()
		body := strings.Repeat("agreement ", 30)
		writeDoc(t, dir, "Contract Act, 1872.txt", "10. What agreements are contracts\n"+body)

		store := memory.NewDatasetStore()
		builder := NewDatasetBuilder(store, nil)

		// 120 is below the stock overlap of 200; the default must shrink
		// instead of failing validation.
		_, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "out.json", ChunkSize: 120})
		require.NoError(t, err)
	})

	t.Run("output is deterministic", func(t *testing.T) {
		dir := t.TempDir()
		writeDoc(t, dir, "Contract Act, 1872.txt", contractActText)
		writeDoc(t, dir, "Companies Act, 2017.txt", "1. Short title\nThis Act may be called the Companies Act, 2017 and extends to the whole of Pakistan forthwith.")

		store := memory.NewDatasetStore()
		builder := NewDatasetBuilder(store, nil)

		_, err := builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "a.json"})
		require.NoError(t, err)
		_, err = builder.Build(ctx, driving.BuildOptions{DocsDir: dir, OutputPath: "b.json"})
		require.NoError(t, err)

		a, err := store.Load(ctx, "a.json")
		require.NoError(t, err)
		b, err := store.Load(ctx, "b.json")
		require.NoError(t, err)
		assert.Equal(t, a, b)

		// Files sort by name, so the Companies Act comes first.
		assert.Equal(t, "Companies Act, 2017", a[0].DocID)
	})
}

func TestDatasetBuilderClean(t *testing.T) {
	ctx := context.Background()

	rawText := strings.Join([]string{
		"SECTIONS",
		"1. Short title",
		"2. Interpretation clause",
		"",
		"Preamble: an Act to define and amend certain parts of the law relating to contracts",
		"1. Short title",
		"This Act may be called the Contract Act, 1872. It extends to the whole of Pakistan and shall come into force on such date as the Federal Government may by notification appoint for the purpose.",
		"2. Interpretation clause",
		"In this Act the following words and expressions are used in the following senses unless a contrary intention appears from the context, and every such expression shall be construed accordingly throughout the provisions of this Act.",
		"3. Fee chart",
		"The fees payable shall be as specified.",
	}, "\n")

	seed := func(t *testing.T, store *memory.DatasetStore) {
		t.Helper()
		rec := domain.ChunkRecord{
			DocID:        "Contract Act, 1872",
			LawName:      "Contract Act, 1872",
			Domain:       "Contract Law",
			Jurisdiction: domain.Jurisdiction,
			Source:       domain.SourceType,
			Language:     domain.LanguageEnglish,
			SectionID:    "root",
			SectionTitle: "",
			ChunkID:      "Contract Act, 1872::sec-root::chunk-0",
			ChunkIndex:   0,
			Text:         rawText,
		}
		require.NoError(t, store.Save(context.Background(), "raw.json", []domain.ChunkRecord{rec}))
	}

	t.Run("strips toc and drops non substantive sections", func(t *testing.T) {
		store := memory.NewDatasetStore()
		seed(t, store)
		builder := NewDatasetBuilder(store, nil)

		summary, err := builder.Clean(ctx, driving.CleanOptions{InputPath: "raw.json", OutputPath: "clean.json"})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Documents)
		assert.Equal(t, 2, summary.Sections)

		records, err := store.Load(ctx, "clean.json")
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "1", records[0].SectionID)
		assert.Equal(t, "Short title", records[0].SectionTitle)
		assert.Equal(t, "2", records[1].SectionID)

		// Carried metadata comes from the source records.
		assert.Equal(t, "Contract Act, 1872", records[0].LawName)
		assert.Equal(t, domain.LanguageEnglish, records[0].Language)

		// The token path does not track character offsets.
		assert.Nil(t, records[0].ChunkCharStart)
		assert.Nil(t, records[0].ChunkCharEnd)
	})

	t.Run("heading free document drops out", func(t *testing.T) {
		store := memory.NewDatasetStore()
		rec := domain.ChunkRecord{
			DocID:      "Companies Act, 2017",
			LawName:    "Companies Act, 2017",
			SectionID:  "root",
			ChunkID:    "Companies Act, 2017::sec-root::chunk-0",
			ChunkIndex: 0,
			Text:       "plain prose with no headings at all",
		}
		require.NoError(t, store.Save(ctx, "raw.json", []domain.ChunkRecord{rec}))

		builder := NewDatasetBuilder(store, nil)
		summary, err := builder.Clean(ctx, driving.CleanOptions{InputPath: "raw.json", OutputPath: "clean.json"})
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Sections)
		assert.Equal(t, 0, summary.Chunks)

		records, err := store.Load(ctx, "clean.json")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("small explicit maximum keeps a valid minimum", func(t *testing.T) {
		store := memory.NewDatasetStore()
		seed(t, store)
		builder := NewDatasetBuilder(store, nil)

		// A maximum below the stock minimum of 300 must not fail validation.
		summary, err := builder.Clean(ctx, driving.CleanOptions{InputPath: "raw.json", OutputPath: "clean.json", MaxTokens: 20})
		require.NoError(t, err)
		assert.Greater(t, summary.Chunks, summary.Sections)
	})

	t.Run("missing input dataset", func(t *testing.T) {
		builder := NewDatasetBuilder(memory.NewDatasetStore(), nil)
		_, err := builder.Clean(ctx, driving.CleanOptions{InputPath: "missing.json", OutputPath: "clean.json"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
