package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
	"github.com/legalease/legalease-cli/internal/core/ports/driving"
	"github.com/legalease/legalease-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultBatchSize is how many passages are encoded per embedding request.
const DefaultBatchSize = 32

// index is an immutable embeddings/metadata pair. Position i in both slices
// refers to the same chunk; the pair is only ever replaced wholesale, so a
// reader holding the pointer sees a consistent snapshot.
type index struct {
	embeddings [][]float32
	metadata   []domain.ChunkMetadata
}

// RetrievalService builds and searches the vector index. State machine:
// EMPTY until the first successful build (or a load of complete persisted
// artifacts), BUILT after; no reverse transition.
type RetrievalService struct {
	datasetPath  string
	datasetStore driven.DatasetStore
	indexStore   driven.IndexStore
	embedder     driven.EmbeddingService
	runStore     driven.RunStore // optional
	batchSize    int

	// buildMu serialises concurrent builds; mu guards the idx swap so a
	// concurrent Search sees either the fully-old or fully-new pair.
	buildMu sync.Mutex
	mu      sync.RWMutex
	idx     *index
}

// NewRetrievalService creates the retrieval engine. If both persisted
// artifacts exist they are loaded and the service starts BUILT; a lone
// artifact is treated as no index at all.
func NewRetrievalService(
	datasetPath string,
	datasetStore driven.DatasetStore,
	indexStore driven.IndexStore,
	embedder driven.EmbeddingService,
	runStore driven.RunStore,
) (*RetrievalService, error) {
	s := &RetrievalService{
		datasetPath:  datasetPath,
		datasetStore: datasetStore,
		indexStore:   indexStore,
		embedder:     embedder,
		runStore:     runStore,
		batchSize:    DefaultBatchSize,
	}

	if indexStore.Exists() {
		embeddings, metadata, err := indexStore.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load persisted index: %w", err)
		}
		s.idx = &index{embeddings: embeddings, metadata: metadata}
		logger.Info("Loaded persisted index with %d chunks", len(metadata))
	}
	return s, nil
}

// Ready reports whether the index is in the BUILT state.
func (s *RetrievalService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx != nil
}

// BuildIndex encodes every dataset chunk into an L2-normalised vector, in
// batches and in record order, persists both artifacts together and swaps
// the in-memory pair in one step. A failure before the swap leaves both the
// previous in-memory state and the previously persisted artifacts untouched.
func (s *RetrievalService) BuildIndex(ctx context.Context) (domain.IndexSummary, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	started := time.Now()
	summary, err := s.buildIndex(ctx)
	s.recordRun(ctx, started, summary, err)
	return summary, err
}

func (s *RetrievalService) buildIndex(ctx context.Context) (domain.IndexSummary, error) {
	logger.Section("Index Build")

	if !s.datasetStore.Exists(s.datasetPath) {
		return domain.IndexSummary{}, fmt.Errorf("%w: dataset at %s (build the dataset first)", domain.ErrNotFound, s.datasetPath)
	}
	records, err := s.datasetStore.Load(ctx, s.datasetPath)
	if err != nil {
		return domain.IndexSummary{}, err
	}
	logger.Debug("Encoding %d chunks with %s", len(records), s.embedder.ModelName())

	embeddings := make([][]float32, 0, len(records))
	for lo := 0; lo < len(records); lo += s.batchSize {
		hi := lo + s.batchSize
		if hi > len(records) {
			hi = len(records)
		}

		passages := make([]string, 0, hi-lo)
		for _, rec := range records[lo:hi] {
			passages = append(passages, s.formatPassage(rec.Text))
		}

		batch, err := s.embedder.EmbedBatch(ctx, passages)
		if err != nil {
			return domain.IndexSummary{}, fmt.Errorf("encode batch at %d: %w", lo, err)
		}
		if len(batch) != len(passages) {
			return domain.IndexSummary{}, fmt.Errorf("encoder returned %d vectors for %d passages", len(batch), len(passages))
		}
		for _, vec := range batch {
			embeddings = append(embeddings, normalize(vec))
		}
	}

	if err := checkDimensions(embeddings); err != nil {
		return domain.IndexSummary{}, err
	}

	metadata := make([]domain.ChunkMetadata, len(records))
	for i, rec := range records {
		metadata[i] = rec.Metadata()
	}

	if err := s.indexStore.Save(ctx, embeddings, metadata); err != nil {
		return domain.IndexSummary{}, fmt.Errorf("persist index: %w", err)
	}

	// Swap only after both artifacts are safely on disk.
	s.mu.Lock()
	s.idx = &index{embeddings: embeddings, metadata: metadata}
	s.mu.Unlock()

	logger.Info("Indexed %d chunks", len(metadata))
	return domain.IndexSummary{
		IndexedChunks:  len(metadata),
		EmbeddingModel: s.embedder.ModelName(),
		IndexPath:      s.indexStore.Path(),
	}, nil
}

// Search encodes the query with the encoder's query-side convention, scores
// it by dot product against every stored embedding (cosine similarity, both
// sides pre-normalised) and returns the topK hits sorted by descending
// score. Ties break by ascending index position, so results are
// deterministic.
func (s *RetrievalService) Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	if idx == nil {
		return nil, fmt.Errorf("%w: call BuildIndex first", domain.ErrIndexNotBuilt)
	}

	vec, err := s.embedder.Embed(ctx, s.formatQuery(query))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	qv := normalize(vec)

	scores := make([]float64, len(idx.embeddings))
	for i, emb := range idx.embeddings {
		scores[i] = dot(emb, qv)
	}

	if topK < 1 {
		topK = 1
	}
	if topK > len(scores) {
		topK = len(scores)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})

	results := make([]domain.ScoredChunk, 0, topK)
	for _, i := range order[:topK] {
		results = append(results, domain.ScoredChunk{
			ChunkMetadata: idx.metadata[i],
			Score:         scores[i],
		})
	}
	return results, nil
}

// usesE5Convention reports whether the encoder expects asymmetric
// "query:"/"passage:" prefixes, which e5-family models were trained with.
func (s *RetrievalService) usesE5Convention() bool {
	return strings.Contains(strings.ToLower(s.embedder.ModelName()), "e5")
}

func (s *RetrievalService) formatQuery(query string) string {
	if s.usesE5Convention() {
		return "query: " + query
	}
	return query
}

func (s *RetrievalService) formatPassage(passage string) string {
	if s.usesE5Convention() {
		return "passage: " + passage
	}
	return passage
}

// recordRun stores run bookkeeping. Failures are logged, never propagated.
func (s *RetrievalService) recordRun(ctx context.Context, started time.Time, summary domain.IndexSummary, runErr error) {
	if s.runStore == nil {
		return
	}
	run := driven.Run{
		ID:         uuid.New().String(),
		Kind:       driven.RunKindIndex,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Chunks:     summary.IndexedChunks,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := s.runStore.Record(ctx, run); err != nil {
		logger.Warn("Recording index run failed: %v", err)
	}
}

// normalize scales a vector to unit L2 length. Zero vectors pass through
// unchanged.
func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

// dot is the similarity kernel. Valid as cosine similarity only because both
// sides are pre-normalised.
func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// checkDimensions verifies every embedding has the same dimensionality.
func checkDimensions(embeddings [][]float32) error {
	if len(embeddings) == 0 {
		return nil
	}
	dims := len(embeddings[0])
	for i, vec := range embeddings {
		if len(vec) != dims {
			return fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(vec), dims)
		}
	}
	return nil
}
