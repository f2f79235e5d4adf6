package domain

// ScoredChunk is a single retrieval hit: the stored chunk metadata plus the
// cosine similarity of its embedding against the query vector.
type ScoredChunk struct {
	ChunkMetadata
	Score float64 `json:"score"`
}

// IndexSummary reports the outcome of a successful index build.
type IndexSummary struct {
	IndexedChunks  int    `json:"indexed_chunks"`
	EmbeddingModel string `json:"embedding_model"`
	IndexPath      string `json:"index_path"`
}

// BuildSummary reports the outcome of a dataset build or clean run.
type BuildSummary struct {
	Documents int    `json:"documents"`
	Sections  int    `json:"sections"`
	Chunks    int    `json:"chunks"`
	Output    string `json:"output"`
}
