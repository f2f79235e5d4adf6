package driven

import (
	"context"
	"time"
)

// Run kinds recorded by the pipeline.
const (
	RunKindBuild = "build"
	RunKindClean = "clean"
	RunKindIndex = "index"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID         string
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	Documents  int
	Sections   int
	Chunks     int
	Error      string
}

// RunStore records pipeline runs for the `runs` command. Bookkeeping only:
// a failed write here must not fail the pipeline.
type RunStore interface {
	// Record appends a finished run.
	Record(ctx context.Context, run Run) error

	// List returns runs most recent first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases resources.
	Close() error
}
