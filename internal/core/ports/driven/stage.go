package driven

import (
	"context"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// StageResult tells the pipeline whether to run the next stage.
type StageResult int

const (
	// Continue runs the next stage.
	Continue StageResult = iota

	// Stop ends the pipeline without error.
	Stop
)

// Stage is one step of the document update pipeline.
// Stages mutate the document in place.
type Stage interface {
	// Name returns the stage name for logging and error wrapping.
	Name() string

	// Apply mutates the document. Returning Stop skips all later stages.
	Apply(ctx context.Context, doc *domain.Document) (StageResult, error)
}

// StagePipeline chains multiple Stages.
type StagePipeline interface {
	// Process runs the document through all stages in order.
	Process(ctx context.Context, doc *domain.Document) error
}
