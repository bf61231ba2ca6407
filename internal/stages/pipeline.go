// Package stages implements the document update pipeline: exclusion,
// field rewriting and content handling, run in that order.
package stages

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.StagePipeline = (*Pipeline)(nil)

// Pipeline chains multiple Stages and runs them in order.
type Pipeline struct {
	stages []driven.Stage
}

// NewPipeline creates a new pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...driven.Stage) *Pipeline {
	return &Pipeline{
		stages: stages,
	}
}

// Process runs the document through all stages in order.
// A stage returning driven.Stop ends the run early without error.
// The first error aborts the run; mutations made so far are kept.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil: %w", domain.ErrInvalidInput)
	}

	for _, stage := range p.stages {
		result, err := stage.Apply(ctx, doc)
		if err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		if result == driven.Stop {
			logger.Debug("Stage %s stopped pipeline for %s", stage.Name(), doc.CrawlURL)
			return nil
		}
	}

	return nil
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(stage driven.Stage) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}
	return names
}
