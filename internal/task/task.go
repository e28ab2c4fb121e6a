// Package task implements the Implement and Refactor tasks and the Task
// Pipeline that runs an ordered, retry-capable, backup-guarded sequence of
// them against an extraction context.
package task

import (
	"context"

	"jwright/internal/buildtool"
	"jwright/internal/llm"
	"jwright/internal/model"
	"jwright/internal/template"
)

// Task is one ordered, possibly-optional step of the pipeline.
type Task interface {
	ID() string
	// Order determines execution sequence; lower runs first.
	Order() int
	// Required tasks revert the whole pipeline on exhausted retries;
	// optional tasks revert only their own change and continue.
	Required() bool
	// ShouldRun decides whether this task applies given the context and
	// the state accumulated by prior tasks.
	ShouldRun(ectx *model.ExtractionContext, state *model.PipelineState) bool
	// Execute performs one attempt. It never panics or returns Go errors
	// for ordinary failure; those are reported via TaskResult.Status.
	Execute(ctx context.Context, ectx *model.ExtractionContext, state *model.PipelineState) model.TaskResult
}

// Deps bundles the collaborators every task needs, assembled once by the
// CLI/watch layer and threaded through the pipeline.
type Deps struct {
	LLM     llm.Client
	Adapter buildtool.Adapter
	Engine  *template.Engine
}
