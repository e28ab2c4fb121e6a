package task

import (
	"context"
	"sort"

	"jwright/internal/buildtool"
	"jwright/internal/extract"
	"jwright/internal/jwrighterr"
	"jwright/internal/model"
	"jwright/internal/writer"
)

// Request is the input to a pipeline run.
type Request struct {
	ProjectDir     string
	Target         string // "TestClass#testMethod"
	TestClass      string
	TestMethod     string
	TestSourcePath string // path to TestClass's source file; defaults to TestClass if empty
	ImplFile       string
	SourceRoot     string
	DryRun         bool
	MaxRetries     int
}

// Pipeline holds the ordered task list, built once at bootstrap from
// configuration (Implement always present; Refactor present only when
// enabled).
type Pipeline struct {
	Tasks     []Task
	Resolver  *buildtool.Resolver
	Extractor *extract.Chain
}

// NewPipeline builds a pipeline with Implement always registered at order
// 100, and Refactor registered at order 200 only when refactorEnabled.
func NewPipeline(deps Deps, refactorEnabled bool, resolver *buildtool.Resolver, chain *extract.Chain) *Pipeline {
	tasks := []Task{&ImplementTask{Deps: deps}}
	if refactorEnabled {
		tasks = append(tasks, &RefactorTask{Deps: deps})
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Order() < tasks[j].Order() })
	return &Pipeline{Tasks: tasks, Resolver: resolver, Extractor: chain}
}

// Run resolves the build tool, builds the extraction context, and executes
// every registered task in order, honoring the snapshot/revert/retry
// semantics of spec §4.9.
func (p *Pipeline) Run(ctx context.Context, req Request) (model.PipelineResult, error) {
	adapter := p.Resolver.Resolve(req.ProjectDir)
	if adapter == nil {
		return model.PipelineResult{}, jwrighterr.New(jwrighterr.NoBuildTool, "no build tool supports "+req.ProjectDir)
	}

	testSourcePath := req.TestSourcePath
	if testSourcePath == "" {
		testSourcePath = req.TestClass
	}
	ectx := p.Extractor.Build(&model.ExtractionRequest{
		TestSourcePath: testSourcePath,
		TestClassName:  req.TestClass,
		TestMethodName: req.TestMethod,
		ImplSourcePath: req.ImplFile,
		SourceRoot:     req.SourceRoot,
	})

	state := model.NewPipelineState(req.ProjectDir, req.ImplFile, req.MaxRetries, req.DryRun)
	backups := writer.NewBackupStore()

	var results []model.TaskResult

	for _, t := range p.Tasks {
		state.CurrentTask = t.ID()

		if !t.ShouldRun(ectx, state) {
			results = append(results, model.TaskResult{TaskID: t.ID(), Status: model.TaskSkipped})
			continue
		}

		if err := backups.Snapshot(state.ImplFile); err != nil {
			return model.PipelineResult{}, jwrighterr.Wrap(jwrighterr.GenerationFailed, "failed to snapshot "+state.ImplFile, err)
		}

		result, status := p.runTaskWithRetry(ctx, t, ectx, state)

		switch status {
		case model.TaskSuccess:
			results = append(results, result)
			state.LastTaskStatus = model.TaskSuccess
		case model.TaskReverted:
			_ = backups.RevertLast()
			result.Status = model.TaskReverted
			results = append(results, result)
			state.LastTaskStatus = model.TaskReverted
		default: // FAILED, required task exhausted retries
			_ = backups.RevertAll()
			results = append(results, result)
			return model.PipelineResult{Success: false, TaskResults: results, FailedAttempts: state.FailedAttempts}, nil
		}
	}

	backups.Commit()
	return model.PipelineResult{
		Success:        true,
		TaskResults:    results,
		ModifiedFile:   state.ImplFile,
		FinalCode:      state.GeneratedCode,
		FailedAttempts: state.FailedAttempts,
	}, nil
}

// runTaskWithRetry executes t, retrying in place (no new snapshot) while
// the task is required and state.CanRetry() holds. It returns the last
// result and a status already resolved to one of SUCCESS, FAILED (required,
// retries exhausted), or REVERTED (optional, failed once).
func (p *Pipeline) runTaskWithRetry(ctx context.Context, t Task, ectx *model.ExtractionContext, state *model.PipelineState) (model.TaskResult, model.TaskStatus) {
	startAttempt := state.Attempt
	for {
		result := t.Execute(ctx, ectx, state)
		result.Attempts = state.Attempt - startAttempt + 1

		if result.Status == model.TaskSuccess {
			return result, model.TaskSuccess
		}

		if !t.Required() {
			return result, model.TaskReverted
		}

		if state.CanRetry() {
			state.Attempt++
			continue
		}

		return result, model.TaskFailed
	}
}
