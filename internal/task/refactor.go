package task

import (
	"context"

	"jwright/internal/model"
	"jwright/internal/writer"
)

// RefactorTask is the optional, order-200 cleanup pass. It never retries:
// a single failed attempt reports FAILED and lets the pipeline revert just
// this task's change, leaving Implement's output in place.
type RefactorTask struct {
	Deps Deps
}

func (t *RefactorTask) ID() string     { return "refactor" }
func (t *RefactorTask) Order() int     { return 200 }
func (t *RefactorTask) Required() bool { return false }

func (t *RefactorTask) ShouldRun(ectx *model.ExtractionContext, state *model.PipelineState) bool {
	return state.LastTaskStatus == model.TaskSuccess && state.GeneratedCode != ""
}

func (t *RefactorTask) Execute(ctx context.Context, ectx *model.ExtractionContext, state *model.PipelineState) model.TaskResult {
	vars := buildVars(ectx, state)

	prompt, err := t.Deps.Engine.RenderTemplate("refactor.tmpl", vars)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "render template: " + err.Error(), Attempts: 1}
	}

	response, err := t.Deps.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "LM call failed: " + err.Error(), Attempts: 1}
	}

	code := extractCode(response)

	if state.DryRun {
		state.GeneratedCode = code
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskSuccess, Message: "dry-run: refactor generated but not written", Attempts: 1}
	}

	if ectx.TargetSignature == nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "no target method resolved", Attempts: 1}
	}

	res := writer.Write(writer.WriteRequest{
		Path:       state.ImplFile,
		ClassName:  ectx.TestClassName,
		MethodName: ectx.TargetSignature.Name,
		ReturnType: ectx.TargetSignature.ReturnType,
		Params:     paramString(ectx.TargetSignature.Parameters),
		Body:       code,
		Mode:       writer.Replace,
	})
	if !res.Success {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "write failed: " + res.Error, Attempts: 1}
	}

	compile, err := t.Deps.Adapter.Compile(state.ProjectDir)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "compile invocation failed: " + err.Error(), Attempts: 1}
	}
	if !compile.Success {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: formatCompilationErrors(compile.Errors), Attempts: 1}
	}

	testRes, err := t.Deps.Adapter.RunSingleTest(state.ProjectDir, ectx.TestClassName, ectx.TestMethodName)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "test invocation failed: " + err.Error(), Attempts: 1}
	}
	if !testRes.Success {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: formatTestFailures(testRes.Failures), Attempts: 1}
	}

	state.GeneratedCode = code
	return model.TaskResult{TaskID: t.ID(), Status: model.TaskSuccess, Message: "refactored", Attempts: 1}
}

var _ Task = (*RefactorTask)(nil)
