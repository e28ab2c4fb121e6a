package task

import (
	"context"
	"fmt"
	"strings"

	"jwright/internal/model"
	"jwright/internal/writer"
)

// ImplementTask is the required, order-100 core generate/write/compile/test
// loop. Retries are driven by the pipeline, not by the task itself: each
// call to Execute is exactly one attempt.
type ImplementTask struct {
	Deps Deps
}

func (t *ImplementTask) ID() string    { return "implement" }
func (t *ImplementTask) Order() int    { return 100 }
func (t *ImplementTask) Required() bool { return true }

func (t *ImplementTask) ShouldRun(*model.ExtractionContext, *model.PipelineState) bool {
	return true
}

func (t *ImplementTask) Execute(ctx context.Context, ectx *model.ExtractionContext, state *model.PipelineState) model.TaskResult {
	vars := buildVars(ectx, state)

	prompt, err := t.Deps.Engine.RenderTemplate("implement.tmpl", vars)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "render template: " + err.Error(), Attempts: 1}
	}

	response, err := t.Deps.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "LM call failed: " + err.Error(), Attempts: 1}
	}

	code := extractCode(response)
	state.GeneratedCode = code

	if state.DryRun {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskSuccess, Message: "dry-run: code generated but not written", Attempts: 1}
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
		Mode:       writer.Inject,
	})
	if !res.Success {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "write failed: " + res.Error, Attempts: 1}
	}

	compile, err := t.Deps.Adapter.Compile(state.ProjectDir)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "compile invocation failed: " + err.Error(), Attempts: 1}
	}
	if !compile.Success {
		msg := formatCompilationErrors(compile.Errors)
		fa := model.FailedAttempt{AttemptNumber: state.Attempt, GeneratedCode: code, ErrorMessage: msg}
		if len(compile.Errors) > 0 {
			fa.CompilationError = &compile.Errors[0]
		}
		state.FailedAttempts = append(state.FailedAttempts, fa)
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: msg, Attempts: 1}
	}

	testRes, err := t.Deps.Adapter.RunSingleTest(state.ProjectDir, ectx.TestClassName, ectx.TestMethodName)
	if err != nil {
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: "test invocation failed: " + err.Error(), Attempts: 1}
	}
	if !testRes.Success {
		msg := formatTestFailures(testRes.Failures)
		fa := model.FailedAttempt{AttemptNumber: state.Attempt, GeneratedCode: code, ErrorMessage: msg}
		if len(testRes.Failures) > 0 {
			fa.TestFailure = &testRes.Failures[0]
		}
		state.FailedAttempts = append(state.FailedAttempts, fa)
		return model.TaskResult{TaskID: t.ID(), Status: model.TaskFailed, Message: msg, Attempts: 1}
	}

	return model.TaskResult{TaskID: t.ID(), Status: model.TaskSuccess, Message: "implemented", Attempts: 1}
}

func formatCompilationError(e model.CompilationError) string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}

func formatCompilationErrors(errs []model.CompilationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = formatCompilationError(e)
	}
	return strings.Join(parts, "; ")
}

func formatTestFailure(f model.TestFailure) string {
	return fmt.Sprintf("%s#%s: %s", f.ClassName, f.TestName, f.Message)
}

func formatTestFailures(failures []model.TestFailure) string {
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = formatTestFailure(f)
	}
	return strings.Join(parts, "; ")
}

var _ Task = (*ImplementTask)(nil)
