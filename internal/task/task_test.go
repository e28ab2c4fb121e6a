package task

import (
	"testing"

	"jwright/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestImplementTaskIsRequiredAtOrder100(t *testing.T) {
	tk := &ImplementTask{}
	assert.True(t, tk.Required())
	assert.Equal(t, 100, tk.Order())
	assert.Equal(t, "implement", tk.ID())
	assert.True(t, tk.ShouldRun(&model.ExtractionContext{}, &model.PipelineState{}))
}

func TestRefactorTaskIsOptionalAtOrder200(t *testing.T) {
	tk := &RefactorTask{}
	assert.False(t, tk.Required())
	assert.Equal(t, 200, tk.Order())
	assert.Equal(t, "refactor", tk.ID())
}

func TestRefactorShouldRunRequiresPriorSuccessAndGeneratedCode(t *testing.T) {
	tk := &RefactorTask{}
	ectx := &model.ExtractionContext{}

	notRun := &model.PipelineState{LastTaskStatus: model.TaskFailed, GeneratedCode: "x"}
	assert.False(t, tk.ShouldRun(ectx, notRun))

	noCode := &model.PipelineState{LastTaskStatus: model.TaskSuccess}
	assert.False(t, tk.ShouldRun(ectx, noCode))

	ready := &model.PipelineState{LastTaskStatus: model.TaskSuccess, GeneratedCode: "return 1;"}
	assert.True(t, tk.ShouldRun(ectx, ready))
}
