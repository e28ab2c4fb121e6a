package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRetryBudget(t *testing.T) {
	s := NewPipelineState("/proj", "/proj/Calculator.java", 2, false)
	assert.True(t, s.CanRetry()) // attempt 1 <= maxRetries 2

	s.RecordFailure(FailedAttempt{AttemptNumber: 1})
	assert.Equal(t, 2, s.Attempt)
	assert.True(t, s.CanRetry())

	s.RecordFailure(FailedAttempt{AttemptNumber: 2})
	assert.Equal(t, 3, s.Attempt)
	assert.False(t, s.CanRetry())
}

func TestHasWarningsOnlyWhenReverted(t *testing.T) {
	r := PipelineResult{TaskResults: []TaskResult{
		{TaskID: "implement", Status: TaskSuccess},
		{TaskID: "refactor", Status: TaskReverted},
	}}
	assert.True(t, r.HasWarnings())

	r2 := PipelineResult{TaskResults: []TaskResult{{TaskID: "implement", Status: TaskSuccess}}}
	assert.False(t, r2.HasWarnings())
}

func TestMethodSignatureRendering(t *testing.T) {
	m := MethodSignature{
		Name:       "add",
		ReturnType: "int",
		Parameters: []Parameter{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}},
	}
	assert.Equal(t, "int add(int a, int b)", m.Signature())
}
