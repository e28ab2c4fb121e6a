package task

import (
	"testing"

	"jwright/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildVarsPopulatesSectionsOnlyWhenNonEmpty(t *testing.T) {
	ectx := &model.ExtractionContext{
		TestClassName:  "CalculatorTest",
		TestMethodName: "testAdd",
		Assertions:     []model.Assertion{{Kind: model.AssertEquals, Expected: "5", Actual: "calc.add(2,3)"}},
	}
	state := model.NewPipelineState("/proj", "/proj/Calculator.java", 2, false)

	v := buildVars(ectx, state)
	assert.True(t, v.HasAssertions)
	assert.False(t, v.HasMockSetups)
	assert.False(t, v.HasHints)
	assert.False(t, v.HasFailedAttempts)
	assert.Equal(t, "CalculatorTest", v.TestClassName)
}

func TestBuildVarsIncludesFailedAttemptsWithStructuredDetail(t *testing.T) {
	ectx := &model.ExtractionContext{TestClassName: "CalculatorTest"}
	state := model.NewPipelineState("/proj", "/proj/Calculator.java", 3, false)
	state.FailedAttempts = append(state.FailedAttempts, model.FailedAttempt{
		AttemptNumber:    1,
		GeneratedCode:    "return a - b;",
		ErrorMessage:     "test failed",
		CompilationError: &model.CompilationError{Path: "Calculator.java", Line: 2, Message: "bad"},
	})

	v := buildVars(ectx, state)
	assert.True(t, v.HasFailedAttempts)
	assert.Len(t, v.FailedAttempts, 1)
	assert.Contains(t, v.FailedAttempts[0].CompilationErrors[0], "Calculator.java:2")
}

func TestParamStringRendersCommaSeparated(t *testing.T) {
	params := []model.Parameter{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}}
	assert.Equal(t, "int a, int b", paramString(params))
}

func TestParamStringEmptyForNoParameters(t *testing.T) {
	assert.Equal(t, "", paramString(nil))
}
