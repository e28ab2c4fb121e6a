package main

import (
	"testing"

	"jwright/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSplitTargetParsesClassAndMethod(t *testing.T) {
	class, method, ok := splitTarget("CalculatorTest#testAdd")
	assert.True(t, ok)
	assert.Equal(t, "CalculatorTest", class)
	assert.Equal(t, "testAdd", method)
}

func TestSplitTargetRejectsMissingHash(t *testing.T) {
	_, _, ok := splitTarget("CalculatorTest")
	assert.False(t, ok)
}

func TestSplitTargetRejectsEmptyClassOrMethod(t *testing.T) {
	_, _, ok := splitTarget("#testAdd")
	assert.False(t, ok)

	_, _, ok = splitTarget("CalculatorTest#")
	assert.False(t, ok)
}

func TestResultLineReportsWarningsOnReverted(t *testing.T) {
	result := model.PipelineResult{
		Success:      true,
		ModifiedFile: "Calculator.java",
		TaskResults: []model.TaskResult{
			{TaskID: "implement", Status: model.TaskSuccess},
			{TaskID: "refactor", Status: model.TaskReverted},
		},
	}
	line := resultLine("CalculatorTest#testAdd", result)
	assert.Contains(t, line, "SUCCESS (with warnings)")
	assert.Contains(t, line, "Calculator.java")
}

func TestResultLineReportsFailure(t *testing.T) {
	line := resultLine("CalculatorTest#testAdd", model.PipelineResult{Success: false})
	assert.Contains(t, line, "FAILED")
}
