package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCodeFirstFencedBlockWins(t *testing.T) {
	response := "Here is the fix:\n```java\nreturn a + b;\n```\nLet me know if you need more.\n```java\nreturn a - b;\n```"
	assert.Equal(t, "return a + b;", extractCode(response))
}

func TestExtractCodeStripsLanguageTag(t *testing.T) {
	assert.Equal(t, "return 1;", extractCode("```java\nreturn 1;\n```"))
}

func TestExtractCodeNoFenceReturnsTrimmedResponse(t *testing.T) {
	assert.Equal(t, "return 1;", extractCode("   return 1;   \n"))
}

func TestExtractCodeUnterminatedFenceReturnsRestTrimmed(t *testing.T) {
	assert.Equal(t, "return 1;", extractCode("```java\nreturn 1;\n"))
}
