package jwrighterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, 2, ExitCode(ConfigInvalid))
	assert.Equal(t, 3, ExitCode(NoBuildTool))
	assert.Equal(t, 4, ExitCode(LLMUnavailable))
	assert.Equal(t, 1, ExitCode(GenerationFailed))
	assert.Equal(t, 1, ExitCode(ValidationFailed))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ExtractionFailed, "could not parse test file", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "EXTRACTION_FAILED")
	assert.Contains(t, err.Error(), "boom")
}

func TestNewHasNoCause(t *testing.T) {
	err := New(NoTestFound, "test method not found")
	assert.Nil(t, err.Unwrap())
}
