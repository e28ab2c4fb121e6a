package main

import (
	"errors"
	"testing"

	"jwright/internal/jwrighterr"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeForErrMapsKnownKinds(t *testing.T) {
	assert.Equal(t, 0, exitCodeForErr(nil))
	assert.Equal(t, 2, exitCodeForErr(jwrighterr.New(jwrighterr.ConfigInvalid, "bad config")))
	assert.Equal(t, 3, exitCodeForErr(jwrighterr.New(jwrighterr.NoBuildTool, "no build tool")))
	assert.Equal(t, 4, exitCodeForErr(jwrighterr.New(jwrighterr.LLMUnavailable, "lm down")))
	assert.Equal(t, 1, exitCodeForErr(jwrighterr.New(jwrighterr.GenerationFailed, "failed")))
}

func TestExitCodeForErrDefaultsToOneForPlainError(t *testing.T) {
	assert.Equal(t, 1, exitCodeForErr(errors.New("plain failure")))
}
