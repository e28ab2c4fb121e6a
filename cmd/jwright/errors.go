package main

import (
	"errors"

	"jwright/internal/jwrighterr"
)

// exitCodeForErr maps err to the process exit code documented for
// `implement`: a jwrighterr.Error carries its own Kind, anything else is
// a generic failure (1).
func exitCodeForErr(err error) int {
	if err == nil {
		return 0
	}
	var jerr *jwrighterr.Error
	if errors.As(err, &jerr) {
		return jwrighterr.ExitCode(jerr.Kind)
	}
	return 1
}
