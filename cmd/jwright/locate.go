package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"jwright/internal/jwrighterr"
)

var errFound = errors.New("jwright: file located, stop walk")

// locateJavaFile walks root for a file named className+".java", returning
// the first match. kind is the jwrighterr.Kind to report if nothing is
// found or root can't be walked (NoTestFound or NoImplFound, depending on
// the caller).
func locateJavaFile(root, className string, kind jwrighterr.Kind) (string, error) {
	want := className + ".java"
	var found string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if !info.IsDir() && info.Name() == want {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", jwrighterr.Wrap(kind, "failed to search "+root+" for "+want, err)
	}
	if found == "" {
		return "", jwrighterr.New(kind, "could not find "+want+" under "+root)
	}
	return found, nil
}

// implClassName derives the implementation class name jwright looks for
// from a test class name, per the `Test`/`Tests` suffix convention spec's
// examples use throughout (CalculatorTest -> Calculator).
func implClassName(testClassName string) string {
	for _, suffix := range []string{"Test", "Tests", "IT"} {
		if trimmed := strings.TrimSuffix(testClassName, suffix); trimmed != testClassName {
			return trimmed
		}
	}
	return testClassName
}
