package watch

import (
	"path/filepath"
	"strings"
)

// TestFileDetector recognizes whether a changed path is a test source file:
// it must end with the configured test suffix and lie under the test
// source root.
type TestFileDetector struct {
	TestSuffix     string // e.g. "Test.java"
	TestSourceRoot string // e.g. "src/test/java", absolute or project-relative
}

// IsTestFile reports whether path qualifies as a test file.
func (d TestFileDetector) IsTestFile(path string) bool {
	if !strings.HasSuffix(path, d.TestSuffix) {
		return false
	}
	if d.TestSourceRoot == "" {
		return true
	}
	rel, err := filepath.Rel(d.TestSourceRoot, path)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..")
}

// ClassName derives the fully-qualified-enough class name from a test file
// path: its base name with the language extension stripped.
func (d TestFileDetector) ClassName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
