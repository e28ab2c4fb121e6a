// Package buildtool implements the Build Tool Adapter: launching a
// project's compile/test process, preferring its wrapper script, and
// parsing both compile-error output and XML test reports into structured
// records.
package buildtool

import "jwright/internal/model"

// CompileResult is the structured outcome of a compile invocation.
type CompileResult struct {
	Success bool
	Errors  []model.CompilationError
}

// TestResult is the structured outcome of a test-run invocation.
type TestResult struct {
	Success  bool
	Failures []model.TestFailure
}

// Adapter is one build-tool integration (Maven, Gradle, ...).
type Adapter interface {
	ID() string
	// Order breaks ties when more than one adapter's Supports is true;
	// the lowest Order wins.
	Order() int
	Supports(projectDir string) bool
	Command(projectDir string) string
	Compile(projectDir string) (CompileResult, error)
	RunTests(projectDir, testClass string) (TestResult, error)
	RunSingleTest(projectDir, testClass, method string) (TestResult, error)
}
