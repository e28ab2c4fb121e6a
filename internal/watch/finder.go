package watch

import (
	"jwright/internal/buildtool"
)

// FailingTestFinder runs a test class through the build tool and reports
// the fully-qualified (Class#method) targets whose case failed or errored.
type FailingTestFinder struct {
	Adapter buildtool.Adapter
}

// Find runs className's test suite and returns its failing targets. A
// clean run (including zero test methods) returns an empty, non-nil-error
// slice.
func (f FailingTestFinder) Find(projectDir, className string) ([]string, error) {
	result, err := f.Adapter.RunTests(projectDir, className)
	if err != nil {
		return nil, err
	}

	targets := make([]string, 0, len(result.Failures))
	for _, failure := range result.Failures {
		targets = append(targets, failure.ClassName+"#"+failure.TestName)
	}
	return targets, nil
}
