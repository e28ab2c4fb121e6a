package task

import (
	"context"

	"jwright/internal/buildtool"
	"jwright/internal/model"
)

// scriptedLLM returns its configured responses in order, one per call;
// the last response repeats once exhausted.
type scriptedLLM struct {
	responses []string
	calls     int
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string) (string, error) {
	idx := s.calls
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	s.calls++
	return s.responses[idx], nil
}

func (s *scriptedLLM) IsAvailable(ctx context.Context) bool { return true }

// erroringLLM always fails with a fixed error.
type erroringLLM struct {
	err error
}

func (e *erroringLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return "", e.err
}
func (e *erroringLLM) IsAvailable(ctx context.Context) bool { return false }

// scriptedAdapter returns one compile/test outcome pair per call, holding
// on the last entry once exhausted; it always "supports" any directory.
type scriptedAdapter struct {
	compiles []buildtool.CompileResult
	tests    []buildtool.TestResult
	compileI int
	testI    int
}

func (a *scriptedAdapter) ID() string                  { return "scripted" }
func (a *scriptedAdapter) Order() int                  { return 0 }
func (a *scriptedAdapter) Supports(dir string) bool    { return true }
func (a *scriptedAdapter) Command(dir string) string   { return "scripted" }

func (a *scriptedAdapter) Compile(dir string) (buildtool.CompileResult, error) {
	idx := a.compileI
	if idx >= len(a.compiles) {
		idx = len(a.compiles) - 1
	}
	a.compileI++
	return a.compiles[idx], nil
}

func (a *scriptedAdapter) RunTests(dir, class string) (buildtool.TestResult, error) {
	return a.RunSingleTest(dir, class, "")
}

func (a *scriptedAdapter) RunSingleTest(dir, class, method string) (buildtool.TestResult, error) {
	idx := a.testI
	if idx >= len(a.tests) {
		idx = len(a.tests) - 1
	}
	a.testI++
	return a.tests[idx], nil
}

var _ buildtool.Adapter = (*scriptedAdapter)(nil)

func alwaysPassAdapter() *scriptedAdapter {
	return &scriptedAdapter{
		compiles: []buildtool.CompileResult{{Success: true}},
		tests:    []buildtool.TestResult{{Success: true}},
	}
}

func fixtureContext(targetName string, params []model.Parameter) *model.ExtractionContext {
	return &model.ExtractionContext{
		TestClassName:  "CalculatorTest",
		TestMethodName: "testAdd",
		TestMethodBody: "assertEquals(5, calc.add(2, 3));",
		TargetSignature: &model.MethodSignature{
			Name:       targetName,
			ReturnType: "int",
			Parameters: params,
		},
		ImplSourcePath: "/tmp/Calculator.java",
	}
}
