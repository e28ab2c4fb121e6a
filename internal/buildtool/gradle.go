package buildtool

import (
	"path/filepath"
	"time"

	"jwright/internal/logging"
)

// GradleAdapter recognizes a project by build.gradle(.kts) and prefers the
// gradlew wrapper script over the system gradle command.
type GradleAdapter struct {
	Timeout time.Duration
}

func (GradleAdapter) ID() string { return "gradle" }
func (GradleAdapter) Order() int { return 20 }

func (GradleAdapter) Supports(projectDir string) bool {
	return fileExists(filepath.Join(projectDir, "build.gradle")) ||
		fileExists(filepath.Join(projectDir, "build.gradle.kts"))
}

func (GradleAdapter) Command(projectDir string) string {
	return wrapperOrSystem(projectDir, "gradlew", "gradle")
}

func (a GradleAdapter) Compile(projectDir string) (CompileResult, error) {
	res := run(projectDir, a.Command(projectDir), []string{"compileJava"}, a.Timeout)
	logging.BuildToolDebug("gradle compile exit=%d timedOut=%v", res.ExitCode, res.TimedOut)
	errs := parseCompileErrors(res.Output, gradleErrorRegex, javacErrorRegex)
	return CompileResult{Success: res.ExitCode == 0 && len(errs) == 0, Errors: errs}, nil
}

func (a GradleAdapter) RunTests(projectDir, testClass string) (TestResult, error) {
	return a.runTest(projectDir, "--tests", testClass)
}

func (a GradleAdapter) RunSingleTest(projectDir, testClass, method string) (TestResult, error) {
	return a.runTest(projectDir, "--tests", testClass+"."+method)
}

func (a GradleAdapter) runTest(projectDir, flag, pattern string) (TestResult, error) {
	res := run(projectDir, a.Command(projectDir), []string{"test", flag, pattern}, a.Timeout)
	logging.BuildToolDebug("gradle test exit=%d timedOut=%v", res.ExitCode, res.TimedOut)

	failures, err := parseReportDir(filepath.Join(projectDir, "build", "test-results", "test"))
	if err != nil {
		return TestResult{}, err
	}
	return TestResult{Success: res.ExitCode == 0 && len(failures) == 0, Failures: failures}, nil
}

var _ Adapter = GradleAdapter{}
