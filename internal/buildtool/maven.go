package buildtool

import (
	"path/filepath"
	"time"

	"jwright/internal/logging"
)

// MavenAdapter recognizes a project by pom.xml and prefers the mvnw
// wrapper script over the system mvn command.
type MavenAdapter struct {
	Timeout time.Duration
}

func (MavenAdapter) ID() string { return "maven" }
func (MavenAdapter) Order() int { return 10 }

func (MavenAdapter) Supports(projectDir string) bool {
	return fileExists(filepath.Join(projectDir, "pom.xml"))
}

func (MavenAdapter) Command(projectDir string) string {
	return wrapperOrSystem(projectDir, "mvnw", "mvn")
}

func (a MavenAdapter) Compile(projectDir string) (CompileResult, error) {
	res := run(projectDir, a.Command(projectDir), []string{"compile"}, a.Timeout)
	logging.BuildToolDebug("maven compile exit=%d timedOut=%v", res.ExitCode, res.TimedOut)
	errs := parseCompileErrors(res.Output, javacErrorRegex)
	return CompileResult{Success: res.ExitCode == 0 && len(errs) == 0, Errors: errs}, nil
}

func (a MavenAdapter) RunTests(projectDir, testClass string) (TestResult, error) {
	return a.runTest(projectDir, testClass, "")
}

func (a MavenAdapter) RunSingleTest(projectDir, testClass, method string) (TestResult, error) {
	return a.runTest(projectDir, testClass, method)
}

func (a MavenAdapter) runTest(projectDir, testClass, method string) (TestResult, error) {
	pattern := testClass
	if method != "" {
		pattern = testClass + "#" + method
	}
	res := run(projectDir, a.Command(projectDir), []string{"test", "-Dtest=" + pattern}, a.Timeout)
	logging.BuildToolDebug("maven test exit=%d timedOut=%v", res.ExitCode, res.TimedOut)

	failures, err := parseReportDir(filepath.Join(projectDir, "target", "surefire-reports"))
	if err != nil {
		return TestResult{}, err
	}
	return TestResult{Success: res.ExitCode == 0 && len(failures) == 0, Failures: failures}, nil
}

var _ Adapter = MavenAdapter{}
