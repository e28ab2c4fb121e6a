package buildtool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSurefireReport = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite tests="1" failures="1" errors="0">
  <testcase classname="com.example.CalculatorTest" name="testAdd">
    <failure message="expected: &lt;5&gt; but was: &lt;0&gt;">stack trace here</failure>
  </testcase>
</testsuite>
`

func TestParseReportDirFindsFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TEST-CalculatorTest.xml"), []byte(sampleSurefireReport), 0644))

	failures, err := parseReportDir(dir)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "com.example.CalculatorTest", failures[0].ClassName)
	assert.Equal(t, "testAdd", failures[0].TestName)
	assert.Contains(t, failures[0].Message, "expected")
}

func TestParseReportDirMissingDirIsEmpty(t *testing.T) {
	failures, err := parseReportDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, failures)
}

func TestParseCompileErrorsJavac(t *testing.T) {
	output := "/home/project/src/main/java/Calculator.java:3: error: ';' expected\n    return a + b\n               ^\n1 error\n"
	errs := parseCompileErrors(output, javacErrorRegex)
	require.Len(t, errs, 1)
	assert.Equal(t, "/home/project/src/main/java/Calculator.java", errs[0].Path)
	assert.Equal(t, 3, errs[0].Line)
	assert.Equal(t, "';' expected", errs[0].Message)
}

func TestParseCompileErrorsDedupesAcrossPatterns(t *testing.T) {
	output := "/abs/Calculator.java:3: error: ';' expected\n"
	errs := parseCompileErrors(output, gradleErrorRegex, javacErrorRegex)
	assert.Len(t, errs, 1)
}
