package buildtool

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"jwright/internal/model"
)

// testsuiteXML mirrors the conventional surefire/gradle-test XML report
// shape: <testsuite tests="n" failures="n" errors="n"><testcase
// classname name><failure message/><error message/></testcase></testsuite>.
type testsuiteXML struct {
	XMLName  xml.Name      `xml:"testsuite"`
	Tests    int           `xml:"tests,attr"`
	Failures int           `xml:"failures,attr"`
	Errors   int           `xml:"errors,attr"`
	Cases    []testcaseXML `xml:"testcase"`
}

type testcaseXML struct {
	ClassName string      `xml:"classname,attr"`
	Name      string      `xml:"name,attr"`
	Failure   *failureXML `xml:"failure"`
	Error     *failureXML `xml:"error"`
}

type failureXML struct {
	Message string `xml:"message,attr"`
	Trace   string `xml:",chardata"`
}

// parseReportDir reads every *.xml file in dir and returns the structured
// failures/errors found across all of them.
func parseReportDir(dir string) ([]model.TestFailure, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var failures []model.TestFailure
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".xml" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var suite testsuiteXML
		if err := xml.Unmarshal(data, &suite); err != nil {
			continue
		}
		for _, tc := range suite.Cases {
			if tc.Failure != nil {
				failures = append(failures, model.TestFailure{
					ClassName: tc.ClassName, TestName: tc.Name,
					Message: tc.Failure.Message, Trace: tc.Failure.Trace,
				})
			}
			if tc.Error != nil {
				failures = append(failures, model.TestFailure{
					ClassName: tc.ClassName, TestName: tc.Name,
					Message: tc.Error.Message, Trace: tc.Error.Trace,
				})
			}
		}
	}
	return failures, nil
}

// javacErrorRegex matches the standard javac compile-error dialect:
// /abs/path/File.java:12: error: message
var javacErrorRegex = regexp.MustCompile(`(?m)^(/[^:]+\.java):(\d+): error: (.+)$`)

// gradleErrorRegex matches Gradle's own compile-error summary dialect,
// which prefixes the path/line differently:
// File.java:12: error: message
var gradleErrorRegex = regexp.MustCompile(`(?m)^([^:\s][^:]*\.java):(\d+): error: (.+)$`)

func parseCompileErrors(output string, patterns ...*regexp.Regexp) []model.CompilationError {
	var out []model.CompilationError
	seen := map[string]bool{}
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(output, -1) {
			line, _ := strconv.Atoi(m[2])
			key := m[1] + ":" + m[2] + ":" + m[3]
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, model.CompilationError{Path: m[1], Line: line, Message: m[3]})
		}
	}
	return out
}
