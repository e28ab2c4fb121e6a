package buildtool

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"jwright/internal/logging"
)

// runResult is the raw combined-output result of one process launch.
type runResult struct {
	ExitCode int
	Output   string
	TimedOut bool
}

// run launches name with args in dir, capturing combined stdout/stderr and
// enforcing timeout (kill on expiry). Exit code zero is only a tentative
// success signal; callers still parse Output for the structured result.
func run(dir, name string, args []string, timeout time.Duration) runResult {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = buildEnv()

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	timer := logging.StartTimer(logging.CategoryBuildTool, name)
	err := cmd.Run()
	timer.Stop()

	res := runResult{Output: buf.String()}
	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		res.ExitCode = -1
		return res
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		return res
	}
	res.ExitCode = 0
	return res
}

// buildEnv passes through the whitelisted environment plus PATH, so a
// wrapper script or system build tool can find its toolchain without
// leaking the caller's full environment into the child process.
func buildEnv() []string {
	whitelist := []string{"PATH", "HOME", "JAVA_HOME", "GRADLE_HOME", "M2_HOME", "MAVEN_OPTS", "GRADLE_OPTS"}
	env := make([]string, 0, len(whitelist))
	for _, k := range whitelist {
		if v, ok := os.LookupEnv(k); ok {
			env = append(env, k+"="+v)
		}
	}
	return env
}

// wrapperOrSystem returns the wrapper script path if a regular file of
// that name exists (on Windows, the name with a .bat suffix), else the
// system command name.
func wrapperOrSystem(projectDir, wrapperName, systemCommand string) string {
	candidate := wrapperName
	if runtime.GOOS == "windows" {
		candidate += ".bat"
	}
	full := filepath.Join(projectDir, candidate)
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		return full
	}
	return systemCommand
}
