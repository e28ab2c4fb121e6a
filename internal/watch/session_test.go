package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"jwright/internal/buildtool"
	"jwright/internal/model"
	"jwright/internal/task"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type scriptedRunner struct {
	mu    sync.Mutex
	calls []task.Request
	err   error
}

func (r *scriptedRunner) Run(ctx context.Context, req task.Request) (model.PipelineResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, req)
	if r.err != nil {
		return model.PipelineResult{}, r.err
	}
	return model.PipelineResult{Success: true, ModifiedFile: req.ImplFile}, nil
}

func (r *scriptedRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSessionDispatchesOnTestFileChange(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var completed []string
	runner := &scriptedRunner{}
	adapter := fakeAdapter{testResult: buildtool.TestResult{
		Success:  false,
		Failures: []model.TestFailure{{ClassName: "CalculatorTest", TestName: "testAdd", Message: "expected 5"}},
	}}

	h, err := Start(Request{
		ProjectDir: dir,
		WatchPaths: []string{dir},
		Debounce:   30 * time.Millisecond,
		TestSuffix: "Test.java",
		Adapter:    adapter,
		Runner:     runner,
		Callbacks: Callbacks{
			OnGenerationComplete: func(target string, result model.PipelineResult) {
				mu.Lock()
				defer mu.Unlock()
				completed = append(completed, target)
			},
		},
	})
	require.NoError(t, err)
	defer h.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "CalculatorTest.java"), []byte("class CalculatorTest {}"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(completed) == 1
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, "CalculatorTest#testAdd", completed[0])
}

func TestSessionIgnoresNonTestFiles(t *testing.T) {
	dir := t.TempDir()
	runner := &scriptedRunner{}

	h, err := Start(Request{
		ProjectDir: dir,
		WatchPaths: []string{dir},
		Debounce:   30 * time.Millisecond,
		TestSuffix: "Test.java",
		Adapter:    fakeAdapter{},
		Runner:     runner,
	})
	require.NoError(t, err)
	defer h.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Calculator.java"), []byte("class Calculator {}"), 0644))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 0, runner.callCount())
}

func TestSessionStopIsIdempotentAndWaitsForInFlight(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	started := make(chan struct{})
	release := make(chan struct{})

	runner := runnerFunc(func(ctx context.Context, req task.Request) (model.PipelineResult, error) {
		close(started)
		<-release
		return model.PipelineResult{Success: true}, nil
	})

	adapter := fakeAdapter{testResult: buildtool.TestResult{
		Success:  false,
		Failures: []model.TestFailure{{ClassName: "SlowTest", TestName: "testSlow", Message: "timed out"}},
	}}

	h, err := Start(Request{
		ProjectDir: dir,
		WatchPaths: []string{dir},
		Debounce:   10 * time.Millisecond,
		TestSuffix: "Test.java",
		Adapter:    adapter,
		Runner:     runner,
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "SlowTest.java"), []byte("class SlowTest {}"), 0644))

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline never started")
	}

	stopDone := make(chan struct{})
	go func() {
		h.Stop()
		close(stopDone)
	}()

	select {
	case <-stopDone:
		t.Fatal("Stop returned before in-flight dispatch completed")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)

	select {
	case <-stopDone:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop never returned after in-flight dispatch completed")
	}

	assert.False(t, h.IsRunning())
	h.Stop() // idempotent
}

type runnerFunc func(ctx context.Context, req task.Request) (model.PipelineResult, error)

func (f runnerFunc) Run(ctx context.Context, req task.Request) (model.PipelineResult, error) {
	return f(ctx, req)
}
