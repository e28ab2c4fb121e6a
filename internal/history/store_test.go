package history

import (
	"path/filepath"
	"testing"
	"time"

	"jwright/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndListByTargetRoundTrips(t *testing.T) {
	s := openTestStore(t)
	started := time.Now().Add(-time.Second)
	finished := time.Now()

	result := model.PipelineResult{
		Success:      true,
		ModifiedFile: "src/main/java/Calculator.java",
		TaskResults: []model.TaskResult{
			{TaskID: "implement", Status: model.TaskSuccess, Attempts: 2},
			{TaskID: "refactor", Status: model.TaskReverted, Attempts: 1, Message: "refactor regressed"},
		},
		FailedAttempts: []model.FailedAttempt{
			{AttemptNumber: 1, ErrorMessage: "compile error"},
		},
	}

	runID, err := s.Record("CalculatorTest#testAdd", "/proj", result, started, finished)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	runs, err := s.ListByTarget("CalculatorTest#testAdd", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, runID, got.ID)
	assert.True(t, got.Success)
	assert.Equal(t, "src/main/java/Calculator.java", got.ModifiedFile)
	require.Len(t, got.TaskResults, 2)
	assert.Equal(t, "implement", got.TaskResults[0].TaskID)
	assert.Equal(t, model.TaskSuccess, got.TaskResults[0].Status)
	assert.Equal(t, 2, got.TaskResults[0].Attempts)
	assert.Equal(t, "refactor", got.TaskResults[1].TaskID)
	assert.Equal(t, model.TaskReverted, got.TaskResults[1].Status)
	require.Len(t, got.FailedAttempts, 1)
	assert.Equal(t, "compile error", got.FailedAttempts[0].ErrorMessage)
}

func TestListByTargetOrdersMostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	_, err := s.Record("FooTest#bar", "/proj", model.PipelineResult{Success: false}, base, base.Add(time.Second))
	require.NoError(t, err)
	_, err = s.Record("FooTest#bar", "/proj", model.PipelineResult{Success: true}, base.Add(time.Minute), base.Add(time.Minute+time.Second))
	require.NoError(t, err)

	runs, err := s.ListByTarget("FooTest#bar", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Success, "most recent run should be first")
	assert.False(t, runs[1].Success)
}

func TestListByTargetRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		_, err := s.Record("ManyTest#run", "/proj", model.PipelineResult{Success: true}, ts, ts.Add(time.Second))
		require.NoError(t, err)
	}

	runs, err := s.ListByTarget("ManyTest#run", 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListByTargetEmptyWhenUnknown(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.ListByTarget("NoSuchTest#method", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, path, s.Path())
}
