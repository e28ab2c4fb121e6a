package tui

import (
	"testing"
	"time"

	"jwright/internal/model"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(t *testing.T) func() {
	t.Helper()
	orig := now
	now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return func() { now = orig }
}

func TestUpdateTestDetectedAppendsEvent(t *testing.T) {
	defer fixedNow(t)()
	m := New("/proj", 500*time.Millisecond)

	updated, cmd := m.Update(TestDetectedMsg{Target: "CalculatorTest#testAdd"})
	got := updated.(Model)

	assert.Nil(t, cmd)
	require.Len(t, got.events, 1)
	assert.Equal(t, PhaseDetected, got.events[0].Phase)
	assert.Equal(t, "CalculatorTest#testAdd", got.events[0].Target)
}

func TestUpdateGenerationCompleteSuccessIncrementsCounter(t *testing.T) {
	defer fixedNow(t)()
	m := New("/proj", 500*time.Millisecond)

	updated, _ := m.Update(GenerationCompleteMsg{
		Target: "CalculatorTest#testAdd",
		Result: model.PipelineResult{Success: true},
	})
	got := updated.(Model)

	assert.Equal(t, 1, got.successes)
	assert.Equal(t, 0, got.failures)
	require.Len(t, got.events, 1)
	assert.Equal(t, PhaseSucceeded, got.events[0].Phase)
}

func TestUpdateGenerationCompleteFailureIncrementsCounter(t *testing.T) {
	defer fixedNow(t)()
	m := New("/proj", 500*time.Millisecond)

	updated, _ := m.Update(GenerationCompleteMsg{
		Target: "CalculatorTest#testAdd",
		Result: model.PipelineResult{Success: false},
	})
	got := updated.(Model)

	assert.Equal(t, 0, got.successes)
	assert.Equal(t, 1, got.failures)
	assert.Equal(t, PhaseFailed, got.events[0].Phase)
}

func TestUpdateGenerationCompleteWithWarningsStillSucceeds(t *testing.T) {
	defer fixedNow(t)()
	m := New("/proj", 500*time.Millisecond)

	updated, _ := m.Update(GenerationCompleteMsg{
		Target: "CalculatorTest#testAdd",
		Result: model.PipelineResult{
			Success: true,
			TaskResults: []model.TaskResult{
				{TaskID: "refactor", Status: model.TaskReverted},
			},
		},
	})
	got := updated.(Model)

	assert.Equal(t, 1, got.successes)
	require.Len(t, got.events, 1)
	assert.Contains(t, got.events[0].Detail, "refactor reverted")
}

func TestUpdateErrorIncrementsErrorCounter(t *testing.T) {
	defer fixedNow(t)()
	m := New("/proj", 500*time.Millisecond)

	updated, _ := m.Update(ErrorMsg{Err: assertError("boom")})
	got := updated.(Model)

	assert.Equal(t, 1, got.errors)
	assert.Equal(t, PhaseErrored, got.events[0].Phase)
}

func TestUpdateKeyQQuits(t *testing.T) {
	m := New("/proj", 500*time.Millisecond)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}

func TestPushEventBoundsScrollback(t *testing.T) {
	defer fixedNow(t)()
	m := New("/proj", 500*time.Millisecond)
	for i := 0; i < maxEvents+10; i++ {
		updated, _ := m.Update(TestDetectedMsg{Target: "T"})
		m = updated.(Model)
	}
	assert.Len(t, m.events, maxEvents)
}

func TestViewRendersWatchedDirectoryAndFooter(t *testing.T) {
	m := New("/proj/widget", 750*time.Millisecond)
	view := m.View()
	assert.Contains(t, view, "/proj/widget")
	assert.Contains(t, view, "waiting for test file changes")
	assert.Contains(t, view, "750ms")
}

func TestSpinnerTicksWhileGenerationRunning(t *testing.T) {
	m := New("/proj", 500*time.Millisecond)

	updated, cmd := m.Update(GenerationStartedMsg{Target: "CalculatorTest#testAdd"})
	got := updated.(Model)
	require.Equal(t, 1, got.running)
	require.NotNil(t, cmd)

	updated, cmd = got.Update(spinner.TickMsg{})
	got = updated.(Model)
	assert.NotNil(t, cmd)
	assert.Contains(t, got.View(), "running")
}

func TestSpinnerTickIsNoopOnceIdle(t *testing.T) {
	m := New("/proj", 500*time.Millisecond)

	updated, cmd := m.Update(spinner.TickMsg{})
	got := updated.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, got.running)
}

func TestGenerationCompleteStopsSpinner(t *testing.T) {
	defer fixedNow(t)()
	m := New("/proj", 500*time.Millisecond)

	updated, _ := m.Update(GenerationStartedMsg{Target: "CalculatorTest#testAdd"})
	got := updated.(Model)
	require.Equal(t, 1, got.running)

	updated, _ = got.Update(GenerationCompleteMsg{
		Target: "CalculatorTest#testAdd",
		Result: model.PipelineResult{Success: true},
	})
	got = updated.(Model)
	assert.Equal(t, 0, got.running)
	assert.NotContains(t, got.View(), "running  debounce")
}

type assertError string

func (e assertError) Error() string { return string(e) }
