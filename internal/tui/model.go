// Package tui implements the live dashboard shown by `jwright watch
// --verbose`: a scrolling view of test targets as they're detected,
// dispatched to the task pipeline, and resolved.
package tui

import (
	"fmt"
	"strings"
	"time"

	"jwright/internal/model"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// maxEvents bounds the dashboard's scrollback; older entries are
// dropped rather than grown without limit.
const maxEvents = 200

// Phase is the lifecycle stage of one dispatched target.
type Phase string

const (
	PhaseDetected  Phase = "detected"
	PhaseRunning   Phase = "running"
	PhaseSucceeded Phase = "succeeded"
	PhaseFailed    Phase = "failed"
	PhaseErrored   Phase = "errored"
)

// Event is one line of dashboard history.
type Event struct {
	Target string
	Phase  Phase
	Detail string
	At     time.Time
}

// Messages the watch session feeds into the bubbletea program. Callbacks
// (bridge.go) sends one of them from each watch.Callbacks hook.
type (
	TestDetectedMsg       struct{ Target string }
	GenerationStartedMsg  struct{ Target string }
	GenerationCompleteMsg struct {
		Target string
		Result model.PipelineResult
	}
	ErrorMsg struct{ Err error }
)

// Model is the dashboard's bubbletea state.
type Model struct {
	watchedDir string
	debounce   time.Duration

	events    []Event
	successes int
	failures  int
	errors    int
	running   int

	spinner spinner.Model

	width  int
	height int
	styles Styles
}

// New constructs a dashboard Model for a session watching dir with the
// given debounce period.
func New(watchedDir string, debounce time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{
		watchedDir: watchedDir,
		debounce:   debounce,
		styles:     DefaultStyles(),
		spinner:    s,
	}
}

// Init starts the spinner ticking; it idles itself once running drops
// back to zero (see the spinner.TickMsg case in Update).
func (m Model) Init() tea.Cmd { return m.spinner.Tick }

// Update handles the dashboard's own resize/quit keys plus the four
// watch-session messages above.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case TestDetectedMsg:
		m.pushEvent(Event{Target: msg.Target, Phase: PhaseDetected, At: now()})
		return m, nil

	case GenerationStartedMsg:
		m.running++
		m.pushEvent(Event{Target: msg.Target, Phase: PhaseRunning, At: now()})
		// restart the tick loop, which idles while nothing is running
		return m, m.spinner.Tick

	case GenerationCompleteMsg:
		phase := PhaseSucceeded
		detail := "implemented"
		if !msg.Result.Success {
			phase = PhaseFailed
			detail = "failed after retries"
		} else if msg.Result.HasWarnings() {
			detail = "implemented (refactor reverted)"
		}
		if phase == PhaseSucceeded {
			m.successes++
		} else {
			m.failures++
		}
		m.decRunning()
		m.pushEvent(Event{Target: msg.Target, Phase: phase, Detail: detail, At: now()})
		return m, nil

	case ErrorMsg:
		m.errors++
		m.decRunning()
		m.pushEvent(Event{Phase: PhaseErrored, Detail: msg.Err.Error(), At: now()})
		return m, nil

	case spinner.TickMsg:
		if m.running <= 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// decRunning lowers the in-flight count, clamped at zero: GenerationComplete
// and Error aren't guaranteed to be 1:1 with a prior GenerationStarted (a
// dispatch error can fire before any start callback).
func (m *Model) decRunning() {
	if m.running > 0 {
		m.running--
	}
}

func (m *Model) pushEvent(e Event) {
	m.events = append(m.events, e)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(fmt.Sprintf(" jwright watch — %s ", m.watchedDir)))
	b.WriteString("\n\n")

	if len(m.events) == 0 {
		b.WriteString(m.styles.Muted.Render("waiting for test file changes..."))
		b.WriteString("\n")
	}
	for _, e := range m.events {
		b.WriteString(m.renderEvent(e))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf(
		"debounce=%s  succeeded=%d  failed=%d  errors=%d  (q to quit)",
		m.debounce, m.successes, m.failures, m.errors,
	)
	if m.running > 0 {
		footer = m.spinner.View() + " running  " + footer
	}
	b.WriteString(m.styles.Footer.Render(footer))
	return b.String()
}

func (m Model) renderEvent(e Event) string {
	ts := e.At.Format("15:04:05")
	switch e.Phase {
	case PhaseDetected:
		return fmt.Sprintf("%s  %s  %s", ts, m.styles.Target.Render(e.Target), m.styles.Muted.Render("detected"))
	case PhaseRunning:
		return fmt.Sprintf("%s  %s  %s", ts, m.styles.Target.Render(e.Target), m.styles.Running.Render("running..."))
	case PhaseSucceeded:
		return fmt.Sprintf("%s  %s  %s", ts, m.styles.Target.Render(e.Target), m.styles.Success.Render(e.Detail))
	case PhaseFailed:
		return fmt.Sprintf("%s  %s  %s", ts, m.styles.Target.Render(e.Target), m.styles.Failure.Render(e.Detail))
	case PhaseErrored:
		return fmt.Sprintf("%s  %s", ts, m.styles.Error.Render(e.Detail))
	default:
		return fmt.Sprintf("%s  %s", ts, e.Target)
	}
}

// now is a var so tests can stub it; production leaves it as time.Now.
var now = time.Now
