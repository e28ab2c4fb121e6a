package tui

import (
	"jwright/internal/model"
	"jwright/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// Callbacks builds a watch.Callbacks that forwards every event into p
// via p.Send, the same channel-free bridging pattern used to drive the
// dashboard from a long-lived background session.
func Callbacks(p *tea.Program) watch.Callbacks {
	return watch.Callbacks{
		OnTestDetected: func(target string) {
			p.Send(TestDetectedMsg{Target: target})
		},
		OnGenerationStarted: func(target string) {
			p.Send(GenerationStartedMsg{Target: target})
		},
		OnGenerationComplete: func(target string, result model.PipelineResult) {
			p.Send(GenerationCompleteMsg{Target: target, Result: result})
		},
		OnError: func(err error) {
			p.Send(ErrorMsg{Err: err})
		},
	}
}
