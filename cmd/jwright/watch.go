package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"jwright/internal/logging"
	"jwright/internal/model"
	"jwright/internal/task"
	"jwright/internal/tui"
	"jwright/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	watchPaths    []string
	watchDebounce time.Duration
	watchVerbose  bool
	watchQuiet    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch test sources and drive implement on every change",
	Long: `Starts a long-lived filesystem watch session: on every settled
change to a test file, jwright finds that class's failing tests and runs
the implement/refactor loop for each. Blocks until interrupted (Ctrl-C).`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchPaths, "path", nil, "directories to watch (default: config's watch.paths)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "debounce window (default: config's watch.debounce)")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "show a live dashboard of detected/running/resolved targets")
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "print nothing but errors")
}

// pipelineRunner adapts *task.Pipeline to watch.PipelineRunner.
type pipelineRunner struct {
	pipeline *task.Pipeline
}

func (r pipelineRunner) Run(ctx context.Context, req task.Request) (model.PipelineResult, error) {
	return r.pipeline.Run(ctx, req)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := resolveDir()
	collab, err := buildCollaborators(dir)
	if err != nil {
		return err
	}

	paths := watchPaths
	if len(paths) == 0 {
		paths = collab.cfg.JWright.Watch.Paths
	}
	debounce := watchDebounce
	if debounce <= 0 {
		debounce = collab.cfg.JWright.Watch.DebounceDuration()
	}

	runner := pipelineRunner{pipeline: collab.newPipeline(false)}

	var program *tea.Program
	var callbacks watch.Callbacks
	if watchVerbose {
		dashboard := tui.New(dir, debounce)
		program = tea.NewProgram(dashboard, tea.WithAltScreen())
		callbacks = tui.Callbacks(program)
	} else {
		callbacks = plainCallbacks(cmd, watchQuiet)
	}

	handle, err := watch.Start(watch.Request{
		ProjectDir:     dir,
		WatchPaths:     paths,
		Ignore:         collab.cfg.JWright.Watch.Ignore,
		Debounce:       debounce,
		TestSuffix:     "Test.java",
		TestSourceRoot: filepath.Join(dir, collab.cfg.JWright.Paths.Test),
		MaxRetries:     collab.cfg.JWright.Tasks.Implement.MaxRetries,
		Adapter:        collab.adapter,
		Runner:         runner,
		Callbacks:      callbacks,
	})
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if program != nil {
		go func() {
			<-sigCh
			program.Quit()
		}()
		_, runErr := program.Run()
		handle.Stop()
		return runErr
	}

	<-sigCh
	fmt.Fprintln(cmd.OutOrStdout(), "\nstopping watch session")
	handle.Stop()
	return nil
}

func plainCallbacks(cmd *cobra.Command, quiet bool) watch.Callbacks {
	out := cmd.OutOrStdout()
	return watch.Callbacks{
		OnTestDetected: func(target string) {
			if !quiet {
				fmt.Fprintf(out, "detected: %s\n", target)
			}
		},
		OnGenerationStarted: func(target string) {
			if !quiet {
				fmt.Fprintf(out, "running:  %s\n", target)
			}
		},
		OnGenerationComplete: func(target string, result model.PipelineResult) {
			fmt.Fprintln(out, resultLine(target, result))
		},
		OnError: func(err error) {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			logging.WatchError("%v", err)
		},
	}
}
