package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"jwright/internal/history"
	"jwright/internal/jwrighterr"
	"jwright/internal/logging"
	"jwright/internal/model"
	"jwright/internal/task"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var (
	implDryRun     bool
	implNoRefactor bool
	implVerbose    bool
	implQuiet      bool
	implTrace      bool
)

var implementCmd = &cobra.Command{
	Use:   "implement <TestClass#testMethod>",
	Short: "Run the implement/refactor loop for one failing test",
	Long: `Extracts context from TestClass's source, asks the configured LM to
write the method the test expects, writes it into the implementation file,
and compiles and runs the test; on failure the compiler or test output is
fed back for up to max-retries attempts.`,
	Args: cobra.ExactArgs(1),
	RunE: runImplement,
}

func init() {
	implementCmd.Flags().BoolVar(&implDryRun, "dry-run", false, "extract and generate but do not write the implementation file")
	implementCmd.Flags().BoolVar(&implNoRefactor, "no-refactor", false, "skip the refactor task even if enabled in config")
	implementCmd.Flags().BoolVarP(&implVerbose, "verbose", "v", false, "include stack traces and per-attempt detail in output")
	implementCmd.Flags().BoolVarP(&implQuiet, "quiet", "q", false, "suppress all but the final result line")
	implementCmd.Flags().BoolVar(&implTrace, "trace", false, "like --verbose, plus every extraction/template/LM step")
}

func runImplement(cmd *cobra.Command, args []string) error {
	target := args[0]
	testClass, testMethod, ok := splitTarget(target)
	if !ok {
		return jwrighterr.New(jwrighterr.NoTestFound, "target must be of the form TestClass#testMethod, got "+target)
	}

	if implTrace {
		if err := logging.ForceDebug(); err != nil {
			return jwrighterr.Wrap(jwrighterr.ConfigInvalid, "could not enable trace logging", err)
		}
	}

	dir := resolveDir()
	collab, err := buildCollaborators(dir)
	if err != nil {
		return err
	}

	testRoot := filepath.Join(dir, collab.cfg.JWright.Paths.Test)
	testSourcePath, err := locateJavaFile(testRoot, testClass, jwrighterr.NoTestFound)
	if err != nil {
		return err
	}

	sourceRoot := filepath.Join(dir, collab.cfg.JWright.Paths.Source)
	implFile, err := locateJavaFile(sourceRoot, implClassName(testClass), jwrighterr.NoImplFound)
	if err != nil {
		return err
	}

	if !collab.deps.LLM.IsAvailable(cmd.Context()) {
		return jwrighterr.New(jwrighterr.LLMUnavailable, "configured LM is not reachable")
	}

	pipeline := collab.newPipeline(implNoRefactor)

	req := task.Request{
		ProjectDir:     dir,
		Target:         target,
		TestClass:      testClass,
		TestMethod:     testMethod,
		TestSourcePath: testSourcePath,
		ImplFile:       implFile,
		SourceRoot:     sourceRoot,
		DryRun:         implDryRun,
		MaxRetries:     collab.cfg.JWright.Tasks.Implement.MaxRetries,
	}

	started := time.Now()
	result, err := pipeline.Run(cmd.Context(), req)
	finished := time.Now()
	if err != nil {
		return err
	}

	recordHistory(dir, collab, target, result, started, finished)
	printImplementResult(cmd, target, result)

	if !result.Success {
		return jwrighterr.New(jwrighterr.GenerationFailed, "implement failed for "+target)
	}
	return nil
}

func splitTarget(target string) (class, method string, ok bool) {
	idx := strings.IndexByte(target, '#')
	if idx <= 0 || idx == len(target)-1 {
		return "", "", false
	}
	return target[:idx], target[idx+1:], true
}

func recordHistory(dir string, collab *collaborators, target string, result model.PipelineResult, started, finished time.Time) {
	historyPath := filepath.Join(dir, collab.cfg.JWright.History.Path)
	store, err := history.Open(historyPath)
	if err != nil {
		return
	}
	defer store.Close()
	_, _ = store.Record(target, dir, result, started, finished)
}

func printImplementResult(cmd *cobra.Command, target string, result model.PipelineResult) {
	out := cmd.OutOrStdout()
	if implQuiet {
		fmt.Fprintln(out, resultLine(target, result))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", resultLine(target, result))
	for _, tr := range result.TaskResults {
		fmt.Fprintf(&b, "- **%s**: %s (%d attempt(s))", tr.TaskID, tr.Status, tr.Attempts)
		if tr.Message != "" {
			fmt.Fprintf(&b, " — %s", tr.Message)
		}
		b.WriteString("\n")
	}
	if (implVerbose || implTrace) && len(result.FailedAttempts) > 0 {
		b.WriteString("\n#### Failed attempts\n\n")
		for _, fa := range result.FailedAttempts {
			fmt.Fprintf(&b, "- attempt %d: %s\n", fa.AttemptNumber, fa.ErrorMessage)
		}
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(out, b.String())
		return
	}
	rendered, err := renderer.Render(b.String())
	if err != nil {
		fmt.Fprint(out, b.String())
		return
	}
	fmt.Fprint(out, rendered)
}

func resultLine(target string, result model.PipelineResult) string {
	if result.Success && result.HasWarnings() {
		return fmt.Sprintf("%s: SUCCESS (with warnings) -> %s", target, result.ModifiedFile)
	}
	if result.Success {
		return fmt.Sprintf("%s: SUCCESS -> %s", target, result.ModifiedFile)
	}
	return fmt.Sprintf("%s: FAILED", target)
}
