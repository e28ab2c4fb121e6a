// Package main implements the jwright CLI: init, implement, watch, and
// history, wiring config, the build tool adapter, the LM client, the
// extractor chain, and the task pipeline together.
package main

import (
	"fmt"
	"os"

	"jwright/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	projectDir string
	bootLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "jwright",
	Short:   "AI-assisted TDD: implement the method a failing test expects",
	Version: "0.1.0",
	Long: `jwright watches or drives a JUnit-style implement/refactor loop:
given a failing test, it extracts the test's intent, asks a configured LM
to write the method body, writes it into the implementation file, compiles
and runs the test, and retries with the failure fed back on error.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		bootLogger = l

		dir := projectDir
		if dir == "" {
			dir, _ = os.Getwd()
		}
		if err := logging.Initialize(dir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to initialize file logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if bootLogger != nil {
			_ = bootLogger.Sync()
		}
		logging.CloseAll()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "project directory (default: current directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(implementCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}

func resolveDir() string {
	if projectDir != "" {
		return projectDir
	}
	dir, _ := os.Getwd()
	return dir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeForErr(err))
	}
}
