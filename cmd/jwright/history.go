package main

import (
	"fmt"
	"path/filepath"

	"jwright/internal/config"
	"jwright/internal/history"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history <TestClass#testMethod>",
	Short: "List past implement runs recorded for a target",
	Long: `Not part of the original design: a thin read of the run-history
database implement already writes to, so a target's past attempts are
visible without re-running the pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	target := args[0]
	dir := resolveDir()

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	store, err := history.Open(filepath.Join(dir, cfg.JWright.History.Path))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListByTarget(target, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no recorded runs for %s\n", target)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, r := range runs {
		status := "FAILED"
		if r.Success {
			status = "SUCCESS"
		}
		fmt.Fprintf(out, "%s  %s  %s\n", r.StartedAt.Format("2006-01-02 15:04:05"), status, r.ID)
		for _, tr := range r.TaskResults {
			fmt.Fprintf(out, "    %s: %s (%d attempt(s))\n", tr.TaskID, tr.Status, tr.Attempts)
		}
	}
	return nil
}
