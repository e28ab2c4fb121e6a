package main

import (
	"fmt"
	"os"
	"path/filepath"

	"jwright/internal/config"
	"jwright/internal/template"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .jwright/config.yaml and template directory",
	Long: `Creates .jwright/config.yaml (if one doesn't already exist) and
materializes the bundled prompt templates into .jwright/templates/ so they
can be edited per-project. Safe to run more than once: neither the config
file nor a template already on disk is overwritten.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := resolveDir()

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "config already exists: %s\n", configPath)
	} else {
		path, err := config.WriteDefault(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}

	tplDir := filepath.Join(dir, ".jwright", "templates")
	if err := template.WriteBundled(tplDir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "templates available under %s\n", tplDir)
	return nil
}
