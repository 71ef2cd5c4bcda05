// Package cmd wires the clokk command tree. Every command talks to the
// core through the Repository interface and renders either human output
// or, with --json, machine-readable envelopes.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/config"
	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/store"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "clokk",
	Short: "Track your time from the command line",
	Long: `clokk is a local-first time tracker for humans and agents.
Entries live in a SQLite database under ~/.clokk (or $CLOKK_DIR).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and maps typed failures onto exit
// codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		renderError(err)
		os.Exit(core.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(uiCmd)
}

// openStore opens the default database, creating it on first use.
func openStore() (*store.Store, error) {
	path, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	return store.Open(path)
}

// loadConfig reads the user configuration, falling back to defaults
// when no file exists.
func loadConfig() (config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return config.Default(), err
	}
	return config.Load(path)
}
