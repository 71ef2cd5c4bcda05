package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running timer, if any",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	status, err := core.GetStatus(repo)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(status)
	}

	if !status.Running {
		fmt.Fprintln(color.Output, faint("No timer running."))
		return nil
	}

	resolver := newProjectResolver(repo)
	entry := status.Entry
	fmt.Fprintf(color.Output, "%s %s  %s\n", green("●"), entryLabel(entry), bold(formatClock(*status.ElapsedSeconds)))
	if name := resolver.name(entry.ProjectID); name != "" {
		fmt.Fprintln(color.Output, faint("  project: "+name))
	}
	fmt.Fprintln(color.Output, faint("  since:   "+formatLocal(entry.StartTime)))
	return nil
}
