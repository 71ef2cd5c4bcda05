package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
)

var resumeCmd = &cobra.Command{
	Use:   "resume [entry-id]",
	Short: "Start a new timer from a previous entry",
	Long: `Resume starts a fresh timer cloning the description, project, and tags
of a previous entry. With no argument the most recently stopped entry
is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResume,
}

func runResume(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	in := core.ResumeTimerInput{}
	if len(args) > 0 {
		in.ID = args[0]
	}

	entry, err := core.ResumeTimer(repo, in)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entry)
	}
	fmt.Fprintf(color.Output, "%s %s\n", green("Resumed"), entryLabel(entry))
	return nil
}
