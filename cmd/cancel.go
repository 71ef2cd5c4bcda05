package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running timer without saving",
	Args:  cobra.NoArgs,
	RunE:  runCancel,
}

func runCancel(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	entry, err := core.CancelTimer(repo)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entry)
	}
	fmt.Fprintf(color.Output, "%s %s\n", red("Cancelled"), entryLabel(entry))
	return nil
}
