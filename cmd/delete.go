package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	entry, err := core.DeleteEntry(repo, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entry)
	}
	fmt.Fprintf(color.Output, "%s %s\n", red("Deleted"), entryLabel(entry))
	return nil
}
