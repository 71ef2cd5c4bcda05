package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

var (
	editDescription string
	editProject     string
	editStart       string
	editEnd         string
	editTags        []string
	editBillable    bool
)

var editCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Edit an entry",
	Long: `Edit changes only the fields whose flags are given. Passing --project ""
clears the project reference.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editProject, "project", "p", "", "New project name or ID (empty clears)")
	editCmd.Flags().StringVar(&editStart, "start", "", "New start time")
	editCmd.Flags().StringVar(&editEnd, "end", "", "New end time")
	editCmd.Flags().StringSliceVarP(&editTags, "tags", "t", nil, "Replacement tags")
	editCmd.Flags().BoolVar(&editBillable, "billable", true, "New billable flag")
}

func runEdit(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	now := time.Now()
	in := core.EditEntryInput{}

	if cmd.Flags().Changed("description") {
		in.Description = core.Set(editDescription)
	}
	if cmd.Flags().Changed("project") {
		in.Project = core.Set(editProject)
	}
	if cmd.Flags().Changed("start") {
		start, err := timeparse.ParseDate(editStart, now)
		if err != nil {
			return err
		}
		in.StartTime = core.Set(start)
	}
	if cmd.Flags().Changed("end") {
		end, err := timeparse.ParseDate(editEnd, now)
		if err != nil {
			return err
		}
		in.EndTime = core.Set(end)
	}
	if cmd.Flags().Changed("tags") {
		in.Tags = core.Set(timeparse.ParseTags(editTags...))
	}
	if cmd.Flags().Changed("billable") {
		in.Billable = core.Set(editBillable)
	}

	entry, err := core.EditEntry(repo, args[0], in)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entry)
	}
	fmt.Fprintf(color.Output, "%s %s\n", green("Updated"), entryLabel(entry))
	return nil
}
