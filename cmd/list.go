package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

var (
	listProject  string
	listTags     []string
	listRange    rangeFlagSet
	listBillable bool
	listRunning  bool
	listLimit    int
	listOffset   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "Filter by project name or ID")
	listCmd.Flags().StringSliceVarP(&listTags, "tags", "t", nil, "Filter by tags (all must match)")
	listRange.register(listCmd)
	listCmd.Flags().BoolVar(&listBillable, "billable", false, "Only billable (or --billable=false, only non-billable) entries")
	listCmd.Flags().BoolVar(&listRunning, "running", false, "Only the running (or --running=false, only completed) entries")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Page size")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Page offset")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	rng, err := listRange.resolve(cfg.WeekStartDay())
	if err != nil {
		return err
	}

	filters := core.EntryFilters{
		From:   rng.From,
		To:     rng.To,
		Limit:  listLimit,
		Offset: listOffset,
	}
	if listProject != "" {
		project, err := repo.GetProject(listProject)
		if err != nil {
			return err
		}
		if project == nil {
			return core.NewProjectNotFound(listProject)
		}
		filters.ProjectID = project.ID
	}
	if len(listTags) > 0 {
		filters.Tags = timeparse.ParseTags(listTags...)
	}
	if cmd.Flags().Changed("billable") {
		filters.Billable = &listBillable
	}
	if cmd.Flags().Changed("running") {
		filters.Running = &listRunning
	}

	result, err := core.ListEntries(repo, filters)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}

	if len(result.Entries) == 0 {
		fmt.Fprintln(color.Output, faint("No entries."))
		return nil
	}
	printEntryTable(result.Entries, newProjectResolver(repo))
	if result.Total > len(result.Entries) {
		fmt.Fprintln(color.Output, faint(fmt.Sprintf("Showing %d of %d entries.", len(result.Entries), result.Total)))
	}
	return nil
}
