package cmd

import (
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

var (
	reportGroupBy  string
	reportProject  string
	reportTags     []string
	reportRange    rangeFlagSet
	reportBillable bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize tracked time",
	Example: `  clokk report --week
  clokk report --month --group-by tag
  clokk report --from "last monday" --to today -p website`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportGroupBy, "group-by", "g", "project", "Group by project, tag, day, or week")
	reportCmd.Flags().StringVarP(&reportProject, "project", "p", "", "Filter by project name or ID")
	reportCmd.Flags().StringSliceVarP(&reportTags, "tags", "t", nil, "Filter by tags")
	reportRange.register(reportCmd)
	reportCmd.Flags().BoolVar(&reportBillable, "billable", false, "Only billable (or --billable=false, only non-billable) entries")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	groupBy, err := core.ParseGroupBy(reportGroupBy)
	if err != nil {
		return err
	}
	rng, err := reportRange.resolve(cfg.WeekStartDay())
	if err != nil {
		return err
	}

	filters := core.ReportFilters{
		From:    rng.From,
		To:      rng.To,
		GroupBy: groupBy,
	}
	if reportProject != "" {
		project, err := repo.GetProject(reportProject)
		if err != nil {
			return err
		}
		if project == nil {
			return core.NewProjectNotFound(reportProject)
		}
		filters.ProjectID = project.ID
	}
	if len(reportTags) > 0 {
		filters.Tags = timeparse.ParseTags(reportTags...)
	}
	if cmd.Flags().Changed("billable") {
		filters.Billable = &reportBillable
	}

	result, err := core.GenerateReport(repo, filters)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}
	printReport(result)
	return nil
}
