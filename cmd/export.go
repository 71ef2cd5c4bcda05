package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/export"
	"github.com/machielvdw/clokk/internal/timeparse"
)

var (
	exportFormat  string
	exportOutput  string
	exportProject string
	exportTags    []string
	exportRange   rangeFlagSet
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries as CSV or JSON",
	Example: `  clokk export --month -f csv -o february.csv
  clokk export --from 2026-02-01 --to 2026-02-28 -f json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().StringVarP(&exportProject, "project", "p", "", "Filter by project name or ID")
	exportCmd.Flags().StringSliceVarP(&exportTags, "tags", "t", nil, "Filter by tags")
	exportRange.register(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	rng, err := exportRange.resolve(cfg.WeekStartDay())
	if err != nil {
		return err
	}

	filters := core.ReportFilters{From: rng.From, To: rng.To}
	if exportProject != "" {
		project, err := repo.GetProject(exportProject)
		if err != nil {
			return err
		}
		if project == nil {
			return core.NewProjectNotFound(exportProject)
		}
		filters.ProjectID = project.ID
	}
	if len(exportTags) > 0 {
		filters.Tags = timeparse.ParseTags(exportTags...)
	}

	result, err := export.ForRepository(repo, filters, format)
	if err != nil {
		return err
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(result.Data+"\n"), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(color.Output, "%s %d entries to %s\n", green("Exported"), result.EntryCount, exportOutput)
		return nil
	}

	fmt.Println(result.Data)
	return nil
}
