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
	startProject  string
	startTags     []string
	startBillable bool
	startAt       string
)

var startCmd = &cobra.Command{
	Use:   "start [description]",
	Short: "Start a new timer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startProject, "project", "p", "", "Project name or ID")
	startCmd.Flags().StringSliceVarP(&startTags, "tags", "t", nil, "Tags for the entry")
	startCmd.Flags().BoolVar(&startBillable, "billable", true, "Mark the entry as billable")
	startCmd.Flags().StringVar(&startAt, "at", "", "Override the start time, e.g. \"10 minutes ago\"")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	in := core.StartTimerInput{Project: startProject}
	if len(args) > 0 {
		in.Description = args[0]
	}
	if in.Project == "" {
		in.Project = cfg.DefaultProject
	}
	if len(startTags) > 0 {
		in.Tags = timeparse.ParseTags(startTags...)
	}

	billable := cfg.DefaultBillable
	if cmd.Flags().Changed("billable") {
		billable = startBillable
	}
	in.Billable = &billable

	if startAt != "" {
		at, err := timeparse.ParseDate(startAt, time.Now())
		if err != nil {
			return err
		}
		in.At = &at
	}

	entry, err := core.StartTimer(repo, in)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entry)
	}
	fmt.Fprintf(color.Output, "%s %s at %s\n", green("Started"), entryLabel(entry), formatLocal(entry.StartTime))
	return nil
}
