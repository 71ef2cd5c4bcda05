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
	logProject  string
	logTags     []string
	logBillable bool
	logFrom     string
	logTo       string
	logDuration string
)

var logCmd = &cobra.Command{
	Use:   "log [description]",
	Short: "Record a completed entry after the fact",
	Long: `Log records work that already happened. Give the start with --from and
either the end (--to) or the length (--duration), never both.`,
	Example: `  clokk log "code review" --from "today 9am" --to "today 10:30am"
  clokk log "standup" --from "15 minutes ago" --duration 15m`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVarP(&logProject, "project", "p", "", "Project name or ID")
	logCmd.Flags().StringSliceVarP(&logTags, "tags", "t", nil, "Tags for the entry")
	logCmd.Flags().BoolVar(&logBillable, "billable", true, "Mark the entry as billable")
	logCmd.Flags().StringVar(&logFrom, "from", "", "Start time (required)")
	logCmd.Flags().StringVar(&logTo, "to", "", "End time")
	logCmd.Flags().StringVar(&logDuration, "duration", "", "Length, e.g. 1h30m or 1:30:00")
	_ = logCmd.MarkFlagRequired("from")
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	now := time.Now()
	from, err := timeparse.ParseDate(logFrom, now)
	if err != nil {
		return err
	}

	in := core.LogEntryInput{
		Project: logProject,
		From:    from,
	}
	if len(args) > 0 {
		in.Description = args[0]
	}
	if in.Project == "" {
		in.Project = cfg.DefaultProject
	}
	if len(logTags) > 0 {
		in.Tags = timeparse.ParseTags(logTags...)
	}
	if logTo != "" {
		to, err := timeparse.ParseDate(logTo, now)
		if err != nil {
			return err
		}
		in.To = &to
	}
	if logDuration != "" {
		seconds, err := timeparse.ParseDuration(logDuration)
		if err != nil {
			return err
		}
		in.Duration = &seconds
	}

	billable := cfg.DefaultBillable
	if cmd.Flags().Changed("billable") {
		billable = logBillable
	}
	in.Billable = &billable

	entry, err := core.LogEntry(repo, in)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(entry)
	}
	duration := int64(0)
	if d := entry.DurationSeconds(); d != nil {
		duration = *d
	}
	fmt.Fprintf(color.Output, "%s %s (%s)\n", green("Logged"), entryLabel(entry), timeparse.FormatDuration(duration))
	return nil
}
