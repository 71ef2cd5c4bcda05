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
	stopDescription string
	stopTags        []string
	stopAt          string
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	stopCmd.Flags().StringVarP(&stopDescription, "description", "d", "", "Update the description before stopping")
	stopCmd.Flags().StringSliceVarP(&stopTags, "tags", "t", nil, "Update tags before stopping")
	stopCmd.Flags().StringVar(&stopAt, "at", "", "Override the stop time")
}

func runStop(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	in := core.StopTimerInput{}
	if cmd.Flags().Changed("description") {
		in.Description = &stopDescription
	}
	if len(stopTags) > 0 {
		in.Tags = timeparse.ParseTags(stopTags...)
	}
	if stopAt != "" {
		at, err := timeparse.ParseDate(stopAt, time.Now())
		if err != nil {
			return err
		}
		in.At = &at
	}

	entry, err := core.StopTimer(repo, in)
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
	fmt.Fprintf(color.Output, "%s %s after %s\n", green("Stopped"), entryLabel(entry), timeparse.FormatDuration(duration))
	return nil
}
