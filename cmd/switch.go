package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

var (
	switchProject string
	switchTags    []string
)

var switchCmd = &cobra.Command{
	Use:   "switch <description>",
	Short: "Stop the running timer and start a new one",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwitch,
}

func init() {
	switchCmd.Flags().StringVarP(&switchProject, "project", "p", "", "Project name or ID for the new timer")
	switchCmd.Flags().StringSliceVarP(&switchTags, "tags", "t", nil, "Tags for the new timer")
}

func runSwitch(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	in := core.SwitchTimerInput{
		Description: args[0],
		Project:     switchProject,
	}
	if len(switchTags) > 0 {
		in.Tags = timeparse.ParseTags(switchTags...)
	}

	result, err := core.SwitchTimer(repo, in)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}
	duration := int64(0)
	if d := result.Stopped.DurationSeconds(); d != nil {
		duration = *d
	}
	fmt.Fprintf(color.Output, "%s %s after %s\n", green("Stopped"), entryLabel(result.Stopped), timeparse.FormatDuration(duration))
	fmt.Fprintf(color.Output, "%s %s\n", green("Started"), entryLabel(result.Started))
	return nil
}
