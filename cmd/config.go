package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the full configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Example: `  clokk config set default_project website
  clokk config set week_start sunday`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{
			config.KeyDefaultProject:  cfg.DefaultProject,
			config.KeyDefaultBillable: cfg.DefaultBillable,
			config.KeyDefaultCurrency: cfg.DefaultCurrency,
			config.KeyWeekStart:       cfg.WeekStart,
			config.KeyDateFormat:      cfg.DateFormat,
		})
	}

	fmt.Fprintf(color.Output, "%s = %q\n", config.KeyDefaultProject, cfg.DefaultProject)
	fmt.Fprintf(color.Output, "%s = %t\n", config.KeyDefaultBillable, cfg.DefaultBillable)
	fmt.Fprintf(color.Output, "%s = %q\n", config.KeyDefaultCurrency, cfg.DefaultCurrency)
	fmt.Fprintf(color.Output, "%s = %q\n", config.KeyWeekStart, cfg.WeekStart)
	fmt.Fprintf(color.Output, "%s = %q\n", config.KeyDateFormat, cfg.DateFormat)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	value, err := config.Get(cfg, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{args[0]: value})
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	updated, err := config.Set(cfg, args[0], args[1])
	if err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}
	if err := config.Save(path, updated); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{args[0]: args[1]})
	}
	fmt.Fprintf(color.Output, "%s %s\n", green("Set"), args[0])
	return nil
}
