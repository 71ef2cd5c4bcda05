package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/core"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var (
	projectCreateClient   string
	projectCreateColor    string
	projectCreateRate     float64
	projectCreateCurrency string
)

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectListIncludeArchived bool

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var (
	projectEditName     string
	projectEditClient   string
	projectEditColor    string
	projectEditRate     float64
	projectEditCurrency string
)

var projectEditCmd = &cobra.Command{
	Use:   "edit <name-or-id>",
	Short: "Edit a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectEdit,
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive <name-or-id>",
	Short: "Archive a project, hiding it from listings",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectArchive,
}

var projectDeleteForce bool

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <name-or-id>",
	Short: "Delete a project",
	Long: `Delete refuses to remove a project that still has entries. With --force
the project is removed and its entries become unassigned.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectDelete,
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectCreateClient, "client", "", "Client the project belongs to")
	projectCreateCmd.Flags().StringVar(&projectCreateColor, "color", "", "Display color")
	projectCreateCmd.Flags().Float64Var(&projectCreateRate, "rate", 0, "Hourly billing rate")
	projectCreateCmd.Flags().StringVar(&projectCreateCurrency, "currency", "", "Currency code for the rate")

	projectListCmd.Flags().BoolVarP(&projectListIncludeArchived, "all", "a", false, "Include archived projects")

	projectEditCmd.Flags().StringVar(&projectEditName, "name", "", "New name")
	projectEditCmd.Flags().StringVar(&projectEditClient, "client", "", "New client")
	projectEditCmd.Flags().StringVar(&projectEditColor, "color", "", "New color")
	projectEditCmd.Flags().Float64Var(&projectEditRate, "rate", 0, "New hourly rate")
	projectEditCmd.Flags().StringVar(&projectEditCurrency, "currency", "", "New currency code")

	projectDeleteCmd.Flags().BoolVar(&projectDeleteForce, "force", false, "Delete even if the project has entries")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectArchiveCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	in := core.CreateProjectInput{
		Name:     args[0],
		Currency: projectCreateCurrency,
	}
	if in.Currency == "" {
		in.Currency = cfg.DefaultCurrency
	}
	if projectCreateClient != "" {
		in.Client = &projectCreateClient
	}
	if projectCreateColor != "" {
		in.Color = &projectCreateColor
	}
	if cmd.Flags().Changed("rate") {
		in.Rate = &projectCreateRate
	}

	project, err := core.CreateProject(repo, in)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(project)
	}
	fmt.Fprintf(color.Output, "%s project %q (%s)\n", green("Created"), project.Name, faint(project.ID))
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	projects, err := core.ListProjects(repo, core.ProjectFilters{IncludeArchived: projectListIncludeArchived})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(projects)
	}
	if len(projects) == 0 {
		fmt.Fprintln(color.Output, faint("No projects."))
		return nil
	}
	printProjectTable(projects)
	return nil
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	updates := core.ProjectUpdates{}
	if cmd.Flags().Changed("name") {
		updates.Name = core.Set(projectEditName)
	}
	if cmd.Flags().Changed("client") {
		client := &projectEditClient
		if projectEditClient == "" {
			client = nil
		}
		updates.Client = core.Set(client)
	}
	if cmd.Flags().Changed("color") {
		c := &projectEditColor
		if projectEditColor == "" {
			c = nil
		}
		updates.Color = core.Set(c)
	}
	if cmd.Flags().Changed("rate") {
		rate := &projectEditRate
		if projectEditRate == 0 {
			rate = nil
		}
		updates.Rate = core.Set(rate)
	}
	if cmd.Flags().Changed("currency") {
		updates.Currency = core.Set(projectEditCurrency)
	}

	project, err := core.EditProject(repo, args[0], updates)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(project)
	}
	fmt.Fprintf(color.Output, "%s project %q\n", green("Updated"), project.Name)
	return nil
}

func runProjectArchive(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	project, err := core.ArchiveProject(repo, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(project)
	}
	fmt.Fprintf(color.Output, "%s project %q\n", green("Archived"), project.Name)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	project, err := core.DeleteProject(repo, args[0], projectDeleteForce)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(project)
	}
	fmt.Fprintf(color.Output, "%s project %q\n", red("Deleted"), project.Name)
	return nil
}
