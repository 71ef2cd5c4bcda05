package cmd

import (
	"github.com/spf13/cobra"

	"github.com/machielvdw/clokk/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Serve the clokk toolset over the Model Context Protocol so agents can
track time through the same core the CLI uses. Communication happens on
stdin/stdout; run this from an MCP client configuration, not by hand.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	repo, err := openStore()
	if err != nil {
		return err
	}
	defer repo.Close()

	return mcpserver.Serve(repo, Version)
}
