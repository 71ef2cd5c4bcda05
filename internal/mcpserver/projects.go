package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/machielvdw/clokk/internal/core"
)

func registerProjectTools(srv *server.MCPServer, repo core.Repository) {
	createTool := mcp.NewTool(
		"create_project",
		mcp.WithDescription("Create a new project. Project names are unique."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name."),
		),
		mcp.WithString("client",
			mcp.Description("Client the project belongs to."),
		),
		mcp.WithString("color",
			mcp.Description("Display color, e.g. a hex code."),
		),
		mcp.WithNumber("rate",
			mcp.Description("Hourly billing rate."),
		),
		mcp.WithString("currency",
			mcp.Description("Currency code for the rate (defaults to USD)."),
		),
	)
	srv.AddTool(createTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in := core.CreateProjectInput{
			Name:     name,
			Currency: request.GetString("currency", ""),
		}
		if client := request.GetString("client", ""); client != "" {
			in.Client = &client
		}
		if color := request.GetString("color", ""); color != "" {
			in.Color = &color
		}
		if _, ok := request.GetArguments()["rate"]; ok {
			rate := request.GetFloat("rate", 0)
			in.Rate = &rate
		}
		return toolResult(core.CreateProject(repo, in))
	})

	listTool := mcp.NewTool(
		"list_projects",
		mcp.WithDescription("List projects, alphabetically. Archived projects are hidden unless requested."),
		mcp.WithBoolean("include_archived",
			mcp.Description("Include archived projects."),
		),
	)
	srv.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(core.ListProjects(repo, core.ProjectFilters{
			IncludeArchived: request.GetBool("include_archived", false),
		}))
	})

	archiveTool := mcp.NewTool(
		"archive_project",
		mcp.WithDescription("Archive a project. Archived projects keep their entries but are hidden from listings."),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID."),
		),
	)
	srv.AddTool(archiveTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("project")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(core.ArchiveProject(repo, ref))
	})

	deleteTool := mcp.NewTool(
		"delete_project",
		mcp.WithDescription("Delete a project. Fails if the project has entries unless force is set, in which case entries are kept and unassigned."),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name or ID."),
		),
		mcp.WithBoolean("force",
			mcp.Description("Delete even if the project has entries."),
		),
	)
	srv.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("project")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(core.DeleteProject(repo, ref, request.GetBool("force", false)))
	})
}
