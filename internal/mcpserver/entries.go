package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

func registerEntryTools(srv *server.MCPServer, repo core.Repository) {
	logTool := mcp.NewTool(
		"log_entry",
		mcp.WithDescription("Record a completed time entry after the fact. Provide either 'to' or 'duration', not both."),
		mcp.WithString("description",
			mcp.Description("What was worked on."),
		),
		mcp.WithString("project",
			mcp.Description("Project name or ID."),
		),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("Start time, e.g. \"today 9am\" or \"2026-02-26T09:00:00Z\"."),
		),
		mcp.WithString("to",
			mcp.Description("End time. Mutually exclusive with duration."),
		),
		mcp.WithString("duration",
			mcp.Description("Length, e.g. \"1h30m\" or \"1:30:00\". Mutually exclusive with to."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags."),
		),
		mcp.WithBoolean("billable",
			mcp.Description("Mark as billable (defaults to true)."),
		),
	)
	srv.AddTool(logTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		fromStr, err := request.RequireString("from")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		now := time.Now()
		from, perr := timeparse.ParseDate(fromStr, now)
		if perr != nil {
			return toolResult(nil, perr)
		}

		in := core.LogEntryInput{
			Description: request.GetString("description", ""),
			Project:     request.GetString("project", ""),
			From:        from,
		}
		if toStr := request.GetString("to", ""); toStr != "" {
			to, perr := timeparse.ParseDate(toStr, now)
			if perr != nil {
				return toolResult(nil, perr)
			}
			in.To = &to
		}
		if durStr := request.GetString("duration", ""); durStr != "" {
			seconds, perr := timeparse.ParseDuration(durStr)
			if perr != nil {
				return toolResult(nil, perr)
			}
			in.Duration = &seconds
		}
		if tags := request.GetString("tags", ""); tags != "" {
			in.Tags = timeparse.ParseTags(tags)
		}
		billable := request.GetBool("billable", true)
		in.Billable = &billable

		return toolResult(core.LogEntry(repo, in))
	})

	editTool := mcp.NewTool(
		"edit_entry",
		mcp.WithDescription("Edit fields of an existing entry. Only provided fields change; pass an empty project to clear the reference."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry ID (ent_ prefix)."),
		),
		mcp.WithString("description",
			mcp.Description("New description."),
		),
		mcp.WithString("project",
			mcp.Description("New project name or ID; empty string clears the project."),
		),
		mcp.WithString("start",
			mcp.Description("New start time."),
		),
		mcp.WithString("end",
			mcp.Description("New end time."),
		),
		mcp.WithString("tags",
			mcp.Description("Replacement tags (comma-separated)."),
		),
		mcp.WithBoolean("billable",
			mcp.Description("New billable flag."),
		),
	)
	srv.AddTool(editTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		args := request.GetArguments()
		now := time.Now()
		in := core.EditEntryInput{}

		if v, ok := args["description"].(string); ok {
			in.Description = core.Set(v)
		}
		if v, ok := args["project"].(string); ok {
			in.Project = core.Set(v)
		}
		if v, ok := args["start"].(string); ok {
			t, perr := timeparse.ParseDate(v, now)
			if perr != nil {
				return toolResult(nil, perr)
			}
			in.StartTime = core.Set(t)
		}
		if v, ok := args["end"].(string); ok {
			t, perr := timeparse.ParseDate(v, now)
			if perr != nil {
				return toolResult(nil, perr)
			}
			in.EndTime = core.Set(t)
		}
		if v, ok := args["tags"].(string); ok {
			in.Tags = core.Set(timeparse.ParseTags(v))
		}
		if v, ok := args["billable"].(bool); ok {
			in.Billable = core.Set(v)
		}

		return toolResult(core.EditEntry(repo, id, in))
	})

	deleteTool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Permanently delete a time entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry ID (ent_ prefix)."),
		),
	)
	srv.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toolResult(core.DeleteEntry(repo, id))
	})

	listTool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List time entries with optional filters, newest first."),
		mcp.WithString("project",
			mcp.Description("Filter by project name or ID."),
		),
		mcp.WithString("tags",
			mcp.Description("Filter by tags (comma-separated, all must match)."),
		),
		mcp.WithString("from",
			mcp.Description("Only entries starting at or after this time."),
		),
		mcp.WithString("to",
			mcp.Description("Only entries starting at or before this time."),
		),
		mcp.WithBoolean("billable",
			mcp.Description("Filter by billable flag."),
		),
		mcp.WithBoolean("running",
			mcp.Description("Filter to only running (true) or only completed (false) entries."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Page size (default 50)."),
		),
		mcp.WithNumber("offset",
			mcp.Description("Page offset."),
		),
	)
	srv.AddTool(listTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		now := time.Now()
		filters := core.EntryFilters{
			Limit:  request.GetInt("limit", 50),
			Offset: request.GetInt("offset", 0),
		}

		if ref := request.GetString("project", ""); ref != "" {
			project, err := repo.GetProject(ref)
			if err != nil {
				return toolResult(nil, err)
			}
			if project == nil {
				return toolResult(nil, core.NewProjectNotFound(ref))
			}
			filters.ProjectID = project.ID
		}
		if tags := request.GetString("tags", ""); tags != "" {
			filters.Tags = timeparse.ParseTags(tags)
		}
		if fromStr := request.GetString("from", ""); fromStr != "" {
			from, perr := timeparse.ParseDate(fromStr, now)
			if perr != nil {
				return toolResult(nil, perr)
			}
			filters.From = &from
		}
		if toStr := request.GetString("to", ""); toStr != "" {
			to, perr := timeparse.ParseDate(toStr, now)
			if perr != nil {
				return toolResult(nil, perr)
			}
			filters.To = &to
		}

		args := request.GetArguments()
		if v, ok := args["billable"].(bool); ok {
			filters.Billable = &v
		}
		if v, ok := args["running"].(bool); ok {
			filters.Running = &v
		}

		return toolResult(core.ListEntries(repo, filters))
	})
}
