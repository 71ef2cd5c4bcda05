package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

// parseAt converts an optional free-form date argument. An empty value
// yields nil (meaning "now").
func parseAt(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timeparse.ParseDate(value, time.Now())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func registerTimerTools(srv *server.MCPServer, repo core.Repository) {
	startTool := mcp.NewTool(
		"start_timer",
		mcp.WithDescription("Start a new time tracking timer. Only one timer can run at a time. Use switch_timer to transition between tasks without stopping."),
		mcp.WithString("description",
			mcp.Description("What you are working on."),
		),
		mcp.WithString("project",
			mcp.Description("Project name or ID (prj_ prefix). Use list_projects to find available projects."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags to categorize this entry."),
		),
		mcp.WithBoolean("billable",
			mcp.Description("Mark as billable (defaults to true)."),
		),
		mcp.WithString("at",
			mcp.Description("Override the start time, e.g. \"10 minutes ago\" or \"today 9am\"."),
		),
	)
	srv.AddTool(startTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		at, err := parseAt(request.GetString("at", ""))
		if err != nil {
			return toolResult(nil, err)
		}
		in := core.StartTimerInput{
			Description: request.GetString("description", ""),
			Project:     request.GetString("project", ""),
			At:          at,
		}
		if tags := request.GetString("tags", ""); tags != "" {
			in.Tags = timeparse.ParseTags(tags)
		}
		billable := request.GetBool("billable", true)
		in.Billable = &billable

		return toolResult(core.StartTimer(repo, in))
	})

	stopTool := mcp.NewTool(
		"stop_timer",
		mcp.WithDescription("Stop the currently running timer. Optionally update the description or tags before stopping."),
		mcp.WithString("description",
			mcp.Description("Update the description before stopping."),
		),
		mcp.WithString("tags",
			mcp.Description("Update tags before stopping (comma-separated)."),
		),
		mcp.WithString("at",
			mcp.Description("Override the stop time."),
		),
	)
	srv.AddTool(stopTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		at, err := parseAt(request.GetString("at", ""))
		if err != nil {
			return toolResult(nil, err)
		}
		in := core.StopTimerInput{At: at}
		if desc := request.GetString("description", ""); desc != "" {
			in.Description = &desc
		}
		if tags := request.GetString("tags", ""); tags != "" {
			in.Tags = timeparse.ParseTags(tags)
		}
		return toolResult(core.StopTimer(repo, in))
	})

	switchTool := mcp.NewTool(
		"switch_timer",
		mcp.WithDescription("Atomically stop the current timer and start a new one. Preferred over separate stop_timer + start_timer calls for task transitions."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("What you are switching to."),
		),
		mcp.WithString("project",
			mcp.Description("Project name or ID for the new timer."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma-separated tags for the new timer."),
		),
	)
	srv.AddTool(switchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		description, err := request.RequireString("description")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in := core.SwitchTimerInput{
			Description: description,
			Project:     request.GetString("project", ""),
		}
		if tags := request.GetString("tags", ""); tags != "" {
			in.Tags = timeparse.ParseTags(tags)
		}
		return toolResult(core.SwitchTimer(repo, in))
	})

	statusTool := mcp.NewTool(
		"timer_status",
		mcp.WithDescription("Check if a timer is currently running. Returns the running entry with elapsed seconds, or running: false."),
	)
	srv.AddTool(statusTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(core.GetStatus(repo))
	})

	resumeTool := mcp.NewTool(
		"resume_timer",
		mcp.WithDescription("Start a new timer cloning the description, project, and tags from the most recently stopped entry. Optionally specify an entry ID to resume a specific entry instead."),
		mcp.WithString("id",
			mcp.Description("Entry ID (ent_ prefix) to resume. If omitted, resumes the most recently stopped entry."),
		),
	)
	srv.AddTool(resumeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(core.ResumeTimer(repo, core.ResumeTimerInput{ID: request.GetString("id", "")}))
	})

	cancelTool := mcp.NewTool(
		"cancel_timer",
		mcp.WithDescription("Discard the running timer without saving. The entry is permanently deleted. Use this when a timer was started by mistake."),
	)
	srv.AddTool(cancelTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(core.CancelTimer(repo))
	})
}
