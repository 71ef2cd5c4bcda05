package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/export"
	"github.com/machielvdw/clokk/internal/timeparse"
)

// reportFilters assembles the shared filter arguments of generate_report
// and export_entries.
func reportFilters(repo core.Repository, request mcp.CallToolRequest) (core.ReportFilters, error) {
	now := time.Now()
	filters := core.ReportFilters{}

	if ref := request.GetString("project", ""); ref != "" {
		project, err := repo.GetProject(ref)
		if err != nil {
			return filters, err
		}
		if project == nil {
			return filters, core.NewProjectNotFound(ref)
		}
		filters.ProjectID = project.ID
	}
	if tags := request.GetString("tags", ""); tags != "" {
		filters.Tags = timeparse.ParseTags(tags)
	}
	if v, ok := request.GetArguments()["billable"].(bool); ok {
		filters.Billable = &v
	}

	flags := timeparse.RangeFlags{
		Today:     request.GetBool("today", false),
		Yesterday: request.GetBool("yesterday", false),
		Week:      request.GetBool("week", false),
		Month:     request.GetBool("month", false),
	}
	if fromStr := request.GetString("from", ""); fromStr != "" {
		from, err := timeparse.ParseDate(fromStr, now)
		if err != nil {
			return filters, err
		}
		flags.From = &from
	}
	if toStr := request.GetString("to", ""); toStr != "" {
		to, err := timeparse.ParseDate(toStr, now)
		if err != nil {
			return filters, err
		}
		flags.To = &to
	}

	rng := timeparse.ResolveRange(flags, time.Monday, now)
	filters.From = rng.From
	filters.To = rng.To
	return filters, nil
}

func registerReportTools(srv *server.MCPServer, repo core.Repository) {
	reportTool := mcp.NewTool(
		"generate_report",
		mcp.WithDescription("Summarize tracked time with totals per group. Use the shortcut flags (today, week, month) or explicit from/to bounds."),
		mcp.WithString("group_by",
			mcp.Description("Grouping strategy: project (default), tag, day, or week."),
		),
		mcp.WithString("project",
			mcp.Description("Filter to one project by name or ID."),
		),
		mcp.WithString("tags",
			mcp.Description("Filter by tags (comma-separated)."),
		),
		mcp.WithString("from",
			mcp.Description("Explicit range start."),
		),
		mcp.WithString("to",
			mcp.Description("Explicit range end."),
		),
		mcp.WithBoolean("today",
			mcp.Description("Report on today only."),
		),
		mcp.WithBoolean("yesterday",
			mcp.Description("Report on yesterday only."),
		),
		mcp.WithBoolean("week",
			mcp.Description("Report on the current week."),
		),
		mcp.WithBoolean("month",
			mcp.Description("Report on the current month."),
		),
		mcp.WithBoolean("billable",
			mcp.Description("Filter by billable flag."),
		),
	)
	srv.AddTool(reportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filters, err := reportFilters(repo, request)
		if err != nil {
			return toolResult(nil, err)
		}
		groupBy, err := core.ParseGroupBy(request.GetString("group_by", ""))
		if err != nil {
			return toolResult(nil, err)
		}
		filters.GroupBy = groupBy
		return toolResult(core.GenerateReport(repo, filters))
	})

	exportTool := mcp.NewTool(
		"export_entries",
		mcp.WithDescription("Export entries as CSV or JSON text for invoicing or spreadsheets. Accepts the same filters as generate_report."),
		mcp.WithString("format",
			mcp.Description("Output format: csv (default) or json."),
		),
		mcp.WithString("project",
			mcp.Description("Filter to one project by name or ID."),
		),
		mcp.WithString("tags",
			mcp.Description("Filter by tags (comma-separated)."),
		),
		mcp.WithString("from",
			mcp.Description("Explicit range start."),
		),
		mcp.WithString("to",
			mcp.Description("Explicit range end."),
		),
		mcp.WithBoolean("today",
			mcp.Description("Export today only."),
		),
		mcp.WithBoolean("yesterday",
			mcp.Description("Export yesterday only."),
		),
		mcp.WithBoolean("week",
			mcp.Description("Export the current week."),
		),
		mcp.WithBoolean("month",
			mcp.Description("Export the current month."),
		),
		mcp.WithBoolean("billable",
			mcp.Description("Filter by billable flag."),
		),
	)
	srv.AddTool(exportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filters, err := reportFilters(repo, request)
		if err != nil {
			return toolResult(nil, err)
		}
		format, err := export.ParseFormat(request.GetString("format", ""))
		if err != nil {
			return toolResult(nil, err)
		}
		return toolResult(export.ForRepository(repo, filters, format))
	})
}
