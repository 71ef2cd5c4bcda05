package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/timeparse"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// renderError writes a failure to stderr. With --json the envelope
// mirrors what the MCP server returns; otherwise the message is colored
// and followed by any suggestions.
func renderError(err error) {
	var ce *core.Error
	if !errors.As(err, &ce) {
		if jsonOutput {
			data, _ := json.Marshal(map[string]any{"error": "ERROR", "message": err.Error()})
			fmt.Fprintln(os.Stderr, string(data))
			return
		}
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		return
	}

	if jsonOutput {
		data, _ := json.Marshal(map[string]any{
			"error":       ce.Code,
			"message":     ce.Message,
			"suggestions": ce.Suggestions,
			"context":     ce.Context,
		})
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	fmt.Fprintln(os.Stderr, red("Error:"), ce.Message)
	for _, s := range ce.Suggestions {
		fmt.Fprintln(os.Stderr, faint("  try: "+s))
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// projectResolver resolves project ids to names, caching lookups for
// table rendering.
type projectResolver struct {
	repo  core.Repository
	cache map[string]string
}

func newProjectResolver(repo core.Repository) *projectResolver {
	return &projectResolver{repo: repo, cache: map[string]string{}}
}

func (r *projectResolver) name(projectID *string) string {
	if projectID == nil {
		return ""
	}
	if name, ok := r.cache[*projectID]; ok {
		return name
	}
	name := ""
	if project, err := r.repo.GetProject(*projectID); err == nil && project != nil {
		name = project.Name
	}
	r.cache[*projectID] = name
	return name
}

// formatClock renders elapsed seconds as h:mm:ss for live timers.
func formatClock(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func formatLocal(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// entryLabel is the short human identification of an entry: quoted
// description when present, otherwise the id.
func entryLabel(e *core.Entry) string {
	if e.Description != "" {
		return fmt.Sprintf("%q", e.Description)
	}
	return e.ID
}

func printEntryTable(entries []core.Entry, resolver *projectResolver) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold("ID"), bold("DESCRIPTION"), bold("PROJECT"), bold("START"), bold("DURATION"), bold("TAGS"))

	for i := range entries {
		e := &entries[i]
		duration := green("running")
		if d := e.DurationSeconds(); d != nil {
			duration = timeparse.FormatDuration(*d)
		}
		tbl.AddRow(
			faint(e.ID),
			e.Description,
			resolver.name(e.ProjectID),
			formatLocal(e.StartTime),
			duration,
			strings.Join(e.Tags, ", "),
		)
	}
	fmt.Fprintln(color.Output, tbl)
}

func printProjectTable(projects []core.Project) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold("ID"), bold("NAME"), bold("CLIENT"), bold("RATE"), bold("ARCHIVED"))

	for i := range projects {
		p := &projects[i]
		client := ""
		if p.Client != nil {
			client = *p.Client
		}
		rate := ""
		if p.Rate != nil {
			rate = fmt.Sprintf("%.2f %s/h", *p.Rate, p.Currency)
		}
		archived := ""
		if p.Archived {
			archived = "yes"
		}
		tbl.AddRow(faint(p.ID), p.Name, client, rate, archived)
	}
	fmt.Fprintln(color.Output, tbl)
}

func printReport(result *core.ReportResult) {
	if result.Period.From != "" || result.Period.To != "" {
		fmt.Fprintln(color.Output, faint(fmt.Sprintf("Period: %s .. %s", result.Period.From, result.Period.To)))
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold("GROUP"), bold("ENTRIES"), bold("TIME"), bold("BILLABLE"), bold("AMOUNT"))

	for _, g := range result.Groups {
		amount := ""
		if g.BillableAmount != nil {
			amount = fmt.Sprintf("%.2f %s", *g.BillableAmount, *g.Currency)
		}
		tbl.AddRow(
			g.Key,
			fmt.Sprintf("%d", g.EntryCount),
			timeparse.FormatDuration(g.TotalSeconds),
			timeparse.FormatDuration(g.BillableSeconds),
			amount,
		)
	}
	fmt.Fprintln(color.Output, tbl)

	fmt.Fprintf(color.Output, "\n%s %s (%s billable)\n",
		bold("Total:"),
		timeparse.FormatDuration(result.TotalSeconds),
		timeparse.FormatDuration(result.BillableSeconds),
	)
}
