// Package export renders a filtered entry set as CSV or JSON for
// hand-off to invoicing and spreadsheet tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/machielvdw/clokk/internal/core"
)

// Format selects the export rendering.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name. Empty defaults
// to CSV.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return "", core.NewValidation(fmt.Sprintf("Invalid export format %q. Use csv or json.", s), map[string]any{"format": s})
}

// Result is a finished export.
type Result struct {
	Data       string `json:"data"`
	Format     Format `json:"format"`
	EntryCount int    `json:"entry_count"`
}

type jsonEntry struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	Project         *string  `json:"project"`
	StartTime       string   `json:"start_time"`
	EndTime         *string  `json:"end_time"`
	DurationSeconds *int64   `json:"duration_seconds"`
	Tags            []string `json:"tags"`
	Billable        bool     `json:"billable"`
}

// Entries renders the entry set in the requested format. The projects
// map resolves project ids to names; unresolvable references export as
// empty/null project names.
func Entries(entries []core.Entry, projects map[string]*core.Project, format Format) (*Result, error) {
	var data string
	var err error

	switch format {
	case FormatJSON:
		data, err = toJSON(entries, projects)
	case FormatCSV:
		data, err = toCSV(entries, projects)
	default:
		return nil, core.NewValidation(fmt.Sprintf("Invalid export format %q. Use csv or json.", format), nil)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Data: data, Format: format, EntryCount: len(entries)}, nil
}

func projectName(e *core.Entry, projects map[string]*core.Project) *string {
	if e.ProjectID == nil {
		return nil
	}
	if p, ok := projects[*e.ProjectID]; ok {
		return &p.Name
	}
	return nil
}

func toJSON(entries []core.Entry, projects map[string]*core.Project) (string, error) {
	out := make([]jsonEntry, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		var end *string
		if e.EndTime != nil {
			s := core.FormatTime(*e.EndTime)
			end = &s
		}
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, jsonEntry{
			ID:              e.ID,
			Description:     e.Description,
			Project:         projectName(e, projects),
			StartTime:       core.FormatTime(e.StartTime),
			EndTime:         end,
			DurationSeconds: e.DurationSeconds(),
			Tags:            tags,
			Billable:        e.Billable,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json export: %w", err)
	}
	return string(data), nil
}

func toCSV(entries []core.Entry, projects map[string]*core.Project) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"id", "description", "project", "start_time", "end_time", "duration_seconds", "tags", "billable"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range entries {
		e := &entries[i]

		project := ""
		if name := projectName(e, projects); name != nil {
			project = *name
		}
		end := ""
		if e.EndTime != nil {
			end = core.FormatTime(*e.EndTime)
		}
		duration := ""
		if d := e.DurationSeconds(); d != nil {
			duration = strconv.FormatInt(*d, 10)
		}

		row := []string{
			e.ID,
			e.Description,
			project,
			core.FormatTime(e.StartTime),
			end,
			duration,
			strings.Join(e.Tags, "; "),
			strconv.FormatBool(e.Billable),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// ForRepository pulls the matching entries and resolved projects from
// the repository and renders them.
func ForRepository(repo core.Repository, filters core.ReportFilters, format Format) (*Result, error) {
	entries, err := repo.EntriesForReport(filters)
	if err != nil {
		return nil, err
	}

	projects := map[string]*core.Project{}
	for i := range entries {
		pid := entries[i].ProjectID
		if pid == nil {
			continue
		}
		if _, ok := projects[*pid]; ok {
			continue
		}
		project, err := repo.GetProject(*pid)
		if err != nil {
			return nil, err
		}
		if project != nil {
			projects[*pid] = project
		}
	}

	return Entries(entries, projects, format)
}
