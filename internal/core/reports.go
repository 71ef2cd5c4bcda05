package core

import (
	"fmt"
	"math"
	"time"
)

// GroupBy is the closed set of report grouping strategies. Tag grouping
// is multi-membership: an entry contributes to one group per tag.
type GroupBy int

const (
	GroupByProject GroupBy = iota
	GroupByTag
	GroupByDay
	GroupByWeek
)

func (g GroupBy) String() string {
	switch g {
	case GroupByProject:
		return "project"
	case GroupByTag:
		return "tag"
	case GroupByDay:
		return "day"
	case GroupByWeek:
		return "week"
	}
	return fmt.Sprintf("GroupBy(%d)", int(g))
}

// ParseGroupBy maps the user-facing strategy name onto the enum.
func ParseGroupBy(s string) (GroupBy, error) {
	switch s {
	case "", "project":
		return GroupByProject, nil
	case "tag":
		return GroupByTag, nil
	case "day":
		return GroupByDay, nil
	case "week":
		return GroupByWeek, nil
	}
	return 0, NewValidation(fmt.Sprintf("Invalid group_by %q. Use project, tag, day, or week.", s), map[string]any{"group_by": s})
}

// ReportGroup is one bucket of a report. BillableAmount and Currency
// are only set for project grouping when the project carries a rate.
type ReportGroup struct {
	Key             string   `json:"key"`
	TotalSeconds    int64    `json:"total_seconds"`
	BillableSeconds int64    `json:"billable_seconds"`
	BillableAmount  *float64 `json:"billable_amount"`
	Currency        *string  `json:"currency"`
	EntryCount      int      `json:"entry_count"`
	Entries         []Entry  `json:"entries"`
}

// ReportPeriod is the span the report covers.
type ReportPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReportResult is a full report: overall totals over the ungrouped
// filtered set plus per-group breakdowns.
type ReportResult struct {
	Period          ReportPeriod  `json:"period"`
	TotalSeconds    int64         `json:"total_seconds"`
	BillableSeconds int64         `json:"billable_seconds"`
	Groups          []ReportGroup `json:"groups"`
}

// GenerateReport computes a report over the entries matching the
// filters, grouped by the requested strategy.
func GenerateReport(repo Repository, filters ReportFilters) (*ReportResult, error) {
	entries, err := repo.EntriesForReport(filters)
	if err != nil {
		return nil, err
	}

	// Resolve each referenced project once; report math reuses the
	// cache for names, rates, and currencies.
	projectCache := map[string]*Project{}
	for i := range entries {
		pid := entries[i].ProjectID
		if pid == nil {
			continue
		}
		if _, ok := projectCache[*pid]; ok {
			continue
		}
		project, err := repo.GetProject(*pid)
		if err != nil {
			return nil, err
		}
		if project != nil {
			projectCache[*pid] = project
		}
	}

	groups := groupEntries(entries, filters.GroupBy, projectCache)

	var totalSeconds, billableSeconds int64
	for i := range entries {
		dur := durationOrZero(&entries[i])
		totalSeconds += dur
		if entries[i].Billable {
			billableSeconds += dur
		}
	}

	return &ReportResult{
		Period:          reportPeriod(filters, entries),
		TotalSeconds:    totalSeconds,
		BillableSeconds: billableSeconds,
		Groups:          groups,
	}, nil
}

func durationOrZero(e *Entry) int64 {
	if d := e.DurationSeconds(); d != nil {
		return *d
	}
	return 0
}

// reportPeriod prefers the filter's explicit bounds, falling back to
// the first entry's start and the last entry's end (or start while
// still running). Entries arrive sorted by start time.
func reportPeriod(filters ReportFilters, entries []Entry) ReportPeriod {
	period := ReportPeriod{}
	switch {
	case filters.From != nil:
		period.From = FormatTime(*filters.From)
	case len(entries) > 0:
		period.From = FormatTime(entries[0].StartTime)
	}
	switch {
	case filters.To != nil:
		period.To = FormatTime(*filters.To)
	case len(entries) > 0:
		last := entries[len(entries)-1]
		if last.EndTime != nil {
			period.To = FormatTime(*last.EndTime)
		} else {
			period.To = FormatTime(last.StartTime)
		}
	}
	return period
}

func groupEntries(entries []Entry, groupBy GroupBy, projectCache map[string]*Project) []ReportGroup {
	grouped := map[string][]Entry{}
	var order []string

	for i := range entries {
		for _, key := range groupKeys(&entries[i], groupBy, projectCache) {
			if _, ok := grouped[key]; !ok {
				order = append(order, key)
			}
			grouped[key] = append(grouped[key], entries[i])
		}
	}

	groups := make([]ReportGroup, 0, len(order))
	for _, key := range order {
		members := grouped[key]

		var totalSeconds, billableSeconds int64
		for i := range members {
			dur := durationOrZero(&members[i])
			totalSeconds += dur
			if members[i].Billable {
				billableSeconds += dur
			}
		}

		group := ReportGroup{
			Key:             key,
			TotalSeconds:    totalSeconds,
			BillableSeconds: billableSeconds,
			EntryCount:      len(members),
			Entries:         members,
		}

		// Currency amounts only make sense per project rate.
		if groupBy == GroupByProject {
			if pid := members[0].ProjectID; pid != nil {
				if project := projectCache[*pid]; project != nil && project.Rate != nil {
					amount := math.Round(float64(billableSeconds)/3600*(*project.Rate)*100) / 100
					currency := project.Currency
					group.BillableAmount = &amount
					group.Currency = &currency
				}
			}
		}

		groups = append(groups, group)
	}
	return groups
}

// groupKeys maps an entry onto its group keys. The switch is exhaustive
// over the GroupBy constants.
func groupKeys(e *Entry, groupBy GroupBy, projectCache map[string]*Project) []string {
	switch groupBy {
	case GroupByProject:
		if e.ProjectID == nil {
			return []string{"No Project"}
		}
		if project := projectCache[*e.ProjectID]; project != nil {
			return []string{project.Name}
		}
		return []string{"Unknown Project"}
	case GroupByTag:
		if len(e.Tags) == 0 {
			return []string{"untagged"}
		}
		return e.Tags
	case GroupByDay:
		return []string{e.StartTime.UTC().Format("2006-01-02")}
	case GroupByWeek:
		return []string{"Week of " + isoWeekStart(e.StartTime).Format("2006-01-02")}
	}
	panic("unreachable group strategy: " + groupBy.String())
}

// isoWeekStart returns the Monday beginning the ISO week containing t.
func isoWeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
