package core_test

import (
	"testing"
	"time"

	"github.com/machielvdw/clokk/internal/core"
)

func TestParseGroupBy(t *testing.T) {
	cases := map[string]core.GroupBy{
		"":        core.GroupByProject,
		"project": core.GroupByProject,
		"tag":     core.GroupByTag,
		"day":     core.GroupByDay,
		"week":    core.GroupByWeek,
	}
	for input, want := range cases {
		got, err := core.ParseGroupBy(input)
		if err != nil {
			t.Fatalf("ParseGroupBy(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("ParseGroupBy(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := core.ParseGroupBy("month"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestGenerateReportByProject(t *testing.T) {
	repo := newTestRepo(t)

	rate := 100.0
	if _, err := core.CreateProject(repo, core.CreateProjectInput{Name: "api", Rate: &rate}); err != nil {
		t.Fatal(err)
	}
	if _, err := core.CreateProject(repo, core.CreateProjectInput{Name: "website"}); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	hour := int64(3600)

	if _, err := core.LogEntry(repo, core.LogEntryInput{Project: "api", From: base, Duration: &hour}); err != nil {
		t.Fatal(err)
	}
	halfHour := int64(1800)
	if _, err := core.LogEntry(repo, core.LogEntryInput{Project: "website", From: base.Add(2 * time.Hour), Duration: &halfHour}); err != nil {
		t.Fatal(err)
	}
	if _, err := core.LogEntry(repo, core.LogEntryInput{From: base.Add(4 * time.Hour), Duration: &halfHour}); err != nil {
		t.Fatal(err)
	}

	result, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByProject})
	if err != nil {
		t.Fatal(err)
	}

	if result.TotalSeconds != 7200 {
		t.Errorf("total = %d, want 7200", result.TotalSeconds)
	}
	if len(result.Groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(result.Groups))
	}

	// Groups appear in first-seen entry order.
	if result.Groups[0].Key != "api" || result.Groups[1].Key != "website" || result.Groups[2].Key != "No Project" {
		t.Errorf("group keys = %v, %v, %v", result.Groups[0].Key, result.Groups[1].Key, result.Groups[2].Key)
	}

	api := result.Groups[0]
	if api.BillableAmount == nil || *api.BillableAmount != 100.0 {
		t.Errorf("api amount = %v, want 100.0", api.BillableAmount)
	}
	if api.Currency == nil || *api.Currency != "USD" {
		t.Errorf("api currency = %v", api.Currency)
	}

	// No rate, no amount.
	if result.Groups[1].BillableAmount != nil {
		t.Errorf("website amount = %v, want nil", *result.Groups[1].BillableAmount)
	}
}

func TestGenerateReportBillableAmountRounding(t *testing.T) {
	repo := newTestRepo(t)

	rate := 85.0
	if _, err := core.CreateProject(repo, core.CreateProjectInput{Name: "api", Rate: &rate}); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	seconds := int64(100) // 100s * 85/h = 2.3611... -> 2.36
	if _, err := core.LogEntry(repo, core.LogEntryInput{Project: "api", From: base, Duration: &seconds}); err != nil {
		t.Fatal(err)
	}

	result, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByProject})
	if err != nil {
		t.Fatal(err)
	}
	if amount := result.Groups[0].BillableAmount; amount == nil || *amount != 2.36 {
		t.Errorf("amount = %v, want 2.36", amount)
	}
}

func TestGenerateReportByTagMultiMembership(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	hour := int64(3600)
	if _, err := core.LogEntry(repo, core.LogEntryInput{
		From:     base,
		Duration: &hour,
		Tags:     []string{"backend", "review"},
	}); err != nil {
		t.Fatal(err)
	}

	result, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByTag})
	if err != nil {
		t.Fatal(err)
	}

	// One entry with two tags lands in both groups, each counting it
	// once. The ungrouped total counts it once.
	if len(result.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(result.Groups))
	}
	for _, g := range result.Groups {
		if g.EntryCount != 1 {
			t.Errorf("group %q entry count = %d, want 1", g.Key, g.EntryCount)
		}
		if g.TotalSeconds != 3600 {
			t.Errorf("group %q seconds = %d, want 3600", g.Key, g.TotalSeconds)
		}
		if g.BillableAmount != nil {
			t.Errorf("group %q amount = %v, want nil for tag grouping", g.Key, *g.BillableAmount)
		}
	}
	if result.TotalSeconds != 3600 {
		t.Errorf("total = %d, want 3600 (no double counting)", result.TotalSeconds)
	}
}

func TestGenerateReportUntagged(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	hour := int64(3600)
	if _, err := core.LogEntry(repo, core.LogEntryInput{From: base, Duration: &hour}); err != nil {
		t.Fatal(err)
	}

	result, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByTag})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Groups) != 1 || result.Groups[0].Key != "untagged" {
		t.Errorf("groups = %+v, want single untagged group", result.Groups)
	}
}

func TestGenerateReportByDayAndWeek(t *testing.T) {
	repo := newTestRepo(t)

	hour := int64(3600)
	// Wednesday and Thursday of the same ISO week.
	wed := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	thu := time.Date(2026, 2, 26, 9, 0, 0, 0, time.UTC)
	for _, from := range []time.Time{wed, thu} {
		if _, err := core.LogEntry(repo, core.LogEntryInput{From: from, Duration: &hour}); err != nil {
			t.Fatal(err)
		}
	}

	byDay, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByDay})
	if err != nil {
		t.Fatal(err)
	}
	if len(byDay.Groups) != 2 {
		t.Fatalf("day groups = %d, want 2", len(byDay.Groups))
	}
	if byDay.Groups[0].Key != "2026-02-25" || byDay.Groups[1].Key != "2026-02-26" {
		t.Errorf("day keys = %q, %q", byDay.Groups[0].Key, byDay.Groups[1].Key)
	}

	byWeek, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByWeek})
	if err != nil {
		t.Fatal(err)
	}
	if len(byWeek.Groups) != 1 {
		t.Fatalf("week groups = %d, want 1", len(byWeek.Groups))
	}
	// The ISO week containing 2026-02-25 starts Monday 2026-02-23.
	if byWeek.Groups[0].Key != "Week of 2026-02-23" {
		t.Errorf("week key = %q", byWeek.Groups[0].Key)
	}
}

func TestGenerateReportRunningEntryContributesZero(t *testing.T) {
	repo := newTestRepo(t)

	hour := int64(3600)
	base := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	if _, err := core.LogEntry(repo, core.LogEntryInput{From: base, Duration: &hour}); err != nil {
		t.Fatal(err)
	}
	if _, err := core.StartTimer(repo, core.StartTimerInput{}); err != nil {
		t.Fatal(err)
	}

	result, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByProject})
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalSeconds != 3600 {
		t.Errorf("total = %d, want 3600 (running entry contributes zero)", result.TotalSeconds)
	}
}

func TestGenerateReportPeriod(t *testing.T) {
	repo := newTestRepo(t)

	hour := int64(3600)
	first := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	for _, from := range []time.Time{first, second} {
		if _, err := core.LogEntry(repo, core.LogEntryInput{From: from, Duration: &hour}); err != nil {
			t.Fatal(err)
		}
	}

	// No filter bounds: period spans first start to last end.
	result, err := core.GenerateReport(repo, core.ReportFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Period.From != core.FormatTime(first) {
		t.Errorf("period from = %q, want %q", result.Period.From, core.FormatTime(first))
	}
	if want := core.FormatTime(second.Add(time.Hour)); result.Period.To != want {
		t.Errorf("period to = %q, want %q", result.Period.To, want)
	}

	// Explicit filter bounds take precedence.
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	result, err = core.GenerateReport(repo, core.ReportFilters{From: &from})
	if err != nil {
		t.Fatal(err)
	}
	if result.Period.From != core.FormatTime(from) {
		t.Errorf("period from = %q, want filter bound", result.Period.From)
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	repo := newTestRepo(t)

	result, err := core.GenerateReport(repo, core.ReportFilters{GroupBy: core.GroupByDay})
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalSeconds != 0 || len(result.Groups) != 0 {
		t.Errorf("expected empty report, got %+v", result)
	}
}
