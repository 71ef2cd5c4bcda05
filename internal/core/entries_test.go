package core_test

import (
	"testing"
	"time"

	"github.com/machielvdw/clokk/internal/core"
)

func logTestEntry(t *testing.T, repo core.Repository, description string, from time.Time, seconds int64) *core.Entry {
	t.Helper()
	entry, err := core.LogEntry(repo, core.LogEntryInput{
		Description: description,
		From:        from,
		Duration:    &seconds,
	})
	if err != nil {
		t.Fatalf("log entry: %v", err)
	}
	return entry
}

func TestLogEntryWithDuration(t *testing.T) {
	repo := newTestRepo(t)

	from := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	entry := logTestEntry(t, repo, "review", from, 5400)

	if d := entry.DurationSeconds(); d == nil || *d != 5400 {
		t.Errorf("duration = %v, want 5400", d)
	}
	if want := from.Add(90 * time.Minute); !entry.EndTime.Equal(want) {
		t.Errorf("end = %v, want %v", entry.EndTime, want)
	}
}

func TestLogEntryWithTo(t *testing.T) {
	repo := newTestRepo(t)

	from := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	entry, err := core.LogEntry(repo, core.LogEntryInput{From: from, To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if d := entry.DurationSeconds(); d == nil || *d != 3600 {
		t.Errorf("duration = %v, want 3600", d)
	}
}

func TestLogEntryValidation(t *testing.T) {
	repo := newTestRepo(t)
	from := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	seconds := int64(3600)

	// Both to and duration.
	_, err := core.LogEntry(repo, core.LogEntryInput{From: from, To: &to, Duration: &seconds})
	assertCode(t, err, core.CodeValidation)

	// Neither.
	_, err = core.LogEntry(repo, core.LogEntryInput{From: from})
	assertCode(t, err, core.CodeValidation)

	// End before start.
	before := from.Add(-time.Hour)
	_, err = core.LogEntry(repo, core.LogEntryInput{From: from, To: &before})
	assertCode(t, err, core.CodeValidation)

	// Zero-length entry.
	same := from
	_, err = core.LogEntry(repo, core.LogEntryInput{From: from, To: &same})
	assertCode(t, err, core.CodeValidation)
}

func TestEditEntry(t *testing.T) {
	repo := newTestRepo(t)
	from := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	entry := logTestEntry(t, repo, "draft", from, 3600)

	updated, err := core.EditEntry(repo, entry.ID, core.EditEntryInput{
		Description: core.Set("final"),
		Tags:        core.Set([]string{"writing", "deep-work"}),
		Billable:    core.Set(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Description != "final" {
		t.Errorf("description = %q", updated.Description)
	}
	if len(updated.Tags) != 2 {
		t.Errorf("tags = %v", updated.Tags)
	}
	if updated.Billable {
		t.Error("billable should be false")
	}
	// Untouched fields survive.
	if !updated.StartTime.Equal(from) {
		t.Errorf("start changed: %v", updated.StartTime)
	}
}

func TestEditEntryProjectClear(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := core.CreateProject(repo, core.CreateProjectInput{Name: "api"}); err != nil {
		t.Fatal(err)
	}

	from := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	entry := logTestEntry(t, repo, "x", from, 60)

	withProject, err := core.EditEntry(repo, entry.ID, core.EditEntryInput{
		Project: core.Set("api"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if withProject.ProjectID == nil {
		t.Fatal("project not set")
	}

	// A present-but-empty project clears the reference.
	cleared, err := core.EditEntry(repo, entry.ID, core.EditEntryInput{
		Project: core.Set(""),
	})
	if err != nil {
		t.Fatal(err)
	}
	if cleared.ProjectID != nil {
		t.Errorf("project should be cleared, got %v", *cleared.ProjectID)
	}
}

func TestEditEntryMergedRangeValidation(t *testing.T) {
	repo := newTestRepo(t)
	from := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	entry := logTestEntry(t, repo, "x", from, 3600)

	// Moving the start past the existing end must fail.
	_, err := core.EditEntry(repo, entry.ID, core.EditEntryInput{
		StartTime: core.Set(from.Add(2 * time.Hour)),
	})
	assertCode(t, err, core.CodeValidation)

	// Moving the end before the existing start must fail.
	_, err = core.EditEntry(repo, entry.ID, core.EditEntryInput{
		EndTime: core.Set(from.Add(-time.Minute)),
	})
	assertCode(t, err, core.CodeValidation)
}

func TestEditEntryNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := core.EditEntry(repo, "ent_missing", core.EditEntryInput{Description: core.Set("x")})
	assertCode(t, err, core.CodeEntryNotFound)
}

func TestDeleteEntry(t *testing.T) {
	repo := newTestRepo(t)
	from := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	entry := logTestEntry(t, repo, "x", from, 60)

	deleted, err := core.DeleteEntry(repo, entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if deleted.ID != entry.ID {
		t.Errorf("deleted wrong entry: %s", deleted.ID)
	}

	_, err = core.DeleteEntry(repo, entry.ID)
	assertCode(t, err, core.CodeEntryNotFound)
}

func TestDeleteRunningEntry(t *testing.T) {
	repo := newTestRepo(t)
	started, err := core.StartTimer(repo, core.StartTimerInput{})
	if err != nil {
		t.Fatal(err)
	}

	// Deleting the running entry acts as a cancel.
	if _, err := core.DeleteEntry(repo, started.ID); err != nil {
		t.Fatal(err)
	}
	status, err := core.GetStatus(repo)
	if err != nil {
		t.Fatal(err)
	}
	if status.Running {
		t.Error("timer should be gone")
	}
}

func TestListEntriesFiltersAndPaging(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := core.CreateProject(repo, core.CreateProjectInput{Name: "api"}); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		from := base.Add(time.Duration(i) * time.Hour)
		seconds := int64(600)
		in := core.LogEntryInput{
			Description: "entry",
			From:        from,
			Duration:    &seconds,
		}
		if i%2 == 0 {
			in.Project = "api"
			in.Tags = []string{"backend"}
		}
		if _, err := core.LogEntry(repo, in); err != nil {
			t.Fatal(err)
		}
	}

	all, err := core.ListEntries(repo, core.EntryFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if all.Total != 5 || len(all.Entries) != 5 {
		t.Fatalf("total = %d, entries = %d", all.Total, len(all.Entries))
	}
	// Newest first.
	if !all.Entries[0].StartTime.After(all.Entries[1].StartTime) {
		t.Error("entries not ordered newest first")
	}

	paged, err := core.ListEntries(repo, core.EntryFilters{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatal(err)
	}
	if paged.Total != 5 || len(paged.Entries) != 2 {
		t.Errorf("paged total = %d, entries = %d", paged.Total, len(paged.Entries))
	}

	tagged, err := core.ListEntries(repo, core.EntryFilters{Tags: []string{"backend"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(tagged.Entries) != 3 {
		t.Errorf("tagged entries = %d, want 3", len(tagged.Entries))
	}

	from := base.Add(90 * time.Minute)
	ranged, err := core.ListEntries(repo, core.EntryFilters{From: &from})
	if err != nil {
		t.Fatal(err)
	}
	if len(ranged.Entries) != 3 {
		t.Errorf("ranged entries = %d, want 3", len(ranged.Entries))
	}
}
