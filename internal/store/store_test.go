package store

import (
	"testing"
	"time"

	"github.com/machielvdw/clokk/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func insertEntry(t *testing.T, s *Store, projectID *string, start time.Time, end *time.Time) *core.Entry {
	t.Helper()
	entry, err := s.CreateEntry(core.NewEntry{
		ID:        core.NewEntryID(),
		ProjectID: projectID,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return entry
}

func TestOpenMemory(t *testing.T) {
	s := newTestStore(t)

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != currentVersion {
		t.Fatalf("user_version = %d, want %d", version, currentVersion)
	}
}

func TestOpenWithPath(t *testing.T) {
	path := t.TempDir() + "/sub/clokk.db"
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: migration must be idempotent.
	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	t.Setenv("CLOKK_DIR", "/tmp/clokk-test")
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/clokk-test/clokk.db" {
		t.Fatalf("path = %q", path)
	}
}

func TestSingleRunningEntryIndex(t *testing.T) {
	s := newTestStore(t)

	start := time.Now().UTC()
	insertEntry(t, s, nil, start, nil)

	// The partial unique index must reject a second open entry even if
	// the write bypasses the core state checks.
	_, err := s.CreateEntry(core.NewEntry{
		ID:        core.NewEntryID(),
		StartTime: start.Add(time.Minute),
	})
	if err == nil {
		t.Fatal("expected second running entry to be rejected")
	}
	if core.ErrCode(err) != core.CodeStorage {
		t.Errorf("expected STORAGE_ERROR, got %v", err)
	}

	// A closed entry alongside the running one is fine.
	end := start.Add(time.Hour)
	insertEntry(t, s, nil, start.Add(-2*time.Hour), &end)
}

func TestEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	billable := false
	created, err := s.CreateEntry(core.NewEntry{
		ID:          core.NewEntryID(),
		Description: "review",
		StartTime:   start,
		EndTime:     &end,
		Tags:        []string{"backend", "deep-work"},
		Billable:    &billable,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetEntry(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("entry not found after insert")
	}
	if !got.StartTime.Equal(start) || got.EndTime == nil || !got.EndTime.Equal(end) {
		t.Errorf("times = %v .. %v", got.StartTime, got.EndTime)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "backend" {
		t.Errorf("tags = %v", got.Tags)
	}
	if got.Billable {
		t.Error("billable should round-trip false")
	}
	if d := got.DurationSeconds(); d == nil || *d != 5400 {
		t.Errorf("duration = %v, want 5400", d)
	}
}

func TestGetEntryMissing(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetEntry("ent_missing")
	if err != nil || got != nil {
		t.Fatalf("got %v, %v, want nil, nil", got, err)
	}
}

func TestGetRunningEntry(t *testing.T) {
	s := newTestStore(t)

	running, err := s.GetRunningEntry()
	if err != nil || running != nil {
		t.Fatalf("got %v, %v, want nil, nil", running, err)
	}

	entry := insertEntry(t, s, nil, time.Now().UTC(), nil)
	running, err = s.GetRunningEntry()
	if err != nil {
		t.Fatal(err)
	}
	if running == nil || running.ID != entry.ID {
		t.Errorf("running = %v", running)
	}
}

func TestUpdateEntryPartial(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	entry := insertEntry(t, s, nil, start, nil)

	end := start.Add(time.Hour)
	updated, err := s.UpdateEntry(entry.ID, core.EntryUpdates{
		Description: core.Set("done"),
		EndTime:     core.Set(&end),
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Description != "done" || updated.EndTime == nil {
		t.Errorf("updated = %+v", updated)
	}
	// Absent fields stay put.
	if !updated.StartTime.Equal(start) {
		t.Errorf("start changed to %v", updated.StartTime)
	}

	_, err = s.UpdateEntry("ent_missing", core.EntryUpdates{Description: core.Set("x")})
	if core.ErrCode(err) != core.CodeEntryNotFound {
		t.Errorf("expected ENTRY_NOT_FOUND, got %v", err)
	}
}

func TestListEntriesFilters(t *testing.T) {
	s := newTestStore(t)

	project, err := s.CreateProject(core.NewProject{ID: core.NewProjectID(), Name: "api"})
	if err != nil {
		t.Fatal(err)
	}

	base := time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		end := start.Add(30 * time.Minute)
		var pid *string
		if i%2 == 0 {
			pid = &project.ID
		}
		insertEntry(t, s, pid, start, &end)
	}

	byProject, err := s.ListEntries(core.EntryFilters{ProjectID: project.ID})
	if err != nil {
		t.Fatal(err)
	}
	if byProject.Total != 2 {
		t.Errorf("by project total = %d, want 2", byProject.Total)
	}

	to := base.Add(90 * time.Minute)
	ranged, err := s.ListEntries(core.EntryFilters{To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if ranged.Total != 2 {
		t.Errorf("ranged total = %d, want 2", ranged.Total)
	}

	stopped := false
	completed, err := s.ListEntries(core.EntryFilters{Running: &stopped})
	if err != nil {
		t.Fatal(err)
	}
	if completed.Total != 4 {
		t.Errorf("completed total = %d, want 4", completed.Total)
	}
}

func TestListEntriesTagFilterIsExact(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC)
	end := base.Add(time.Hour)
	if _, err := s.CreateEntry(core.NewEntry{
		ID: core.NewEntryID(), StartTime: base, EndTime: &end, Tags: []string{"backend"},
	}); err != nil {
		t.Fatal(err)
	}
	end2 := end.Add(time.Hour)
	if _, err := s.CreateEntry(core.NewEntry{
		ID: core.NewEntryID(), StartTime: end, EndTime: &end2, Tags: []string{"back"},
	}); err != nil {
		t.Fatal(err)
	}

	// "back" must not match the "backend" entry.
	result, err := s.ListEntries(core.EntryFilters{Tags: []string{"back"}})
	if err != nil {
		t.Fatal(err)
	}
	if result.Total != 1 {
		t.Errorf("total = %d, want 1", result.Total)
	}
}

func TestEntriesForReportOrder(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 2, 25, 8, 0, 0, 0, time.UTC)
	for i := 3; i >= 0; i-- {
		start := base.Add(time.Duration(i) * time.Hour)
		end := start.Add(10 * time.Minute)
		insertEntry(t, s, nil, start, &end)
	}

	entries, err := s.EntriesForReport(core.ReportFilters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries = %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].StartTime.Before(entries[i-1].StartTime) {
			t.Fatal("report entries not ordered oldest first")
		}
	}
}

func TestProjectRoundTrip(t *testing.T) {
	s := newTestStore(t)

	client := "acme"
	rate := 120.5
	created, err := s.CreateProject(core.NewProject{
		ID:     core.NewProjectID(),
		Name:   "website",
		Client: &client,
		Rate:   &rate,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Currency != "USD" {
		t.Errorf("currency = %q, want USD default", created.Currency)
	}

	got, err := s.GetProject(created.ID)
	if err != nil || got == nil {
		t.Fatalf("get by id: %v, %v", got, err)
	}
	if got.Client == nil || *got.Client != "acme" || got.Rate == nil || *got.Rate != 120.5 {
		t.Errorf("project = %+v", got)
	}
}

func TestDeleteProjectForceUnassigns(t *testing.T) {
	s := newTestStore(t)

	project, err := s.CreateProject(core.NewProject{ID: core.NewProjectID(), Name: "api"})
	if err != nil {
		t.Fatal(err)
	}
	start := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	entry := insertEntry(t, s, &project.ID, start, &end)

	if _, err := s.DeleteProject(project.ID, false); core.ErrCode(err) != core.CodeProjectHasEntries {
		t.Fatalf("expected PROJECT_HAS_ENTRIES, got %v", err)
	}

	if _, err := s.DeleteProject(project.ID, true); err != nil {
		t.Fatal(err)
	}
	kept, err := s.GetEntry(entry.ID)
	if err != nil || kept == nil {
		t.Fatalf("entry lost: %v, %v", kept, err)
	}
	if kept.ProjectID != nil {
		t.Errorf("entry still references %v", *kept.ProjectID)
	}
}
