package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/machielvdw/clokk/internal/core"
	"github.com/machielvdw/clokk/internal/store"
)

func newTestRepo(t *testing.T) core.Repository {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil error", code)
	}
	var ce *core.Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *core.Error %s, got %T: %v", code, err, err)
	}
	if ce.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, ce.Code, err)
	}
}

func TestStartTimer(t *testing.T) {
	repo := newTestRepo(t)

	entry, err := core.StartTimer(repo, core.StartTimerInput{Description: "writing"})
	if err != nil {
		t.Fatal(err)
	}
	if entry.EndTime != nil {
		t.Error("new timer should have no end time")
	}
	if !entry.Billable {
		t.Error("billable should default to true")
	}
	if entry.Description != "writing" {
		t.Errorf("description = %q", entry.Description)
	}
	if !core.IsEntryID(entry.ID) {
		t.Errorf("unexpected id %q", entry.ID)
	}
}

func TestStartTimerAlreadyRunning(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := core.StartTimer(repo, core.StartTimerInput{Description: "first"}); err != nil {
		t.Fatal(err)
	}
	_, err := core.StartTimer(repo, core.StartTimerInput{Description: "second"})
	assertCode(t, err, core.CodeTimerAlreadyRunning)
}

func TestStartTimerWithProjectAndBackdate(t *testing.T) {
	repo := newTestRepo(t)

	project, err := core.CreateProject(repo, core.CreateProjectInput{Name: "website"})
	if err != nil {
		t.Fatal(err)
	}

	at := time.Now().UTC().Add(-10 * time.Minute).Truncate(time.Millisecond)
	entry, err := core.StartTimer(repo, core.StartTimerInput{
		Description: "frontend",
		Project:     "website",
		At:          &at,
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.ProjectID == nil || *entry.ProjectID != project.ID {
		t.Errorf("project not resolved: %v", entry.ProjectID)
	}
	if !entry.StartTime.Equal(at) {
		t.Errorf("start = %v, want %v", entry.StartTime, at)
	}
}

func TestStartTimerUnknownProject(t *testing.T) {
	repo := newTestRepo(t)
	_, err := core.StartTimer(repo, core.StartTimerInput{Project: "nope"})
	assertCode(t, err, core.CodeProjectNotFound)
}

func TestStopTimer(t *testing.T) {
	repo := newTestRepo(t)

	started, err := core.StartTimer(repo, core.StartTimerInput{Description: "work"})
	if err != nil {
		t.Fatal(err)
	}

	stopped, err := core.StopTimer(repo, core.StopTimerInput{})
	if err != nil {
		t.Fatal(err)
	}
	if stopped.ID != started.ID {
		t.Errorf("stopped wrong entry: %s", stopped.ID)
	}
	if stopped.EndTime == nil {
		t.Fatal("end time not set")
	}
	if stopped.DurationSeconds() == nil {
		t.Error("expected a duration after stop")
	}

	// Nothing running anymore.
	_, err = core.StopTimer(repo, core.StopTimerInput{})
	assertCode(t, err, core.CodeNoTimerRunning)
}

func TestStopTimerUpdatesFields(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := core.StartTimer(repo, core.StartTimerInput{Description: "draft"}); err != nil {
		t.Fatal(err)
	}

	desc := "final"
	stopped, err := core.StopTimer(repo, core.StopTimerInput{
		Description: &desc,
		Tags:        []string{"writing"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if stopped.Description != "final" {
		t.Errorf("description = %q", stopped.Description)
	}
	if len(stopped.Tags) != 1 || stopped.Tags[0] != "writing" {
		t.Errorf("tags = %v", stopped.Tags)
	}
}

func TestGetStatus(t *testing.T) {
	repo := newTestRepo(t)

	status, err := core.GetStatus(repo)
	if err != nil {
		t.Fatal(err)
	}
	if status.Running {
		t.Error("no timer should be running")
	}

	at := time.Now().UTC().Add(-90 * time.Second)
	if _, err := core.StartTimer(repo, core.StartTimerInput{At: &at}); err != nil {
		t.Fatal(err)
	}

	status, err = core.GetStatus(repo)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Running || status.Entry == nil {
		t.Fatal("expected running status")
	}
	if status.ElapsedSeconds == nil || *status.ElapsedSeconds < 90 {
		t.Errorf("elapsed = %v, want >= 90", status.ElapsedSeconds)
	}
}

func TestResumeTimerMostRecent(t *testing.T) {
	repo := newTestRepo(t)

	project, err := core.CreateProject(repo, core.CreateProjectInput{Name: "api"})
	if err != nil {
		t.Fatal(err)
	}

	from := time.Now().UTC().Add(-2 * time.Hour)
	to := from.Add(time.Hour)
	if _, err := core.LogEntry(repo, core.LogEntryInput{
		Description: "endpoints",
		Project:     "api",
		Tags:        []string{"backend"},
		From:        from,
		To:          &to,
	}); err != nil {
		t.Fatal(err)
	}

	resumed, err := core.ResumeTimer(repo, core.ResumeTimerInput{})
	if err != nil {
		t.Fatal(err)
	}
	if resumed.Description != "endpoints" {
		t.Errorf("description = %q", resumed.Description)
	}
	if resumed.ProjectID == nil || *resumed.ProjectID != project.ID {
		t.Errorf("project = %v", resumed.ProjectID)
	}
	if len(resumed.Tags) != 1 || resumed.Tags[0] != "backend" {
		t.Errorf("tags = %v", resumed.Tags)
	}
	if resumed.EndTime != nil {
		t.Error("resumed entry should be running")
	}
}

func TestResumeTimerNoHistory(t *testing.T) {
	repo := newTestRepo(t)
	_, err := core.ResumeTimer(repo, core.ResumeTimerInput{})
	assertCode(t, err, core.CodeNoEntriesFound)
}

func TestResumeTimerWhileRunning(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := core.StartTimer(repo, core.StartTimerInput{}); err != nil {
		t.Fatal(err)
	}
	_, err := core.ResumeTimer(repo, core.ResumeTimerInput{})
	assertCode(t, err, core.CodeTimerAlreadyRunning)
}

func TestSwitchTimer(t *testing.T) {
	repo := newTestRepo(t)

	started, err := core.StartTimer(repo, core.StartTimerInput{Description: "old"})
	if err != nil {
		t.Fatal(err)
	}

	result, err := core.SwitchTimer(repo, core.SwitchTimerInput{Description: "new"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Stopped.ID != started.ID || result.Stopped.EndTime == nil {
		t.Error("previous timer not stopped")
	}
	if result.Started.Description != "new" || result.Started.EndTime != nil {
		t.Error("new timer not running")
	}
}

func TestSwitchTimerRequiresRunning(t *testing.T) {
	repo := newTestRepo(t)
	_, err := core.SwitchTimer(repo, core.SwitchTimerInput{Description: "new"})
	assertCode(t, err, core.CodeNoTimerRunning)
}

func TestCancelTimer(t *testing.T) {
	repo := newTestRepo(t)

	started, err := core.StartTimer(repo, core.StartTimerInput{Description: "oops"})
	if err != nil {
		t.Fatal(err)
	}

	cancelled, err := core.CancelTimer(repo)
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.ID != started.ID {
		t.Errorf("cancelled wrong entry: %s", cancelled.ID)
	}

	// The entry is gone, not closed.
	if entry, err := repo.GetEntry(started.ID); err != nil || entry != nil {
		t.Errorf("entry should be deleted, got %v, %v", entry, err)
	}

	_, err = core.CancelTimer(repo)
	assertCode(t, err, core.CodeNoTimerRunning)
}
