package core

import (
	"encoding/json"
	"time"
)

// TimeLayout is the canonical wire format for instants: UTC with
// millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in the canonical wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Entry is one tracked span of time. A nil EndTime means the timer is
// still running; at most one running entry may exist per store.
type Entry struct {
	ID          string
	ProjectID   *string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Tags        []string
	Billable    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DurationSeconds returns the entry length in whole seconds, or nil
// while the entry is running.
func (e *Entry) DurationSeconds() *int64 {
	if e.EndTime == nil {
		return nil
	}
	d := int64(e.EndTime.Sub(e.StartTime) / time.Second)
	return &d
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var end *string
	if e.EndTime != nil {
		s := FormatTime(*e.EndTime)
		end = &s
	}
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return json.Marshal(struct {
		ID              string   `json:"id"`
		ProjectID       *string  `json:"project_id"`
		Description     string   `json:"description"`
		StartTime       string   `json:"start_time"`
		EndTime         *string  `json:"end_time"`
		Tags            []string `json:"tags"`
		Billable        bool     `json:"billable"`
		DurationSeconds *int64   `json:"duration_seconds"`
		CreatedAt       string   `json:"created_at"`
		UpdatedAt       string   `json:"updated_at"`
	}{
		ID:              e.ID,
		ProjectID:       e.ProjectID,
		Description:     e.Description,
		StartTime:       FormatTime(e.StartTime),
		EndTime:         end,
		Tags:            tags,
		Billable:        e.Billable,
		DurationSeconds: e.DurationSeconds(),
		CreatedAt:       FormatTime(e.CreatedAt),
		UpdatedAt:       FormatTime(e.UpdatedAt),
	})
}

// Project is a named billing bucket entries may reference.
type Project struct {
	ID        string
	Name      string
	Client    *string
	Color     *string
	Rate      *float64
	Currency  string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Project) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Client    *string  `json:"client"`
		Color     *string  `json:"color"`
		Rate      *float64 `json:"rate"`
		Currency  string   `json:"currency"`
		Archived  bool     `json:"archived"`
		CreatedAt string   `json:"created_at"`
		UpdatedAt string   `json:"updated_at"`
	}{
		ID:        p.ID,
		Name:      p.Name,
		Client:    p.Client,
		Color:     p.Color,
		Rate:      p.Rate,
		Currency:  p.Currency,
		Archived:  p.Archived,
		CreatedAt: FormatTime(p.CreatedAt),
		UpdatedAt: FormatTime(p.UpdatedAt),
	})
}

// Field carries an optional update value and records whether the caller
// supplied it, so "leave unchanged" stays distinct from "set to zero or
// clear". The zero Field is absent.
type Field[T any] struct {
	Valid bool
	Value T
}

// Set returns a present Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Valid: true, Value: v}
}

// NewEntry is the input for Repository.CreateEntry.
type NewEntry struct {
	ID          string
	ProjectID   *string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Tags        []string
	Billable    *bool // nil defaults to true
}

// EntryUpdates is a partial update of an entry. Absent fields are left
// untouched; ProjectID may be set to nil to clear the reference.
type EntryUpdates struct {
	Description Field[string]
	ProjectID   Field[*string]
	StartTime   Field[time.Time]
	EndTime     Field[*time.Time]
	Tags        Field[[]string]
	Billable    Field[bool]
}

// NewProject is the input for Repository.CreateProject.
type NewProject struct {
	ID       string
	Name     string
	Client   *string
	Color    *string
	Rate     *float64
	Currency string // empty defaults to USD
}

// ProjectUpdates is a partial update of a project.
type ProjectUpdates struct {
	Name     Field[string]
	Client   Field[*string]
	Color    Field[*string]
	Rate     Field[*float64]
	Currency Field[string]
	Archived Field[bool]
}

// EntryFilters narrows entry listings. Running selects only running
// (true) or only completed (false) entries when set.
type EntryFilters struct {
	ProjectID string
	Tags      []string
	From      *time.Time
	To        *time.Time
	Billable  *bool
	Running   *bool
	Limit     int
	Offset    int
}

// ProjectFilters narrows project listings.
type ProjectFilters struct {
	IncludeArchived bool
}

// ReportFilters narrows the entry set a report is computed over.
type ReportFilters struct {
	ProjectID string
	Tags      []string
	From      *time.Time
	To        *time.Time
	Billable  *bool
	GroupBy   GroupBy
}

// StartTimerInput carries the parameters for starting a timer. Project
// may be a project id or a unique name; At overrides the start instant.
type StartTimerInput struct {
	Description string
	Project     string
	Tags        []string
	Billable    *bool
	At          *time.Time
}

// StopTimerInput optionally overrides the stop instant and rewrites the
// description or tags on the way out.
type StopTimerInput struct {
	At          *time.Time
	Description *string
	Tags        []string
}

// ResumeTimerInput selects the entry to clone; empty ID means the most
// recently stopped entry.
type ResumeTimerInput struct {
	ID string
}

// SwitchTimerInput carries the parameters for the new timer started by
// a switch.
type SwitchTimerInput struct {
	Description string
	Project     string
	Tags        []string
}

// LogEntryInput records a completed entry after the fact. Exactly one
// of To and Duration must be supplied.
type LogEntryInput struct {
	Description string
	Project     string
	From        time.Time
	To          *time.Time
	Duration    *int64 // seconds
	Tags        []string
	Billable    *bool
}

// StatusResult is the answer to a timer status query.
type StatusResult struct {
	Running        bool   `json:"running"`
	Entry          *Entry `json:"entry,omitempty"`
	ElapsedSeconds *int64 `json:"elapsed_seconds,omitempty"`
}

// SwitchResult holds both halves of a switch.
type SwitchResult struct {
	Stopped *Entry `json:"stopped"`
	Started *Entry `json:"started"`
}

// ListEntriesResult is one page of entries plus the unpaged total.
type ListEntriesResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}
