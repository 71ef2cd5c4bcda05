package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/machielvdw/clokk/internal/core"
)

const entryColumns = `id, project_id, description, start_time, end_time, tags, billable, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (*core.Entry, error) {
	var e core.Entry
	var projectID, endTime sql.NullString
	var startTime, tags, createdAt, updatedAt string
	var billable int

	err := row.Scan(&e.ID, &projectID, &e.Description, &startTime, &endTime, &tags, &billable, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		e.ProjectID = &projectID.String
	}
	e.StartTime, err = time.Parse(core.TimeLayout, startTime)
	if err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}
	if endTime.Valid {
		t, err := time.Parse(core.TimeLayout, endTime.String)
		if err != nil {
			return nil, fmt.Errorf("parse end_time: %w", err)
		}
		e.EndTime = &t
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	e.Billable = billable == 1
	e.CreatedAt, _ = time.Parse(core.TimeLayout, createdAt)
	e.UpdatedAt, _ = time.Parse(core.TimeLayout, updatedAt)
	return &e, nil
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

// CreateEntry inserts a new entry. The partial unique index rejects a
// second running entry at the storage level.
func (s *Store) CreateEntry(entry core.NewEntry) (*core.Entry, error) {
	now := core.FormatTime(time.Now())

	var projectID any
	if entry.ProjectID != nil {
		projectID = *entry.ProjectID
	}
	var endTime any
	if entry.EndTime != nil {
		endTime = core.FormatTime(*entry.EndTime)
	}
	billable := 1
	if entry.Billable != nil && !*entry.Billable {
		billable = 0
	}

	_, err := s.db.Exec(
		`INSERT INTO entries (id, project_id, description, start_time, end_time, tags, billable, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, projectID, entry.Description, core.FormatTime(entry.StartTime),
		endTime, encodeTags(entry.Tags), billable, now, now,
	)
	if err != nil {
		return nil, core.WrapStorage("create entry", err)
	}
	return s.GetEntry(entry.ID)
}

// GetEntry returns the entry with the given id, or (nil, nil) when it
// does not exist.
func (s *Store) GetEntry(id string) (*core.Entry, error) {
	row := s.db.QueryRow(`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, core.WrapStorage("get entry", err)
	}
	return e, nil
}

// GetRunningEntry returns the entry with a null end_time, or
// (nil, nil) when no timer is running.
func (s *Store) GetRunningEntry() (*core.Entry, error) {
	row := s.db.QueryRow(`SELECT ` + entryColumns + ` FROM entries WHERE end_time IS NULL`)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, core.WrapStorage("get running entry", err)
	}
	return e, nil
}

// UpdateEntry applies the present fields and bumps updated_at.
func (s *Store) UpdateEntry(id string, updates core.EntryUpdates) (*core.Entry, error) {
	existing, err := s.GetEntry(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, core.NewEntryNotFound(id)
	}

	sets := []string{"updated_at = ?"}
	args := []any{core.FormatTime(time.Now())}

	if updates.Description.Valid {
		sets = append(sets, "description = ?")
		args = append(args, updates.Description.Value)
	}
	if updates.ProjectID.Valid {
		sets = append(sets, "project_id = ?")
		if updates.ProjectID.Value == nil {
			args = append(args, nil)
		} else {
			args = append(args, *updates.ProjectID.Value)
		}
	}
	if updates.StartTime.Valid {
		sets = append(sets, "start_time = ?")
		args = append(args, core.FormatTime(updates.StartTime.Value))
	}
	if updates.EndTime.Valid {
		sets = append(sets, "end_time = ?")
		if updates.EndTime.Value == nil {
			args = append(args, nil)
		} else {
			args = append(args, core.FormatTime(*updates.EndTime.Value))
		}
	}
	if updates.Tags.Valid {
		sets = append(sets, "tags = ?")
		args = append(args, encodeTags(updates.Tags.Value))
	}
	if updates.Billable.Valid {
		sets = append(sets, "billable = ?")
		if updates.Billable.Value {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}

	args = append(args, id)
	_, err = s.db.Exec(`UPDATE entries SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, core.WrapStorage("update entry", err)
	}
	return s.GetEntry(id)
}

// DeleteEntry removes an entry, returning the deleted record.
func (s *Store) DeleteEntry(id string) (*core.Entry, error) {
	existing, err := s.GetEntry(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, core.NewEntryNotFound(id)
	}
	if _, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id); err != nil {
		return nil, core.WrapStorage("delete entry", err)
	}
	return existing, nil
}

// entryConditions builds the WHERE clause shared by listings and
// report scans.
func entryConditions(projectID string, tags []string, from, to *time.Time, billable, running *bool) (string, []any) {
	where := []string{"1=1"}
	var args []any

	if projectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, projectID)
	}
	if from != nil {
		where = append(where, "start_time >= ?")
		args = append(args, core.FormatTime(*from))
	}
	if to != nil {
		where = append(where, "start_time <= ?")
		args = append(args, core.FormatTime(*to))
	}
	if billable != nil {
		where = append(where, "billable = ?")
		if *billable {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}
	for _, tag := range tags {
		where = append(where, "tags LIKE ?")
		args = append(args, `%"`+tag+`"%`)
	}
	if running != nil {
		if *running {
			where = append(where, "end_time IS NULL")
		} else {
			where = append(where, "end_time IS NOT NULL")
		}
	}

	return strings.Join(where, " AND "), args
}

// ListEntries returns one page of matching entries, newest first, plus
// the unpaged total.
func (s *Store) ListEntries(filters core.EntryFilters) (*core.ListEntriesResult, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	where, args := entryConditions(filters.ProjectID, filters.Tags, filters.From, filters.To, filters.Billable, filters.Running)

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries WHERE `+where, args...).Scan(&total); err != nil {
		return nil, core.WrapStorage("count entries", err)
	}

	query := `SELECT ` + entryColumns + ` FROM entries WHERE ` + where +
		` ORDER BY start_time DESC LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, limit, filters.Offset)...)
	if err != nil {
		return nil, core.WrapStorage("list entries", err)
	}
	defer rows.Close()

	entries := []core.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, core.WrapStorage("scan entry", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapStorage("list entries", err)
	}

	return &core.ListEntriesResult{
		Entries: entries,
		Total:   total,
		Limit:   limit,
		Offset:  filters.Offset,
	}, nil
}

// EntriesForReport returns every matching entry ordered by start time,
// oldest first.
func (s *Store) EntriesForReport(filters core.ReportFilters) ([]core.Entry, error) {
	where, args := entryConditions(filters.ProjectID, filters.Tags, filters.From, filters.To, filters.Billable, nil)

	rows, err := s.db.Query(`SELECT `+entryColumns+` FROM entries WHERE `+where+` ORDER BY start_time`, args...)
	if err != nil {
		return nil, core.WrapStorage("entries for report", err)
	}
	defer rows.Close()

	entries := []core.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, core.WrapStorage("scan entry", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
