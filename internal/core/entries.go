package core

import "time"

// LogEntry records a completed entry retroactively. Exactly one of To
// and Duration must be supplied; the computed end must lie strictly
// after From.
func LogEntry(repo Repository, in LogEntryInput) (*Entry, error) {
	if in.To != nil && in.Duration != nil {
		return nil, NewValidation("--to and --duration are mutually exclusive. Use one or the other.", nil)
	}
	if in.To == nil && in.Duration == nil {
		return nil, NewValidation("Either --to or --duration is required.", nil)
	}

	var end time.Time
	if in.To != nil {
		end = in.To.UTC()
	} else {
		end = in.From.UTC().Add(time.Duration(*in.Duration) * time.Second)
	}

	if !end.After(in.From) {
		return nil, NewValidation("End time must be after start time.", map[string]any{
			"from": FormatTime(in.From),
			"to":   FormatTime(end),
		})
	}

	projectID, err := resolveProjectRef(repo, in.Project)
	if err != nil {
		return nil, err
	}

	return repo.CreateEntry(NewEntry{
		ID:          NewEntryID(),
		ProjectID:   projectID,
		Description: in.Description,
		StartTime:   in.From.UTC(),
		EndTime:     &end,
		Tags:        in.Tags,
		Billable:    in.Billable,
	})
}

// EditEntryInput is a partial edit. Project distinguishes absent from
// explicitly cleared: a present empty value removes the reference.
type EditEntryInput struct {
	Description Field[string]
	Project     Field[string]
	StartTime   Field[time.Time]
	EndTime     Field[time.Time]
	Tags        Field[[]string]
	Billable    Field[bool]
}

// EditEntry applies the provided fields and re-validates the merged
// time range with the same strict inequality LogEntry uses.
func EditEntry(repo Repository, id string, in EditEntryInput) (*Entry, error) {
	entry, err := repo.GetEntry(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, NewEntryNotFound(id)
	}

	updates := EntryUpdates{}
	if in.Description.Valid {
		updates.Description = Set(in.Description.Value)
	}
	if in.StartTime.Valid {
		updates.StartTime = Set(in.StartTime.Value.UTC())
	}
	if in.EndTime.Valid {
		end := in.EndTime.Value.UTC()
		updates.EndTime = Set(&end)
	}
	if in.Tags.Valid {
		updates.Tags = Set(in.Tags.Value)
	}
	if in.Billable.Valid {
		updates.Billable = Set(in.Billable.Value)
	}

	if in.Project.Valid {
		if in.Project.Value == "" {
			updates.ProjectID = Set[*string](nil)
		} else {
			projectID, err := resolveProjectRef(repo, in.Project.Value)
			if err != nil {
				return nil, err
			}
			updates.ProjectID = Set(projectID)
		}
	}

	// Validate the merged range: updated values where given, existing
	// values otherwise.
	start := entry.StartTime
	if in.StartTime.Valid {
		start = in.StartTime.Value.UTC()
	}
	end := entry.EndTime
	if in.EndTime.Valid {
		e := in.EndTime.Value.UTC()
		end = &e
	}
	if end != nil && !end.After(start) {
		return nil, NewValidation("End time must be after start time.", map[string]any{
			"start_time": FormatTime(start),
			"end_time":   FormatTime(*end),
		})
	}

	return repo.UpdateEntry(id, updates)
}

// DeleteEntry removes an entry by id. Deleting the running entry is
// allowed and behaves like a cancel.
func DeleteEntry(repo Repository, id string) (*Entry, error) {
	entry, err := repo.GetEntry(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, NewEntryNotFound(id)
	}
	return repo.DeleteEntry(id)
}

// ListEntries pages through entries matching the filters.
func ListEntries(repo Repository, filters EntryFilters) (*ListEntriesResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	return repo.ListEntries(filters)
}
