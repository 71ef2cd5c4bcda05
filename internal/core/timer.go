package core

import "time"

// resolveProjectRef turns a project name or id into a project id, or
// nil when no project was given.
func resolveProjectRef(repo Repository, ref string) (*string, error) {
	if ref == "" {
		return nil, nil
	}
	project, err := repo.GetProject(ref)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, NewProjectNotFound(ref)
	}
	return &project.ID, nil
}

// StartTimer creates a new running entry. Fails with
// TIMER_ALREADY_RUNNING when another entry is still open.
func StartTimer(repo Repository, in StartTimerInput) (*Entry, error) {
	running, err := repo.GetRunningEntry()
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, NewTimerAlreadyRunning(running.ID, running.Description)
	}

	projectID, err := resolveProjectRef(repo, in.Project)
	if err != nil {
		return nil, err
	}

	start := time.Now().UTC()
	if in.At != nil {
		start = in.At.UTC()
	}

	return repo.CreateEntry(NewEntry{
		ID:          NewEntryID(),
		ProjectID:   projectID,
		Description: in.Description,
		StartTime:   start,
		EndTime:     nil,
		Tags:        in.Tags,
		Billable:    in.Billable,
	})
}

// StopTimer closes the running entry, optionally overriding the stop
// instant and rewriting the description or tags.
func StopTimer(repo Repository, in StopTimerInput) (*Entry, error) {
	running, err := repo.GetRunningEntry()
	if err != nil {
		return nil, err
	}
	if running == nil {
		return nil, NewNoTimerRunning()
	}

	end := time.Now().UTC()
	if in.At != nil {
		end = in.At.UTC()
	}

	updates := EntryUpdates{EndTime: Set(&end)}
	if in.Description != nil {
		updates.Description = Set(*in.Description)
	}
	if in.Tags != nil {
		updates.Tags = Set(in.Tags)
	}

	return repo.UpdateEntry(running.ID, updates)
}

// GetStatus reports whether a timer is running and for how long.
func GetStatus(repo Repository) (*StatusResult, error) {
	running, err := repo.GetRunningEntry()
	if err != nil {
		return nil, err
	}
	if running == nil {
		return &StatusResult{Running: false}, nil
	}
	elapsed := int64(time.Since(running.StartTime) / time.Second)
	return &StatusResult{Running: true, Entry: running, ElapsedSeconds: &elapsed}, nil
}

// ResumeTimer starts a fresh entry cloning project, description, tags,
// and billable from a source entry: the given id, or the most recently
// stopped entry when no id is given. The source is not mutated.
func ResumeTimer(repo Repository, in ResumeTimerInput) (*Entry, error) {
	running, err := repo.GetRunningEntry()
	if err != nil {
		return nil, err
	}
	if running != nil {
		return nil, NewTimerAlreadyRunning(running.ID, running.Description)
	}

	var source *Entry
	if in.ID != "" {
		source, err = repo.GetEntry(in.ID)
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, NewEntryNotFound(in.ID)
		}
	} else {
		stopped := false
		result, err := repo.ListEntries(EntryFilters{Running: &stopped, Limit: 1})
		if err != nil {
			return nil, err
		}
		if len(result.Entries) == 0 {
			return nil, NewNoEntriesFound("No previous entries to resume.")
		}
		source = &result.Entries[0]
	}

	billable := source.Billable
	return repo.CreateEntry(NewEntry{
		ID:          NewEntryID(),
		ProjectID:   source.ProjectID,
		Description: source.Description,
		StartTime:   time.Now().UTC(),
		EndTime:     nil,
		Tags:        append([]string(nil), source.Tags...),
		Billable:    &billable,
	})
}

// SwitchTimer stops the running entry and starts a new one in a single
// operation. Requires an active timer.
func SwitchTimer(repo Repository, in SwitchTimerInput) (*SwitchResult, error) {
	stopped, err := StopTimer(repo, StopTimerInput{})
	if err != nil {
		return nil, err
	}
	started, err := StartTimer(repo, StartTimerInput{
		Description: in.Description,
		Project:     in.Project,
		Tags:        in.Tags,
	})
	if err != nil {
		return nil, err
	}
	return &SwitchResult{Stopped: stopped, Started: started}, nil
}

// CancelTimer deletes the running entry outright, returning what was
// discarded.
func CancelTimer(repo Repository) (*Entry, error) {
	running, err := repo.GetRunningEntry()
	if err != nil {
		return nil, err
	}
	if running == nil {
		return nil, NewNoTimerRunning()
	}
	return repo.DeleteEntry(running.ID)
}
