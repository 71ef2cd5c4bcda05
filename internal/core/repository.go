package core

// Repository is the persistence contract between the core operations
// and the storage backend. Lookup methods return (nil, nil) when the
// record does not exist; the core turns that into a typed error. All
// mutations return the resulting record so callers never need a second
// read.
//
// Backends must make the timer sequences (start, stop, resume, switch,
// cancel) logically atomic: in practice a uniqueness guarantee that at
// most one entry has a null end time.
type Repository interface {
	CreateEntry(entry NewEntry) (*Entry, error)
	GetEntry(id string) (*Entry, error)
	UpdateEntry(id string, updates EntryUpdates) (*Entry, error)
	DeleteEntry(id string) (*Entry, error)
	ListEntries(filters EntryFilters) (*ListEntriesResult, error)
	GetRunningEntry() (*Entry, error)

	CreateProject(project NewProject) (*Project, error)
	// GetProject resolves by id when given a "prj_"-prefixed reference,
	// by exact name otherwise.
	GetProject(idOrName string) (*Project, error)
	UpdateProject(id string, updates ProjectUpdates) (*Project, error)
	// DeleteProject fails with PROJECT_HAS_ENTRIES when entries still
	// reference the project, unless force is set, in which case those
	// entries are unassigned in the same transaction.
	DeleteProject(id string, force bool) (*Project, error)
	ListProjects(filters ProjectFilters) ([]Project, error)

	EntriesForReport(filters ReportFilters) ([]Entry, error)
}
