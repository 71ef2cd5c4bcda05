package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/machielvdw/clokk/internal/core"
)

const projectColumns = `id, name, client, color, rate, currency, archived, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*core.Project, error) {
	var p core.Project
	var client, color sql.NullString
	var rate sql.NullFloat64
	var archived int
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.Name, &client, &color, &rate, &p.Currency, &archived, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if client.Valid {
		p.Client = &client.String
	}
	if color.Valid {
		p.Color = &color.String
	}
	if rate.Valid {
		p.Rate = &rate.Float64
	}
	p.Archived = archived == 1
	p.CreatedAt, _ = time.Parse(core.TimeLayout, createdAt)
	p.UpdatedAt, _ = time.Parse(core.TimeLayout, updatedAt)
	return &p, nil
}

// CreateProject inserts a new project.
func (s *Store) CreateProject(project core.NewProject) (*core.Project, error) {
	now := core.FormatTime(time.Now())

	currency := project.Currency
	if currency == "" {
		currency = "USD"
	}
	var client, color, rate any
	if project.Client != nil {
		client = *project.Client
	}
	if project.Color != nil {
		color = *project.Color
	}
	if project.Rate != nil {
		rate = *project.Rate
	}

	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, client, color, rate, currency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.Name, client, color, rate, currency, now, now,
	)
	if err != nil {
		return nil, core.WrapStorage("create project", err)
	}
	return s.GetProject(project.ID)
}

// GetProject resolves by id when ref carries the "prj_" prefix, by
// exact (case-sensitive) name otherwise. Returns (nil, nil) when no
// project matches.
func (s *Store) GetProject(idOrName string) (*core.Project, error) {
	column := "name"
	if core.IsProjectID(idOrName) {
		column = "id"
	}

	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE `+column+` = ?`, idOrName)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, core.WrapStorage("get project", err)
	}
	return p, nil
}

// UpdateProject applies the present fields and bumps updated_at.
func (s *Store) UpdateProject(id string, updates core.ProjectUpdates) (*core.Project, error) {
	existing, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, core.NewProjectNotFound(id)
	}

	sets := []string{"updated_at = ?"}
	args := []any{core.FormatTime(time.Now())}

	if updates.Name.Valid {
		sets = append(sets, "name = ?")
		args = append(args, updates.Name.Value)
	}
	if updates.Client.Valid {
		sets = append(sets, "client = ?")
		args = append(args, nullable(updates.Client.Value))
	}
	if updates.Color.Valid {
		sets = append(sets, "color = ?")
		args = append(args, nullable(updates.Color.Value))
	}
	if updates.Rate.Valid {
		sets = append(sets, "rate = ?")
		args = append(args, nullable(updates.Rate.Value))
	}
	if updates.Currency.Valid {
		sets = append(sets, "currency = ?")
		args = append(args, updates.Currency.Value)
	}
	if updates.Archived.Valid {
		sets = append(sets, "archived = ?")
		if updates.Archived.Value {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}

	args = append(args, id)
	_, err = s.db.Exec(`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, core.WrapStorage("update project", err)
	}
	return s.GetProject(id)
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// DeleteProject removes a project. With entries still referencing it
// the delete is blocked unless force is set, in which case those
// entries are unassigned in the same transaction.
func (s *Store) DeleteProject(id string, force bool) (*core.Project, error) {
	existing, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, core.NewProjectNotFound(id)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, core.WrapStorage("delete project", err)
	}
	defer tx.Rollback()

	var entryCount int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM entries WHERE project_id = ?`, id).Scan(&entryCount); err != nil {
		return nil, core.WrapStorage("count project entries", err)
	}

	if entryCount > 0 && !force {
		return nil, core.NewProjectHasEntries(id, entryCount)
	}

	if entryCount > 0 {
		_, err := tx.Exec(
			`UPDATE entries SET project_id = NULL, updated_at = ? WHERE project_id = ?`,
			core.FormatTime(time.Now()), id,
		)
		if err != nil {
			return nil, core.WrapStorage("unassign project entries", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM projects WHERE id = ?`, id); err != nil {
		return nil, core.WrapStorage("delete project", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, core.WrapStorage("delete project", err)
	}
	return existing, nil
}

// ListProjects lists projects ordered by name, skipping archived ones
// unless asked.
func (s *Store) ListProjects(filters core.ProjectFilters) ([]core.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !filters.IncludeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, core.WrapStorage("list projects", err)
	}
	defer rows.Close()

	projects := []core.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, core.WrapStorage("scan project", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}
