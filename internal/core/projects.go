package core

// CreateProjectInput names a new project. Currency defaults to USD at
// the storage layer.
type CreateProjectInput struct {
	Name     string
	Client   *string
	Color    *string
	Rate     *float64
	Currency string
}

// CreateProject creates a project with a unique name.
func CreateProject(repo Repository, in CreateProjectInput) (*Project, error) {
	existing, err := repo.GetProject(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewProjectAlreadyExists(in.Name)
	}

	return repo.CreateProject(NewProject{
		ID:       NewProjectID(),
		Name:     in.Name,
		Client:   in.Client,
		Color:    in.Color,
		Rate:     in.Rate,
		Currency: in.Currency,
	})
}

// EditProject applies a partial update, guarding against renaming onto
// an existing project.
func EditProject(repo Repository, idOrName string, updates ProjectUpdates) (*Project, error) {
	project, err := repo.GetProject(idOrName)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, NewProjectNotFound(idOrName)
	}

	if updates.Name.Valid && updates.Name.Value != project.Name {
		conflict, err := repo.GetProject(updates.Name.Value)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, NewProjectAlreadyExists(updates.Name.Value)
		}
	}

	return repo.UpdateProject(project.ID, updates)
}

// ArchiveProject soft-deletes a project; its entries keep their
// reference.
func ArchiveProject(repo Repository, idOrName string) (*Project, error) {
	project, err := repo.GetProject(idOrName)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, NewProjectNotFound(idOrName)
	}
	return repo.UpdateProject(project.ID, ProjectUpdates{Archived: Set(true)})
}

// DeleteProject removes a project. Without force the repository blocks
// the delete while entries still reference it.
func DeleteProject(repo Repository, idOrName string, force bool) (*Project, error) {
	project, err := repo.GetProject(idOrName)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, NewProjectNotFound(idOrName)
	}
	return repo.DeleteProject(project.ID, force)
}

// ListProjects lists projects, archived ones only on request.
func ListProjects(repo Repository, filters ProjectFilters) ([]Project, error) {
	return repo.ListProjects(filters)
}
