package projects

import (
	"context"
	"fmt"

	"tracker/internal/repository"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/metadata"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

type ProjectRepository interface {
	GetProjects(ctx context.Context, search string, conditions repository.QueryBuilder) ([]models.ProjectView, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.ProjectView, error)
	PersistProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, id uuid.UUID, changes goqu.Record) (bool, error)
	ProjectExists(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteProject(ctx context.Context, id uuid.UUID) (bool, error)
}

type projectRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) ProjectRepository {
	return &projectRepositoryImpl{repository: r}
}

var projectAliases = map[string]string{
	"status":   "p.status",
	"priority": "p.priority",
}

func (r *projectRepositoryImpl) decoratedQuery() *goqu.SelectDataset {
	return decoratedProjectQuery(r.repository.GoquDBWrapper)
}

// decoratedProjectQuery selects projects with the manager display name and
// task counts in a single round trip.
func decoratedProjectQuery(db repository.Querier) *goqu.SelectDataset {
	taskCounts := db.
		From("tasks").
		Select(
			goqu.C("project_id"),
			goqu.COUNT(goqu.Star()).As("task_count"),
			goqu.L("COUNT(*) FILTER (WHERE status = ?)", string(metadata.TaskCompleted)).As("completed_tasks"),
		).
		GroupBy("project_id")

	return db.
		From(goqu.T("projects").As("p")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("p.manager_id")})).
		LeftJoin(taskCounts.As("tc"), goqu.On(goqu.Ex{"tc.project_id": goqu.I("p.id")})).
		Select(
			goqu.I("p.id").As("id"),
			goqu.I("p.name").As("name"),
			goqu.I("p.description").As("description"),
			goqu.I("p.status").As("status"),
			goqu.I("p.priority").As("priority"),
			goqu.I("p.start_date").As("start_date"),
			goqu.I("p.end_date").As("end_date"),
			goqu.I("p.budget").As("budget"),
			goqu.I("p.manager_id").As("manager_id"),
			goqu.I("p.client_name").As("client_name"),
			goqu.I("p.tags").As("tags"),
			goqu.I("p.created_at").As("created_at"),
			goqu.COALESCE(repository.DisplayName("u"), "Unknown").As("manager_name"),
			goqu.COALESCE(goqu.I("tc.task_count"), 0).As("task_count"),
			goqu.COALESCE(goqu.I("tc.completed_tasks"), 0).As("completed_tasks"),
		)
}

// listProjectsQuery filters by exact conditions and a name-only search.
func listProjectsQuery(db repository.Querier, search string, conditions repository.QueryBuilder) *goqu.SelectDataset {
	query := decoratedProjectQuery(db).Order(goqu.I("p.created_at").Desc())

	if conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(projectAliases))
	}
	if search != "" {
		query = query.Where(goqu.I("p.name").ILike(repository.ContainsPattern(search)))
	}

	return query
}

func (r *projectRepositoryImpl) GetProjects(ctx context.Context, search string, conditions repository.QueryBuilder) ([]models.ProjectView, error) {
	query := listProjectsQuery(r.repository.GoquDBWrapper, search, conditions)

	projects := []models.ProjectView{}
	if err := query.Executor().ScanStructsContext(ctx, &projects); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return projects, nil
}

// GetProject returns nil when the project does not exist.
func (r *projectRepositoryImpl) GetProject(ctx context.Context, id uuid.UUID) (*models.ProjectView, error) {
	var project models.ProjectView
	found, err := r.decoratedQuery().
		Where(goqu.Ex{"p.id": id}).
		Executor().
		ScanStructContext(ctx, &project)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &project, nil
}

func (r *projectRepositoryImpl) PersistProject(ctx context.Context, project *models.Project) error {
	query := r.repository.GoquDBWrapper.Insert("projects").
		Rows(goqu.Record{
			"name":        project.Name,
			"description": project.Description,
			"status":      string(project.Status),
			"priority":    string(project.Priority),
			"start_date":  project.StartDate,
			"end_date":    project.EndDate,
			"budget":      project.Budget,
			"manager_id":  project.ManagerID,
			"client_name": project.ClientName,
			"tags":        project.Tags,
		}).
		Returning("id", "created_at")

	var inserted repository.Inserted
	if _, err := query.Executor().ScanStructContext(ctx, &inserted); err != nil {
		return custom_error.FromDB("failed to insert project", err)
	}
	project.ID = inserted.ID
	project.CreatedAt = inserted.CreatedAt

	return nil
}

// UpdateProject reports false when no project has the id.
func (r *projectRepositoryImpl) UpdateProject(ctx context.Context, id uuid.UUID, changes goqu.Record) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Update("projects").
		Set(changes).
		Where(goqu.Ex{"id": id}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return false, custom_error.FromDB("failed to update project", err)
	}

	return repository.Affected(result)
}

func (r *projectRepositoryImpl) ProjectExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var projectID uuid.UUID
	found, err := r.repository.GoquDBWrapper.From("projects").
		Select("id").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanValContext(ctx, &projectID)
	if err != nil {
		return false, fmt.Errorf("failed to check project: %w", err)
	}

	return found, nil
}

// DeleteProject removes the project and every task under it in one
// transaction. Allocations charged to them are kept with the references
// cleared by the schema.
func (r *projectRepositoryImpl) DeleteProject(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false

	err := repository.WithTransaction(ctx, r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var projectID uuid.UUID
		found, err := lockProjectQuery(tx, id).
			Executor().
			ScanValContext(ctx, &projectID)
		if err != nil {
			return fmt.Errorf("failed to lock project: %w", err)
		}
		if !found {
			return nil
		}

		for _, statement := range cascadeDeletes(tx, id) {
			if _, err := statement.Executor().ExecContext(ctx); err != nil {
				return custom_error.FromDB("failed to delete project", err)
			}
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func lockProjectQuery(db repository.Querier, id uuid.UUID) *goqu.SelectDataset {
	return db.From("projects").
		Select("id").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)
}

// cascadeDeletes lists the statements removing a project, in execution order:
// its tasks go first so the RESTRICT key on tasks.project_id never fires.
func cascadeDeletes(db repository.Querier, id uuid.UUID) []*goqu.DeleteDataset {
	return []*goqu.DeleteDataset{
		db.Delete("tasks").Where(goqu.Ex{"project_id": id}),
		db.Delete("projects").Where(goqu.Ex{"id": id}),
	}
}
