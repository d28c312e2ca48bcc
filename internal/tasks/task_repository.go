package tasks

import (
	"context"
	"fmt"

	"tracker/internal/repository"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type TaskRepository interface {
	GetTasks(ctx context.Context, conditions repository.QueryBuilder) ([]models.TaskView, error)
	GetTask(ctx context.Context, id uuid.UUID) (*models.TaskView, error)
	PersistTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, id uuid.UUID, changes goqu.Record) (bool, error)
	TaskExists(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type taskRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) TaskRepository {
	return &taskRepositoryImpl{repository: r}
}

var taskAliases = map[string]string{
	"project_id":  "t.project_id",
	"assignee_id": "t.assignee_id",
	"status":      "t.status",
	"priority":    "t.priority",
}

func (r *taskRepositoryImpl) decoratedQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("tasks").As("t")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("t.assignee_id")})).
		LeftJoin(goqu.T("projects").As("p"), goqu.On(goqu.Ex{"p.id": goqu.I("t.project_id")})).
		Select(
			goqu.I("t.id").As("id"),
			goqu.I("t.project_id").As("project_id"),
			goqu.I("t.title").As("title"),
			goqu.I("t.description").As("description"),
			goqu.I("t.status").As("status"),
			goqu.I("t.priority").As("priority"),
			goqu.I("t.assignee_id").As("assignee_id"),
			goqu.I("t.estimated_hours").As("estimated_hours"),
			goqu.I("t.actual_hours").As("actual_hours"),
			goqu.I("t.due_date").As("due_date"),
			goqu.I("t.dependencies").As("dependencies"),
			goqu.I("t.tags").As("tags"),
			goqu.I("t.created_at").As("created_at"),
			repository.DisplayName("u").As("assignee_name"),
			goqu.I("p.name").As("project_name"),
		)
}

func (r *taskRepositoryImpl) GetTasks(ctx context.Context, conditions repository.QueryBuilder) ([]models.TaskView, error) {
	query := r.decoratedQuery().Order(goqu.I("t.created_at").Asc())
	if conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(taskAliases))
	}

	tasks := []models.TaskView{}
	if err := query.Executor().ScanStructsContext(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return tasks, nil
}

// GetTask returns nil when the task does not exist.
func (r *taskRepositoryImpl) GetTask(ctx context.Context, id uuid.UUID) (*models.TaskView, error) {
	var task models.TaskView
	found, err := r.decoratedQuery().
		Where(goqu.Ex{"t.id": id}).
		Executor().
		ScanStructContext(ctx, &task)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &task, nil
}

func (r *taskRepositoryImpl) PersistTask(ctx context.Context, task *models.Task) error {
	query := r.repository.GoquDBWrapper.Insert("tasks").
		Rows(goqu.Record{
			"project_id":      task.ProjectID,
			"title":           task.Title,
			"description":     task.Description,
			"status":          string(task.Status),
			"priority":        string(task.Priority),
			"assignee_id":     task.AssigneeID,
			"estimated_hours": task.EstimatedHours,
			"actual_hours":    task.ActualHours,
			"due_date":        task.DueDate,
			"dependencies":    task.Dependencies,
			"tags":            task.Tags,
		}).
		Returning("id", "created_at")

	var inserted repository.Inserted
	if _, err := query.Executor().ScanStructContext(ctx, &inserted); err != nil {
		return custom_error.FromDB("failed to insert task", err)
	}
	task.ID = inserted.ID
	task.CreatedAt = inserted.CreatedAt

	return nil
}

// UpdateTask reports false when no task has the id.
func (r *taskRepositoryImpl) UpdateTask(ctx context.Context, id uuid.UUID, changes goqu.Record) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Update("tasks").
		Set(changes).
		Where(goqu.Ex{"id": id}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return false, custom_error.FromDB("failed to update task", err)
	}

	return repository.Affected(result)
}

func (r *taskRepositoryImpl) TaskExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var taskID uuid.UUID
	found, err := r.repository.GoquDBWrapper.From("tasks").
		Select("id").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanValContext(ctx, &taskID)
	if err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}

	return found, nil
}

func (r *taskRepositoryImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	_, err := r.repository.GoquDBWrapper.Delete("tasks").
		Where(goqu.Ex{"id": id}).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return custom_error.FromDB("failed to delete task", err)
	}

	return nil
}
