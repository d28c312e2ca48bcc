package tasks

import (
	"context"

	"tracker/internal/repository"
	"tracker/pkg/auditlog"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/metadata"
	"tracker/pkg/models"
	"tracker/pkg/security"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TaskService struct {
	repo     TaskRepository
	auditLog auditlog.Recorder
}

func NewTaskService(repo TaskRepository, auditLog auditlog.Recorder) *TaskService {
	return &TaskService{repo: repo, auditLog: auditLog}
}

func (s *TaskService) ListByProject(ctx context.Context, identity *security.Identity, projectID uuid.UUID, query ListTasksQuery) ([]models.TaskView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	conditions := repository.NewQueryBuilder()
	conditions.AddCondition("project_id", projectID)
	if query.Status != "" {
		status, err := metadata.NewTaskStatus(query.Status)
		if err != nil {
			return nil, custom_error.NewValidation("status", err.Error())
		}
		conditions.AddCondition("status", string(status))
	}

	return s.repo.GetTasks(ctx, conditions)
}

// MyTasks lists every task assigned to the caller across projects.
func (s *TaskService) MyTasks(ctx context.Context, identity *security.Identity) ([]models.TaskView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	conditions := repository.NewQueryBuilder()
	conditions.AddCondition("assignee_id", identity.UserID)

	return s.repo.GetTasks(ctx, conditions)
}

// GetTask returns nil without error when the task does not exist.
func (s *TaskService) GetTask(ctx context.Context, identity *security.Identity, id uuid.UUID) (*models.TaskView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	return s.repo.GetTask(ctx, id)
}

// CreateTask starts every task with no logged hours and no dependencies.
func (s *TaskService) CreateTask(ctx context.Context, identity *security.Identity, req CreateTaskRequest) (*models.TaskView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	status, err := metadata.NewTaskStatus(req.Status)
	if err != nil {
		return nil, custom_error.NewValidation("status", err.Error())
	}
	priority, err := metadata.NewPriority(req.Priority)
	if err != nil {
		return nil, custom_error.NewValidation("priority", err.Error())
	}

	task := &models.Task{
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Status:         status,
		Priority:       priority,
		AssigneeID:     req.AssigneeID,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    0,
		DueDate:        req.DueDate,
		Dependencies:   pq.StringArray{},
		Tags:           pq.StringArray(req.Tags),
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if task.Tags == nil {
		task.Tags = pq.StringArray{}
	}

	if err := s.repo.PersistTask(ctx, task); err != nil {
		return nil, err
	}

	s.auditLog.Log("create", identity.UserID, map[string]interface{}{
		"project_id": task.ProjectID,
		"title":      task.Title,
		"msg":        "Task created",
	}, task)

	return s.reload(ctx, task.ID)
}

func (s *TaskService) UpdateTask(ctx context.Context, identity *security.Identity, id uuid.UUID, req UpdateTaskRequest) (*models.TaskView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	changes, err := taskChanges(req)
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		exists, err := s.repo.TaskExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, custom_error.NewNotFound("task", id)
		}
	} else {
		updated, err := s.repo.UpdateTask(ctx, id, changes)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, custom_error.NewNotFound("task", id)
		}

		s.auditLog.Log("update", identity.UserID, changes, &models.Task{ID: id})
	}

	return s.reload(ctx, id)
}

// DeleteTask does not check that the task exists.
func (s *TaskService) DeleteTask(ctx context.Context, identity *security.Identity, id uuid.UUID) error {
	if err := security.Require(identity); err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.auditLog.Log("delete", identity.UserID, map[string]interface{}{"msg": "Task deleted"}, &models.Task{ID: id})

	return nil
}

func (s *TaskService) reload(ctx context.Context, id uuid.UUID) (*models.TaskView, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, custom_error.NewNotFound("task", id)
	}
	return task, nil
}

func taskChanges(req UpdateTaskRequest) (goqu.Record, error) {
	changes := goqu.Record{}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, custom_error.NewValidation("title", "must not be empty")
		}
		changes["title"] = *req.Title
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Status != nil {
		status, err := metadata.NewTaskStatus(*req.Status)
		if err != nil {
			return nil, custom_error.NewValidation("status", err.Error())
		}
		changes["status"] = string(status)
	}
	if req.Priority != nil {
		priority, err := metadata.NewPriority(*req.Priority)
		if err != nil {
			return nil, custom_error.NewValidation("priority", err.Error())
		}
		changes["priority"] = string(priority)
	}
	switch {
	case req.ClearAssignee && req.AssigneeID != nil:
		return nil, custom_error.NewValidation("assignee_id", "cannot be set and cleared at once")
	case req.ClearAssignee:
		changes["assignee_id"] = nil
	case req.AssigneeID != nil:
		changes["assignee_id"] = *req.AssigneeID
	}
	if req.EstimatedHours != nil {
		changes["estimated_hours"] = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		changes["actual_hours"] = *req.ActualHours
	}
	if req.DueDate != nil {
		changes["due_date"] = *req.DueDate
	}
	if req.Tags != nil {
		changes["tags"] = pq.StringArray(*req.Tags)
	}

	return changes, nil
}
