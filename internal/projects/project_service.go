package projects

import (
	"context"

	"tracker/internal/inventory/accounting"
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

type ProjectService struct {
	repo     ProjectRepository
	auditLog auditlog.Recorder
}

func NewProjectService(repo ProjectRepository, auditLog auditlog.Recorder) *ProjectService {
	return &ProjectService{repo: repo, auditLog: auditLog}
}

func (s *ProjectService) ListProjects(ctx context.Context, identity *security.Identity, query ListProjectsQuery) ([]models.ProjectView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	conditions := repository.NewQueryBuilder()
	if query.Status != "" {
		status, err := metadata.NewProjectStatus(query.Status)
		if err != nil {
			return nil, custom_error.NewValidation("status", err.Error())
		}
		conditions.AddCondition("status", string(status))
	}

	projects, err := s.repo.GetProjects(ctx, query.Search, conditions)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		decorate(&projects[i])
	}

	return projects, nil
}

// GetProject returns nil without error when the project does not exist.
func (s *ProjectService) GetProject(ctx context.Context, identity *security.Identity, id uuid.UUID) (*models.ProjectView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	project, err := s.repo.GetProject(ctx, id)
	if err != nil || project == nil {
		return nil, err
	}
	decorate(project)

	return project, nil
}

// CreateProject makes the acting user the project manager.
func (s *ProjectService) CreateProject(ctx context.Context, identity *security.Identity, req CreateProjectRequest) (*models.ProjectView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	status, err := metadata.NewProjectStatus(req.Status)
	if err != nil {
		return nil, custom_error.NewValidation("status", err.Error())
	}
	priority, err := metadata.NewPriority(req.Priority)
	if err != nil {
		return nil, custom_error.NewValidation("priority", err.Error())
	}

	project := &models.Project{
		Name:       req.Name,
		Status:     status,
		Priority:   priority,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Budget:     req.Budget,
		ManagerID:  identity.UserID,
		ClientName: req.ClientName,
		Tags:       pq.StringArray(req.Tags),
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if project.Tags == nil {
		project.Tags = pq.StringArray{}
	}

	if err := s.repo.PersistProject(ctx, project); err != nil {
		return nil, err
	}

	s.auditLog.Log("create", identity.UserID, map[string]interface{}{
		"name":   project.Name,
		"status": project.Status,
		"msg":    "Project created",
	}, project)

	return s.reload(ctx, project.ID)
}

// UpdateProject applies only the fields present in req.
func (s *ProjectService) UpdateProject(ctx context.Context, identity *security.Identity, id uuid.UUID, req UpdateProjectRequest) (*models.ProjectView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	changes, err := projectChanges(req)
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		exists, err := s.repo.ProjectExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, custom_error.NewNotFound("project", id)
		}
	} else {
		updated, err := s.repo.UpdateProject(ctx, id, changes)
		if err != nil {
			return nil, err
		}
		if !updated {
			return nil, custom_error.NewNotFound("project", id)
		}

		s.auditLog.Log("update", identity.UserID, changes, &models.Project{ID: id})
	}

	return s.reload(ctx, id)
}

// DeleteProject removes the project together with all of its tasks.
func (s *ProjectService) DeleteProject(ctx context.Context, identity *security.Identity, id uuid.UUID) error {
	if err := security.Require(identity); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteProject(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return custom_error.NewNotFound("project", id)
	}

	s.auditLog.Log("delete", identity.UserID, map[string]interface{}{"msg": "Project deleted with its tasks"}, &models.Project{ID: id})

	return nil
}

func (s *ProjectService) reload(ctx context.Context, id uuid.UUID) (*models.ProjectView, error) {
	project, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, custom_error.NewNotFound("project", id)
	}
	decorate(project)

	return project, nil
}

func decorate(project *models.ProjectView) {
	project.Progress = accounting.Progress(project.TaskCount, project.CompletedTasks)
}

func projectChanges(req UpdateProjectRequest) (goqu.Record, error) {
	changes := goqu.Record{}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, custom_error.NewValidation("name", "must not be empty")
		}
		changes["name"] = *req.Name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Status != nil {
		status, err := metadata.NewProjectStatus(*req.Status)
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
	if req.StartDate != nil {
		changes["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		changes["end_date"] = *req.EndDate
	}
	if req.Budget != nil {
		changes["budget"] = *req.Budget
	}
	if req.ClientName != nil {
		changes["client_name"] = *req.ClientName
	}
	if req.Tags != nil {
		changes["tags"] = pq.StringArray(*req.Tags)
	}

	return changes, nil
}
