package comments

import (
	"context"

	"tracker/internal/repository"
	"tracker/pkg/auditlog"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"
	"tracker/pkg/security"

	"github.com/google/uuid"
)

type CommentService struct {
	repo     CommentRepository
	auditLog auditlog.Recorder
}

func NewCommentService(repo CommentRepository, auditLog auditlog.Recorder) *CommentService {
	return &CommentService{repo: repo, auditLog: auditLog}
}

// CreateComment posts as the caller. A reply must stay on its parent's
// project or task.
func (s *CommentService) CreateComment(ctx context.Context, identity *security.Identity, req CreateCommentRequest) (*models.Comment, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}
	if (req.ProjectID == nil) == (req.TaskID == nil) {
		return nil, custom_error.NewValidation("project_id", "exactly one of project_id and task_id is required")
	}

	if req.ParentID != nil {
		parent, err := s.repo.GetComment(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, custom_error.NewNotFound("comment", *req.ParentID)
		}
		if !sameTarget(parent.ProjectID, req.ProjectID) || !sameTarget(parent.TaskID, req.TaskID) {
			return nil, custom_error.NewValidation("parent_id", "reply must belong to the same thread")
		}
	}

	comment := &models.Comment{
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		UserID:    identity.UserID,
		Content:   req.Content,
		ParentID:  req.ParentID,
	}
	if err := s.repo.PersistComment(ctx, comment); err != nil {
		return nil, err
	}

	s.auditLog.Log("create", identity.UserID, map[string]interface{}{
		"project_id": comment.ProjectID,
		"task_id":    comment.TaskID,
		"parent_id":  comment.ParentID,
	}, comment)

	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, identity *security.Identity, query ListCommentsQuery) ([]models.CommentView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}
	if (query.ProjectID == "") == (query.TaskID == "") {
		return nil, custom_error.NewValidation("project_id", "exactly one of project_id and task_id is required")
	}

	conditions := repository.NewQueryBuilder()
	if query.ProjectID != "" {
		id, err := uuid.Parse(query.ProjectID)
		if err != nil {
			return nil, custom_error.NewValidation("project_id", "must be a valid id")
		}
		conditions.AddCondition("project_id", id)
	} else {
		id, err := uuid.Parse(query.TaskID)
		if err != nil {
			return nil, custom_error.NewValidation("task_id", "must be a valid id")
		}
		conditions.AddCondition("task_id", id)
	}

	return s.repo.GetComments(ctx, conditions)
}

func sameTarget(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
