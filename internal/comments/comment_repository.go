package comments

import (
	"context"
	"fmt"

	"tracker/internal/repository"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type CommentRepository interface {
	PersistComment(ctx context.Context, comment *models.Comment) error
	GetComments(ctx context.Context, conditions repository.QueryBuilder) ([]models.CommentView, error)
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
}

type commentRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) CommentRepository {
	return &commentRepositoryImpl{repository: r}
}

var commentAliases = map[string]string{
	"project_id": "c.project_id",
	"task_id":    "c.task_id",
}

func (r *commentRepositoryImpl) PersistComment(ctx context.Context, comment *models.Comment) error {
	var inserted repository.Inserted
	_, err := r.repository.GoquDBWrapper.Insert("comments").
		Rows(goqu.Record{
			"project_id": comment.ProjectID,
			"task_id":    comment.TaskID,
			"user_id":    comment.UserID,
			"content":    comment.Content,
			"parent_id":  comment.ParentID,
		}).
		Returning("id", "created_at").
		Executor().
		ScanStructContext(ctx, &inserted)
	if err != nil {
		return custom_error.FromDB("failed to insert comment", err)
	}
	comment.ID = inserted.ID
	comment.CreatedAt = inserted.CreatedAt

	return nil
}

func (r *commentRepositoryImpl) GetComments(ctx context.Context, conditions repository.QueryBuilder) ([]models.CommentView, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("comments").As("c")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("c.user_id")})).
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.project_id").As("project_id"),
			goqu.I("c.task_id").As("task_id"),
			goqu.I("c.user_id").As("user_id"),
			goqu.I("c.content").As("content"),
			goqu.I("c.parent_id").As("parent_id"),
			goqu.I("c.created_at").As("created_at"),
			goqu.COALESCE(repository.DisplayName("u"), "Unknown").As("author_name"),
		).
		Order(goqu.I("c.created_at").Asc())
	if conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(commentAliases))
	}

	comments := []models.CommentView{}
	if err := query.Executor().ScanStructsContext(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// GetComment returns nil when the comment does not exist.
func (r *commentRepositoryImpl) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	found, err := r.repository.GoquDBWrapper.From("comments").
		Select("id", "project_id", "task_id", "user_id", "content", "parent_id", "created_at").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStructContext(ctx, &comment)
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &comment, nil
}
