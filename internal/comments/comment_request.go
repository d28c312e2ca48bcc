package comments

import "github.com/google/uuid"

// CreateCommentRequest attaches a comment to exactly one project or task.
type CreateCommentRequest struct {
	ProjectID *uuid.UUID `json:"project_id"`
	TaskID    *uuid.UUID `json:"task_id"`
	ParentID  *uuid.UUID `json:"parent_id"`
	Content   string     `json:"content" binding:"required"`
}

type ListCommentsQuery struct {
	ProjectID string `form:"project_id"`
	TaskID    string `form:"task_id"`
}
