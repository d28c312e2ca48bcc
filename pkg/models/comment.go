package models

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty" db:"project_id"`
	TaskID    *uuid.UUID `json:"task_id,omitempty" db:"task_id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Content   string     `json:"content" db:"content"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

func (c *Comment) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "comment",
	}
}

type CommentView struct {
	Comment
	AuthorName string `json:"author_name" db:"author_name"`
}
