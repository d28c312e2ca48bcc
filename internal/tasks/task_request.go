package tasks

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	ProjectID      uuid.UUID  `json:"project_id" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	Description    *string    `json:"description" binding:"required"`
	Status         string     `json:"status" binding:"required"`
	Priority       string     `json:"priority" binding:"required"`
	AssigneeID     *uuid.UUID `json:"assignee_id"`
	EstimatedHours *float64   `json:"estimated_hours" binding:"omitempty,gte=0"`
	DueDate        *time.Time `json:"due_date"`
	Tags           []string   `json:"tags" binding:"required"`
}

// UpdateTaskRequest is a partial patch. ClearAssignee unassigns the task,
// since a JSON null cannot be told apart from an absent assignee_id.
type UpdateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status"`
	Priority       *string    `json:"priority"`
	AssigneeID     *uuid.UUID `json:"assignee_id"`
	ClearAssignee  bool       `json:"clear_assignee"`
	EstimatedHours *float64   `json:"estimated_hours" binding:"omitempty,gte=0"`
	ActualHours    *float64   `json:"actual_hours" binding:"omitempty,gte=0"`
	DueDate        *time.Time `json:"due_date"`
	Tags           *[]string  `json:"tags"`
}

type ListTasksQuery struct {
	Status string `form:"status"`
}
