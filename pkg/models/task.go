package models

import (
	"time"

	"tracker/pkg/metadata"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Task struct {
	ID             uuid.UUID           `json:"id" db:"id"`
	ProjectID      uuid.UUID           `json:"project_id" db:"project_id"`
	Title          string              `json:"title" db:"title"`
	Description    string              `json:"description" db:"description"`
	Status         metadata.TaskStatus `json:"status" db:"status"`
	Priority       metadata.Priority   `json:"priority" db:"priority"`
	AssigneeID     *uuid.UUID          `json:"assignee_id,omitempty" db:"assignee_id"`
	EstimatedHours *float64            `json:"estimated_hours,omitempty" db:"estimated_hours"`
	ActualHours    float64             `json:"actual_hours" db:"actual_hours"`
	DueDate        *time.Time          `json:"due_date,omitempty" db:"due_date"`
	// Dependencies holds task ids. Nothing populates it yet.
	Dependencies pq.StringArray `json:"dependencies" db:"dependencies"`
	Tags         pq.StringArray `json:"tags" db:"tags"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

func (t *Task) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   t.ID,
		ResourceType: "task",
	}
}

type TaskView struct {
	Task
	AssigneeName *string `json:"assignee_name" db:"assignee_name"`
	ProjectName  *string `json:"project_name,omitempty" db:"project_name"`
}
