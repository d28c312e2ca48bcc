package models

import (
	"time"

	"tracker/pkg/metadata"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Project struct {
	ID          uuid.UUID              `json:"id" db:"id"`
	Name        string                 `json:"name" db:"name"`
	Description string                 `json:"description" db:"description"`
	Status      metadata.ProjectStatus `json:"status" db:"status"`
	Priority    metadata.Priority      `json:"priority" db:"priority"`
	StartDate   *time.Time             `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time             `json:"end_date,omitempty" db:"end_date"`
	Budget      *decimal.Decimal       `json:"budget,omitempty" db:"budget"`
	ManagerID   uuid.UUID              `json:"manager_id" db:"manager_id"`
	ClientName  *string                `json:"client_name,omitempty" db:"client_name"`
	Tags        pq.StringArray         `json:"tags" db:"tags"`
	CreatedAt   time.Time              `json:"created_at" db:"created_at"`
}

func (p *Project) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   p.ID,
		ResourceType: "project",
	}
}

// ProjectView is a project decorated with its manager name and task progress.
type ProjectView struct {
	Project
	ManagerName    string `json:"manager_name" db:"manager_name"`
	TaskCount      int    `json:"task_count" db:"task_count"`
	CompletedTasks int    `json:"completed_tasks" db:"completed_tasks"`
	Progress       int    `json:"progress" db:"-"`
}
