package models

import (
	"time"

	"github.com/google/uuid"
)

type TimeEntry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TaskID      uuid.UUID `json:"task_id" db:"task_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Hours       float64   `json:"hours" db:"hours"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Billable    bool      `json:"billable" db:"billable"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (e *TimeEntry) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   e.TaskID,
		ResourceType: "task",
	}
}

type TimeEntryView struct {
	TimeEntry
	UserName string `json:"user_name" db:"user_name"`
}
