package metadata

import (
	"fmt"
	"strings"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
)

func NewProjectStatus(value string) (ProjectStatus, error) {
	status := ProjectStatus(normalize(value))
	if !status.IsValid() {
		return "", fmt.Errorf(
			"invalid project status %q, valid values are: %s, %s, %s, %s",
			value, ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted,
		)
	}
	return status, nil
}

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

func NewTaskStatus(value string) (TaskStatus, error) {
	status := TaskStatus(normalize(value))
	if !status.IsValid() {
		return "", fmt.Errorf(
			"invalid task status %q, valid values are: %s, %s, %s, %s",
			value, TaskTodo, TaskInProgress, TaskReview, TaskCompleted,
		)
	}
	return status, nil
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskReview, TaskCompleted:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func NewPriority(value string) (Priority, error) {
	priority := Priority(normalize(value))
	if !priority.IsValid() {
		return "", fmt.Errorf(
			"invalid priority %q, valid values are: %s, %s, %s, %s",
			value, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
		)
	}
	return priority, nil
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// ItemStatus is stored on inventory items but always derived from quantity
// and minimum quantity. StatusDiscontinued has no producer.
type ItemStatus string

const (
	StatusAvailable    ItemStatus = "available"
	StatusLowStock     ItemStatus = "low-stock"
	StatusOutOfStock   ItemStatus = "out-of-stock"
	StatusDiscontinued ItemStatus = "discontinued"
)

func NewItemStatus(value string) (ItemStatus, error) {
	status := ItemStatus(normalize(value))
	if !status.IsValid() {
		return "", fmt.Errorf(
			"invalid item status %q, valid values are: %s, %s, %s, %s",
			value, StatusAvailable, StatusLowStock, StatusOutOfStock, StatusDiscontinued,
		)
	}
	return status, nil
}

func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusLowStock, StatusOutOfStock, StatusDiscontinued:
		return true
	default:
		return false
	}
}

func normalize(value string) string {
	return strings.Replace(strings.ToLower(strings.TrimSpace(value)), " ", "-", -1)
}
