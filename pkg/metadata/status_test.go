package metadata

import (
	"testing"
)

func TestNewProjectStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ProjectStatus
		wantErr bool
	}{
		{"planning", "planning", ProjectPlanning, false},
		{"uppercase active", "ACTIVE", ProjectActive, false},
		{"on hold with space", " on hold ", ProjectOnHold, false},
		{"completed", "completed", ProjectCompleted, false},
		{"unknown", "archived", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewProjectStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewProjectStatus() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewProjectStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTaskStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{"todo", "todo", TaskTodo, false},
		{"in progress", "in progress", TaskInProgress, false},
		{"review", "Review", TaskReview, false},
		{"done is not a status", "done", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTaskStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTaskStatus() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("NewTaskStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriorityIsValid(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		expected bool
	}{
		{"low", PriorityLow, true},
		{"urgent", PriorityUrgent, true},
		{"critical", Priority("critical"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.priority.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewItemStatus(t *testing.T) {
	if _, err := NewItemStatus("low-stock"); err != nil {
		t.Errorf("NewItemStatus(low-stock) unexpected error: %v", err)
	}
	if got, err := NewItemStatus("Out of stock"); err != nil || got != StatusOutOfStock {
		t.Errorf("NewItemStatus(Out of stock) = %v, %v", got, err)
	}
	if _, err := NewItemStatus("sold"); err == nil {
		t.Errorf("NewItemStatus(sold) expected error")
	}
}
