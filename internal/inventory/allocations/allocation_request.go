package allocations

import "github.com/google/uuid"

type AllocateRequest struct {
	Quantity  int        `json:"quantity" binding:"required"`
	ProjectID *uuid.UUID `json:"project_id"`
	TaskID    *uuid.UUID `json:"task_id"`
	Notes     *string    `json:"notes"`
}
