package projects

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProjectRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description *string          `json:"description" binding:"required"`
	Status      string           `json:"status" binding:"required"`
	Priority    string           `json:"priority" binding:"required"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	Budget      *decimal.Decimal `json:"budget"`
	ClientName  *string          `json:"client_name"`
	Tags        []string         `json:"tags" binding:"required"`
}

// UpdateProjectRequest is a partial patch: nil fields are left untouched.
type UpdateProjectRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
	Priority    *string          `json:"priority"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	Budget      *decimal.Decimal `json:"budget"`
	ClientName  *string          `json:"client_name"`
	Tags        *[]string        `json:"tags"`
}

type ListProjectsQuery struct {
	Search string `form:"search"`
	Status string `form:"status"`
}
