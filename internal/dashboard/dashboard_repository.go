package dashboard

import (
	"context"
	"fmt"

	"tracker/internal/repository"
	"tracker/pkg/metadata"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type Stats struct {
	TotalProjects  int64 `json:"total_projects"`
	ActiveProjects int64 `json:"active_projects"`
	MyTasks        int64 `json:"my_tasks"`
	UrgentTasks    int64 `json:"urgent_tasks"`
	LowStockItems  int64 `json:"low_stock_items"`
}

type DashboardRepository interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error)
}

type dashboardRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) DashboardRepository {
	return &dashboardRepositoryImpl{repository: r}
}

func (r *dashboardRepositoryImpl) GetStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	db := r.repository.GoquDBWrapper
	stats := &Stats{}

	counters := []struct {
		target *int64
		query  *goqu.SelectDataset
	}{
		{&stats.TotalProjects, db.From("projects")},
		{&stats.ActiveProjects, db.From("projects").Where(goqu.Ex{"status": string(metadata.ProjectActive)})},
		{&stats.MyTasks, db.From("tasks").Where(goqu.Ex{"assignee_id": userID})},
		{&stats.UrgentTasks, db.From("tasks").Where(goqu.Ex{
			"assignee_id": userID,
			"priority":    string(metadata.PriorityUrgent),
			"status":      goqu.Op{"neq": string(metadata.TaskCompleted)},
		})},
		{&stats.LowStockItems, db.From("inventory_items").Where(goqu.Ex{
			"status": []string{string(metadata.StatusLowStock), string(metadata.StatusOutOfStock)},
		})},
	}

	for _, counter := range counters {
		count, err := counter.query.CountContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
		*counter.target = count
	}

	return stats, nil
}
