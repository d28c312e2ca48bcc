package timeentries

import (
	"context"
	"fmt"

	"tracker/internal/repository"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type TimeEntryRepository interface {
	// LogTime stores the entry and adds its hours to the task. It reports
	// false, writing nothing, when the task does not exist.
	LogTime(ctx context.Context, entry *models.TimeEntry) (bool, error)
	GetTimeEntries(ctx context.Context, taskID uuid.UUID) ([]models.TimeEntryView, error)
	TaskExists(ctx context.Context, taskID uuid.UUID) (bool, error)
}

type timeEntryRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) TimeEntryRepository {
	return &timeEntryRepositoryImpl{repository: r}
}

func (r *timeEntryRepositoryImpl) LogTime(ctx context.Context, entry *models.TimeEntry) (bool, error) {
	found := false
	err := repository.WithTransaction(ctx, r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		result, err := tx.Update("tasks").
			Set(goqu.Record{"actual_hours": goqu.L("actual_hours + ?", entry.Hours)}).
			Where(goqu.Ex{"id": entry.TaskID}).
			Executor().
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to add task hours: %w", err)
		}
		if found, err = repository.Affected(result); err != nil || !found {
			return err
		}

		var inserted repository.Inserted
		_, err = tx.Insert("time_entries").
			Rows(goqu.Record{
				"task_id":     entry.TaskID,
				"user_id":     entry.UserID,
				"hours":       entry.Hours,
				"description": entry.Description,
				"date":        entry.Date,
				"billable":    entry.Billable,
			}).
			Returning("id", "created_at").
			Executor().
			ScanStructContext(ctx, &inserted)
		if err != nil {
			return custom_error.FromDB("failed to insert time entry", err)
		}
		entry.ID = inserted.ID
		entry.CreatedAt = inserted.CreatedAt

		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

func (r *timeEntryRepositoryImpl) GetTimeEntries(ctx context.Context, taskID uuid.UUID) ([]models.TimeEntryView, error) {
	entries := []models.TimeEntryView{}
	err := r.repository.GoquDBWrapper.
		From(goqu.T("time_entries").As("e")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("e.user_id")})).
		Select(
			goqu.I("e.id").As("id"),
			goqu.I("e.task_id").As("task_id"),
			goqu.I("e.user_id").As("user_id"),
			goqu.I("e.hours").As("hours"),
			goqu.I("e.description").As("description"),
			goqu.I("e.date").As("date"),
			goqu.I("e.billable").As("billable"),
			goqu.I("e.created_at").As("created_at"),
			goqu.COALESCE(repository.DisplayName("u"), "Unknown").As("user_name"),
		).
		Where(goqu.Ex{"e.task_id": taskID}).
		Order(goqu.I("e.date").Desc(), goqu.I("e.created_at").Desc()).
		Executor().
		ScanStructsContext(ctx, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	return entries, nil
}

func (r *timeEntryRepositoryImpl) TaskExists(ctx context.Context, taskID uuid.UUID) (bool, error) {
	var id uuid.UUID
	found, err := r.repository.GoquDBWrapper.From("tasks").
		Select("id").
		Where(goqu.Ex{"id": taskID}).
		Executor().
		ScanValContext(ctx, &id)
	if err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}

	return found, nil
}
