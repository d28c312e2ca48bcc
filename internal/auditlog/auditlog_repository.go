package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tracker/internal/repository"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func (r *AuditLogRepository) PersistLog(ctx context.Context, auditLog models.AuditLog, auditLogData interface{}) (*models.AuditLog, error) {
	dataJSON, err := json.Marshal(auditLogData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	query := r.repository.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"resource_id":   auditLog.ResourceID,
			"resource_type": auditLog.ResourceType,
			"action":        auditLog.Action,
			"data":          string(dataJSON),
			"user_id":       auditLog.UserID,
		}).
		Returning("id", "created_at")

	var inserted struct {
		ID        int       `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if _, err := query.Executor().ScanStructContext(ctx, &inserted); err != nil {
		return nil, fmt.Errorf("failed to insert audit log: %w", err)
	}

	auditLog.ID = inserted.ID
	auditLog.CreatedAt = inserted.CreatedAt
	auditLog.DataRaw = string(dataJSON)
	auditLog.LoadFromDB()

	return &auditLog, nil
}

func (r *AuditLogRepository) GetResourceLog(ctx context.Context, id uuid.UUID, resourceType string) ([]models.AuditLog, error) {
	query := r.repository.GoquDBWrapper.
		From(goqu.T("audit_logs").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.resource_id").As("resource_id"),
			goqu.I("a.resource_type").As("resource_type"),
			goqu.I("a.action").As("action"),
			goqu.I("a.data").As("data"),
			goqu.I("a.created_at").As("created_at"),
			goqu.I("a.user_id").As("user_id"),
		).
		Where(goqu.Ex{
			"a.resource_id":   id,
			"a.resource_type": resourceType,
		}).
		Order(goqu.I("a.created_at").Desc(), goqu.I("a.id").Desc())

	auditLogs := []models.AuditLog{}
	if err := query.Executor().ScanStructsContext(ctx, &auditLogs); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	for i := range auditLogs {
		auditLogs[i].LoadFromDB()
	}

	return auditLogs, nil
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}
