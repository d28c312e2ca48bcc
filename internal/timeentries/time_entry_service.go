package timeentries

import (
	"context"
	"time"

	"tracker/pkg/auditlog"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"
	"tracker/pkg/security"

	"github.com/google/uuid"
)

type TimeEntryService struct {
	repo     TimeEntryRepository
	auditLog auditlog.Recorder
	now      func() time.Time
}

func NewTimeEntryService(repo TimeEntryRepository, auditLog auditlog.Recorder) *TimeEntryService {
	return &TimeEntryService{repo: repo, auditLog: auditLog, now: time.Now}
}

// LogTime records hours against a task on behalf of the caller. The entry
// date defaults to today.
func (s *TimeEntryService) LogTime(ctx context.Context, identity *security.Identity, taskID uuid.UUID, req LogTimeRequest) (*models.TimeEntry, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}
	if req.Hours <= 0 {
		return nil, custom_error.NewValidation("hours", "must be greater than zero")
	}

	entry := &models.TimeEntry{
		TaskID:      taskID,
		UserID:      identity.UserID,
		Hours:       req.Hours,
		Description: req.Description,
		Billable:    req.Billable,
	}
	if req.Date != nil {
		entry.Date = *req.Date
	} else {
		entry.Date = s.now().Truncate(24 * time.Hour)
	}

	found, err := s.repo.LogTime(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, custom_error.NewNotFound("task", taskID)
	}

	s.auditLog.Log("log_time", identity.UserID, map[string]interface{}{
		"hours":    entry.Hours,
		"billable": entry.Billable,
	}, entry)

	return entry, nil
}

func (s *TimeEntryService) ListTimeEntries(ctx context.Context, identity *security.Identity, taskID uuid.UUID) ([]models.TimeEntryView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	exists, err := s.repo.TaskExists(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, custom_error.NewNotFound("task", taskID)
	}

	return s.repo.GetTimeEntries(ctx, taskID)
}
