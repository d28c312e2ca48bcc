package auditlog

import (
	"context"
	"sync"
	"time"

	"tracker/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const persistTimeout = 5 * time.Second

type Auditable interface {
	CreateLogView() models.AuditLog
}

type Store interface {
	PersistLog(ctx context.Context, auditLog models.AuditLog, data interface{}) (*models.AuditLog, error)
}

// Notifier is told about every entry after it has been stored.
type Notifier interface {
	Notify(entry models.AuditLog)
}

// Recorder is what services depend on to report mutations.
type Recorder interface {
	Log(action string, actor uuid.UUID, data interface{}, item Auditable)
}

type Auditlog struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
	wg       sync.WaitGroup
}

// Log stores the entry in the background, so a slow audit table never
// delays the request that caused it.
func (a *Auditlog) Log(action string, actor uuid.UUID, data interface{}, item Auditable) {
	entry := item.CreateLogView()
	entry.Action = action
	if actor != uuid.Nil {
		entry.UserID = &actor
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.persist(entry, data)
	}()
}

func (a *Auditlog) persist(entry models.AuditLog, data interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	stored, err := a.store.PersistLog(ctx, entry, data)
	if err != nil {
		a.log.Warn("unable to create audit log entry",
			zap.String("resource_type", entry.ResourceType),
			zap.Stringer("resource_id", entry.ResourceID),
			zap.Error(err),
		)
		return
	}

	a.log.Debug("created audit log entry",
		zap.String("action", stored.Action),
		zap.String("resource_type", stored.ResourceType),
		zap.Stringer("resource_id", stored.ResourceID),
	)

	if a.notifier != nil {
		a.notifier.Notify(*stored)
	}
}

// Wait blocks until every pending entry has been handled.
func (a *Auditlog) Wait() {
	a.wg.Wait()
}

func NewAuditLog(store Store, notifier Notifier, log *zap.Logger) *Auditlog {
	return &Auditlog{store: store, notifier: notifier, log: log}
}
