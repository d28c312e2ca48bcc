package allocations

import (
	"context"
	"time"

	"tracker/internal/inventory/accounting"
	"tracker/pkg/auditlog"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"
	"tracker/pkg/security"

	"github.com/google/uuid"
)

type AllocationService struct {
	store    Store
	auditLog auditlog.Recorder
	now      func() time.Time
}

func NewAllocationService(store Store, auditLog auditlog.Recorder) *AllocationService {
	return &AllocationService{store: store, auditLog: auditLog, now: time.Now}
}

// Allocate reserves quantity units of an item. The capacity check and the
// insert happen while the item row is locked, so concurrent allocations of
// the same item are serialized and can never overdraw it.
func (s *AllocationService) Allocate(ctx context.Context, identity *security.Identity, itemID uuid.UUID, req AllocateRequest) (*models.Allocation, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	var allocation *models.Allocation
	err := s.store.InTx(ctx, func(tx Tx) error {
		item, err := tx.LockItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return custom_error.NewNotFound("inventory item", itemID)
		}

		open, err := tx.OpenAllocations(ctx, itemID)
		if err != nil {
			return err
		}

		allocation, err = accounting.Allocate(item, req.Quantity, open, identity.UserID, s.now())
		if err != nil {
			return err
		}
		allocation.ProjectID = req.ProjectID
		allocation.TaskID = req.TaskID
		allocation.Notes = req.Notes

		return tx.InsertAllocation(ctx, allocation)
	})
	if err != nil {
		return nil, err
	}

	s.auditLog.Log("allocate", identity.UserID, map[string]interface{}{
		"item_id":    allocation.ItemID,
		"quantity":   allocation.Quantity,
		"project_id": allocation.ProjectID,
		"task_id":    allocation.TaskID,
	}, allocation)

	return allocation, nil
}

// ReturnAllocation closes an open allocation. A second return of the same
// allocation fails with custom_error.ErrAlreadyReturned.
func (s *AllocationService) ReturnAllocation(ctx context.Context, identity *security.Identity, id uuid.UUID) (*models.Allocation, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	var allocation *models.Allocation
	err := s.store.InTx(ctx, func(tx Tx) error {
		var err error
		allocation, err = tx.LockAllocation(ctx, id)
		if err != nil {
			return err
		}
		if allocation == nil {
			return custom_error.NewNotFound("allocation", id)
		}

		if err := accounting.Return(allocation, s.now()); err != nil {
			return err
		}

		return tx.MarkReturned(ctx, id, *allocation.ReturnedAt)
	})
	if err != nil {
		return nil, err
	}

	s.auditLog.Log("return", identity.UserID, map[string]interface{}{
		"item_id":  allocation.ItemID,
		"quantity": allocation.Quantity,
	}, allocation)

	return allocation, nil
}

// ProjectAllocations lists what a project currently holds.
func (s *AllocationService) ProjectAllocations(ctx context.Context, identity *security.Identity, projectID uuid.UUID) ([]models.AllocationView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}
	return s.store.GetProjectAllocations(ctx, projectID)
}
