// Package accounting keeps inventory availability consistent with open
// allocations. Everything here is pure; callers are responsible for running
// Allocate and Return inside a transaction scoped to the item.
package accounting

import (
	"time"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/metadata"
	"tracker/pkg/models"

	"github.com/google/uuid"
)

// AllocatedQuantity sums the quantities of allocations that were not returned yet.
func AllocatedQuantity(allocations []models.Allocation) int {
	total := 0
	for i := range allocations {
		if allocations[i].IsOpen() {
			total += allocations[i].Quantity
		}
	}
	return total
}

// ComputeAvailable returns the item quantity minus everything still allocated.
// The result is not clamped: a negative value means the stock was reduced
// below what is already handed out.
func ComputeAvailable(item *models.InventoryItem, allocations []models.Allocation) int {
	return item.Quantity - AllocatedQuantity(allocations)
}

// ClassifyStatus derives the stored item status. It never yields
// metadata.StatusDiscontinued.
func ClassifyStatus(quantity, minQuantity int) metadata.ItemStatus {
	switch {
	case quantity == 0:
		return metadata.StatusOutOfStock
	case quantity <= minQuantity:
		return metadata.StatusLowStock
	default:
		return metadata.StatusAvailable
	}
}

// Allocate builds a new open allocation of requested units, failing with a
// *custom_error.CapacityError when the item cannot cover it.
func Allocate(item *models.InventoryItem, requested int, open []models.Allocation, actor uuid.UUID, now time.Time) (*models.Allocation, error) {
	if requested <= 0 {
		return nil, custom_error.NewValidation("quantity", "must be greater than zero")
	}

	available := ComputeAvailable(item, open)
	if requested > available {
		return nil, &custom_error.CapacityError{Requested: requested, Available: available}
	}

	return &models.Allocation{
		ItemID:      item.ID,
		Quantity:    requested,
		AllocatedBy: actor,
		AllocatedAt: now,
	}, nil
}

// Return closes an open allocation. Returning twice is an error so the item is
// credited exactly once.
func Return(allocation *models.Allocation, now time.Time) error {
	if !allocation.IsOpen() {
		return custom_error.ErrAlreadyReturned
	}
	returnedAt := now
	allocation.ReturnedAt = &returnedAt
	return nil
}

// Progress is the rounded percentage of completed tasks, 0 for an empty project.
func Progress(total, completed int) int {
	if total <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}
