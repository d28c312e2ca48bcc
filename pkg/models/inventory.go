package models

import (
	"time"

	"tracker/pkg/metadata"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Description string              `json:"description" db:"description"`
	Category    string              `json:"category" db:"category"`
	SKU         string              `json:"sku" db:"sku"`
	Quantity    int                 `json:"quantity" db:"quantity"`
	MinQuantity int                 `json:"min_quantity" db:"min_quantity"`
	UnitPrice   decimal.Decimal     `json:"unit_price" db:"unit_price"`
	Supplier    *string             `json:"supplier,omitempty" db:"supplier"`
	Location    *string             `json:"location,omitempty" db:"location"`
	Status      metadata.ItemStatus `json:"status" db:"status"`
	LastUpdated time.Time           `json:"last_updated" db:"last_updated"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}

func (i *InventoryItem) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   i.ID,
		ResourceType: "inventory_item",
	}
}

type InventoryItemView struct {
	InventoryItem
	AvailableQuantity int `json:"available_quantity" db:"-"`
	AllocatedQuantity int `json:"allocated_quantity" db:"allocated_quantity"`
}

type InventoryItemDetail struct {
	InventoryItemView
	Allocations []AllocationView `json:"allocations"`
}

type Allocation struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ItemID      uuid.UUID  `json:"item_id" db:"item_id"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty" db:"project_id"`
	TaskID      *uuid.UUID `json:"task_id,omitempty" db:"task_id"`
	Quantity    int        `json:"quantity" db:"quantity"`
	AllocatedBy uuid.UUID  `json:"allocated_by" db:"allocated_by"`
	AllocatedAt time.Time  `json:"allocated_at" db:"allocated_at"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty" db:"returned_at"`
	Notes       *string    `json:"notes,omitempty" db:"notes"`
}

// IsOpen reports whether the allocation still holds inventory.
func (a *Allocation) IsOpen() bool {
	return a.ReturnedAt == nil
}

func (a *Allocation) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "inventory_allocation",
	}
}

type AllocationView struct {
	Allocation
	AllocatedByName string  `json:"allocated_by_name" db:"allocated_by_name"`
	ProjectName     *string `json:"project_name" db:"project_name"`
	TaskTitle       *string `json:"task_title" db:"task_title"`
}
