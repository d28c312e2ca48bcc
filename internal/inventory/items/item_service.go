package items

import (
	"context"
	"fmt"
	"time"

	"tracker/internal/inventory/accounting"
	"tracker/internal/repository"
	"tracker/pkg/auditlog"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/metadata"
	"tracker/pkg/models"
	"tracker/pkg/security"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const labelSize = 256

// AllocationHistory lists every allocation ever made from an item.
type AllocationHistory interface {
	GetItemAllocations(ctx context.Context, itemID uuid.UUID) ([]models.AllocationView, error)
}

type ItemService struct {
	repo        ItemRepository
	allocations AllocationHistory
	auditLog    auditlog.Recorder
	now         func() time.Time
}

func NewItemService(repo ItemRepository, allocations AllocationHistory, auditLog auditlog.Recorder) *ItemService {
	return &ItemService{
		repo:        repo,
		allocations: allocations,
		auditLog:    auditLog,
		now:         time.Now,
	}
}

func (s *ItemService) ListItems(ctx context.Context, identity *security.Identity, query ListItemsQuery) ([]models.InventoryItemView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	conditions := repository.NewQueryBuilder()
	if query.Category != "" {
		conditions.AddCondition("category", query.Category)
	}
	if query.Status != "" {
		status, err := metadata.NewItemStatus(query.Status)
		if err != nil {
			return nil, custom_error.NewValidation("status", err.Error())
		}
		conditions.AddCondition("status", string(status))
	}

	items, err := s.repo.GetItems(ctx, query.Search, conditions)
	if err != nil {
		return nil, err
	}
	for i := range items {
		withAvailability(&items[i])
	}

	return items, nil
}

// GetItem returns the item with its full allocation history, or nil without
// error when the item does not exist.
func (s *ItemService) GetItem(ctx context.Context, identity *security.Identity, id uuid.UUID) (*models.InventoryItemDetail, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}

	history, err := s.allocations.GetItemAllocations(ctx, id)
	if err != nil {
		return nil, err
	}

	open := make([]models.Allocation, 0, len(history))
	for i := range history {
		open = append(open, history[i].Allocation)
	}
	item.AllocatedQuantity = accounting.AllocatedQuantity(open)
	withAvailability(item)

	return &models.InventoryItemDetail{InventoryItemView: *item, Allocations: history}, nil
}

func (s *ItemService) CreateItem(ctx context.Context, identity *security.Identity, req CreateItemRequest) (*models.InventoryItemView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	item := &models.InventoryItem{
		Name:        req.Name,
		Category:    req.Category,
		SKU:         req.SKU,
		Quantity:    *req.Quantity,
		MinQuantity: *req.MinQuantity,
		UnitPrice:   *req.UnitPrice,
		Supplier:    req.Supplier,
		Location:    req.Location,
		LastUpdated: s.now(),
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.Status = accounting.ClassifyStatus(item.Quantity, item.MinQuantity)

	if err := s.repo.PersistItem(ctx, item); err != nil {
		return nil, err
	}

	s.auditLog.Log("create", identity.UserID, map[string]interface{}{
		"sku":      item.SKU,
		"quantity": item.Quantity,
		"msg":      "Inventory item registered",
	}, item)

	view := &models.InventoryItemView{InventoryItem: *item}
	withAvailability(view)
	return view, nil
}

// UpdateItem merges the patch under a row lock and recomputes the status from
// the effective quantities. Lowering quantity below what is allocated is
// allowed and shows up as negative availability.
func (s *ItemService) UpdateItem(ctx context.Context, identity *security.Identity, id uuid.UUID, req UpdateItemRequest) (*models.InventoryItemView, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	updated, err := s.repo.ModifyItem(ctx, id, func(item *models.InventoryItem) error {
		applyPatch(item, req, changes)
		if err := validateItem(item); err != nil {
			return err
		}
		item.Status = accounting.ClassifyStatus(item.Quantity, item.MinQuantity)
		item.LastUpdated = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, custom_error.NewNotFound("inventory item", id)
	}

	changes["status"] = updated.Status
	s.auditLog.Log("update", identity.UserID, changes, updated)

	view, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, custom_error.NewNotFound("inventory item", id)
	}
	withAvailability(view)

	return view, nil
}

func (s *ItemService) Categories(ctx context.Context, identity *security.Identity) ([]string, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}
	return s.repo.GetCategories(ctx)
}

// Label renders the item SKU as a QR code PNG for shelf labels.
func (s *ItemService) Label(ctx context.Context, identity *security.Identity, id uuid.UUID) ([]byte, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, custom_error.NewNotFound("inventory item", id)
	}

	png, err := qrcode.Encode(item.SKU, qrcode.Medium, labelSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render label for %s: %w", item.SKU, err)
	}

	return png, nil
}

func withAvailability(item *models.InventoryItemView) {
	item.AvailableQuantity = item.Quantity - item.AllocatedQuantity
}

func validateItem(item *models.InventoryItem) error {
	switch {
	case item.Name == "":
		return custom_error.NewValidation("name", "must not be empty")
	case item.SKU == "":
		return custom_error.NewValidation("sku", "must not be empty")
	case item.Quantity < 0:
		return custom_error.NewValidation("quantity", "must not be negative")
	case item.MinQuantity < 0:
		return custom_error.NewValidation("min_quantity", "must not be negative")
	case item.UnitPrice.IsNegative():
		return custom_error.NewValidation("unit_price", "must not be negative")
	}
	return nil
}

func applyPatch(item *models.InventoryItem, req UpdateItemRequest, changes map[string]interface{}) {
	if req.Name != nil {
		item.Name = *req.Name
		changes["name"] = item.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
		changes["description"] = item.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
		changes["category"] = item.Category
	}
	if req.SKU != nil {
		item.SKU = *req.SKU
		changes["sku"] = item.SKU
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
		changes["quantity"] = item.Quantity
	}
	if req.MinQuantity != nil {
		item.MinQuantity = *req.MinQuantity
		changes["min_quantity"] = item.MinQuantity
	}
	if req.UnitPrice != nil {
		item.UnitPrice = *req.UnitPrice
		changes["unit_price"] = item.UnitPrice
	}
	if req.Supplier != nil {
		item.Supplier = req.Supplier
		changes["supplier"] = *req.Supplier
	}
	if req.Location != nil {
		item.Location = req.Location
		changes["location"] = *req.Location
	}
}
