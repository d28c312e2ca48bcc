package allocations

import (
	"context"
	"fmt"
	"time"

	"tracker/internal/repository"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

// Store persists allocations. InTx runs fn in a transaction; the row locks
// taken through Tx are held until fn returns.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetItemAllocations(ctx context.Context, itemID uuid.UUID) ([]models.AllocationView, error)
	GetProjectAllocations(ctx context.Context, projectID uuid.UUID) ([]models.AllocationView, error)
}

type Tx interface {
	// LockItem returns nil when the item does not exist.
	LockItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	OpenAllocations(ctx context.Context, itemID uuid.UUID) ([]models.Allocation, error)
	InsertAllocation(ctx context.Context, allocation *models.Allocation) error
	// LockAllocation returns nil when the allocation does not exist.
	LockAllocation(ctx context.Context, id uuid.UUID) (*models.Allocation, error)
	MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) error
}

type postgresStore struct {
	repository *repository.Repository
}

func NewStore(r *repository.Repository) Store {
	return &postgresStore{repository: r}
}

func (s *postgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return repository.WithTransaction(ctx, s.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		return fn(&postgresTx{tx: tx})
	})
}

func (s *postgresStore) historyQuery() *goqu.SelectDataset {
	return s.repository.GoquDBWrapper.
		From(goqu.T("inventory_allocations").As("a")).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("a.allocated_by")})).
		LeftJoin(goqu.T("projects").As("p"), goqu.On(goqu.Ex{"p.id": goqu.I("a.project_id")})).
		LeftJoin(goqu.T("tasks").As("t"), goqu.On(goqu.Ex{"t.id": goqu.I("a.task_id")})).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.item_id").As("item_id"),
			goqu.I("a.project_id").As("project_id"),
			goqu.I("a.task_id").As("task_id"),
			goqu.I("a.quantity").As("quantity"),
			goqu.I("a.allocated_by").As("allocated_by"),
			goqu.I("a.allocated_at").As("allocated_at"),
			goqu.I("a.returned_at").As("returned_at"),
			goqu.I("a.notes").As("notes"),
			goqu.COALESCE(repository.DisplayName("u"), "Unknown").As("allocated_by_name"),
			goqu.I("p.name").As("project_name"),
			goqu.I("t.title").As("task_title"),
		).
		Order(goqu.I("a.allocated_at").Desc())
}

// GetItemAllocations lists open and returned allocations of an item.
func (s *postgresStore) GetItemAllocations(ctx context.Context, itemID uuid.UUID) ([]models.AllocationView, error) {
	allocations := []models.AllocationView{}
	err := s.historyQuery().
		Where(goqu.Ex{"a.item_id": itemID}).
		Executor().
		ScanStructsContext(ctx, &allocations)
	if err != nil {
		return nil, fmt.Errorf("failed to list item allocations: %w", err)
	}

	return allocations, nil
}

// GetProjectAllocations lists the open allocations charged to a project.
func (s *postgresStore) GetProjectAllocations(ctx context.Context, projectID uuid.UUID) ([]models.AllocationView, error) {
	allocations := []models.AllocationView{}
	err := s.historyQuery().
		Where(goqu.Ex{"a.project_id": projectID, "a.returned_at": nil}).
		Executor().
		ScanStructsContext(ctx, &allocations)
	if err != nil {
		return nil, fmt.Errorf("failed to list project allocations: %w", err)
	}

	return allocations, nil
}

// postgresTx runs every statement on the transaction handed to InTx.
type postgresTx struct {
	tx repository.Querier
}

var allocationColumns = []interface{}{
	"id", "item_id", "project_id", "task_id", "quantity", "allocated_by", "allocated_at", "returned_at", "notes",
}

func (t *postgresTx) LockItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	found, err := lockItemQuery(t.tx, id).
		Executor().
		ScanStructContext(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory item: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}

func (t *postgresTx) OpenAllocations(ctx context.Context, itemID uuid.UUID) ([]models.Allocation, error) {
	allocations := []models.Allocation{}
	err := openAllocationsQuery(t.tx, itemID).
		Executor().
		ScanStructsContext(ctx, &allocations)
	if err != nil {
		return nil, fmt.Errorf("failed to list open allocations: %w", err)
	}

	return allocations, nil
}

func (t *postgresTx) InsertAllocation(ctx context.Context, allocation *models.Allocation) error {
	var id uuid.UUID
	_, err := t.tx.Insert("inventory_allocations").
		Rows(goqu.Record{
			"item_id":      allocation.ItemID,
			"project_id":   allocation.ProjectID,
			"task_id":      allocation.TaskID,
			"quantity":     allocation.Quantity,
			"allocated_by": allocation.AllocatedBy,
			"allocated_at": allocation.AllocatedAt,
			"notes":        allocation.Notes,
		}).
		Returning("id").
		Executor().
		ScanValContext(ctx, &id)
	if err != nil {
		return custom_error.FromDB("failed to insert allocation", err)
	}
	allocation.ID = id

	return nil
}

func (t *postgresTx) LockAllocation(ctx context.Context, id uuid.UUID) (*models.Allocation, error) {
	var allocation models.Allocation
	found, err := lockAllocationQuery(t.tx, id).
		Executor().
		ScanStructContext(ctx, &allocation)
	if err != nil {
		return nil, fmt.Errorf("failed to lock allocation: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &allocation, nil
}

func (t *postgresTx) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := markReturnedQuery(t.tx, id, at).
		Executor().
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark allocation returned: %w", err)
	}

	return nil
}

func lockItemQuery(db repository.Querier, id uuid.UUID) *goqu.SelectDataset {
	return db.From("inventory_items").
		Select(
			"id", "name", "description", "category", "sku", "quantity", "min_quantity",
			"unit_price", "supplier", "location", "status", "last_updated", "created_at",
		).
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)
}

func openAllocationsQuery(db repository.Querier, itemID uuid.UUID) *goqu.SelectDataset {
	return db.From("inventory_allocations").
		Select(allocationColumns...).
		Where(goqu.Ex{"item_id": itemID, "returned_at": nil})
}

func lockAllocationQuery(db repository.Querier, id uuid.UUID) *goqu.SelectDataset {
	return db.From("inventory_allocations").
		Select(allocationColumns...).
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)
}

// markReturnedQuery only touches an open allocation.
func markReturnedQuery(db repository.Querier, id uuid.UUID, at time.Time) *goqu.UpdateDataset {
	return db.Update("inventory_allocations").
		Set(goqu.Record{"returned_at": at}).
		Where(goqu.Ex{"id": id, "returned_at": nil})
}
