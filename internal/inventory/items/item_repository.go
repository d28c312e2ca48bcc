package items

import (
	"context"
	"fmt"

	"tracker/internal/repository"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

type ItemRepository interface {
	GetItems(ctx context.Context, search string, conditions repository.QueryBuilder) ([]models.InventoryItemView, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItemView, error)
	PersistItem(ctx context.Context, item *models.InventoryItem) error
	ModifyItem(ctx context.Context, id uuid.UUID, modify func(item *models.InventoryItem) error) (*models.InventoryItem, error)
	GetCategories(ctx context.Context) ([]string, error)
}

type itemRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) ItemRepository {
	return &itemRepositoryImpl{repository: r}
}

var itemAliases = map[string]string{
	"category": "i.category",
	"status":   "i.status",
}

var itemColumns = []interface{}{
	"id", "name", "description", "category", "sku", "quantity", "min_quantity",
	"unit_price", "supplier", "location", "status", "last_updated", "created_at",
}

func (r *itemRepositoryImpl) decoratedQuery() *goqu.SelectDataset {
	return decoratedItemQuery(r.repository.GoquDBWrapper)
}

// decoratedItemQuery joins the sum of open allocations per item. Returned
// allocations never count against availability.
func decoratedItemQuery(db repository.Querier) *goqu.SelectDataset {
	allocated := db.
		From("inventory_allocations").
		Select(
			goqu.C("item_id"),
			goqu.SUM("quantity").As("allocated"),
		).
		Where(goqu.Ex{"returned_at": nil}).
		GroupBy("item_id")

	return db.
		From(goqu.T("inventory_items").As("i")).
		LeftJoin(allocated.As("a"), goqu.On(goqu.Ex{"a.item_id": goqu.I("i.id")})).
		Select(
			goqu.I("i.id").As("id"),
			goqu.I("i.name").As("name"),
			goqu.I("i.description").As("description"),
			goqu.I("i.category").As("category"),
			goqu.I("i.sku").As("sku"),
			goqu.I("i.quantity").As("quantity"),
			goqu.I("i.min_quantity").As("min_quantity"),
			goqu.I("i.unit_price").As("unit_price"),
			goqu.I("i.supplier").As("supplier"),
			goqu.I("i.location").As("location"),
			goqu.I("i.status").As("status"),
			goqu.I("i.last_updated").As("last_updated"),
			goqu.I("i.created_at").As("created_at"),
			goqu.COALESCE(goqu.I("a.allocated"), 0).As("allocated_quantity"),
		)
}

// listItemsQuery filters by exact conditions and searches the name only.
func listItemsQuery(db repository.Querier, search string, conditions repository.QueryBuilder) *goqu.SelectDataset {
	query := decoratedItemQuery(db).Order(goqu.I("i.name").Asc())

	if conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(itemAliases))
	}
	if search != "" {
		query = query.Where(goqu.I("i.name").ILike(repository.ContainsPattern(search)))
	}

	return query
}

func (r *itemRepositoryImpl) GetItems(ctx context.Context, search string, conditions repository.QueryBuilder) ([]models.InventoryItemView, error) {
	query := listItemsQuery(r.repository.GoquDBWrapper, search, conditions)

	items := []models.InventoryItemView{}
	if err := query.Executor().ScanStructsContext(ctx, &items); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return items, nil
}

// GetItem returns nil when the item does not exist.
func (r *itemRepositoryImpl) GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItemView, error) {
	var item models.InventoryItemView
	found, err := r.decoratedQuery().
		Where(goqu.Ex{"i.id": id}).
		Executor().
		ScanStructContext(ctx, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}

func (r *itemRepositoryImpl) PersistItem(ctx context.Context, item *models.InventoryItem) error {
	query := r.repository.GoquDBWrapper.Insert("inventory_items").
		Rows(itemRecord(item)).
		Returning("id", "created_at")

	var inserted repository.Inserted
	if _, err := query.Executor().ScanStructContext(ctx, &inserted); err != nil {
		return custom_error.FromDB("failed to insert inventory item", err)
	}
	item.ID = inserted.ID
	item.CreatedAt = inserted.CreatedAt

	return nil
}

// ModifyItem locks the item row, lets modify change it and writes it back,
// all in one transaction. It returns nil when the item does not exist.
func (r *itemRepositoryImpl) ModifyItem(ctx context.Context, id uuid.UUID, modify func(item *models.InventoryItem) error) (*models.InventoryItem, error) {
	var modified *models.InventoryItem

	err := repository.WithTransaction(ctx, r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var item models.InventoryItem
		found, err := lockItemQuery(tx, id).
			Executor().
			ScanStructContext(ctx, &item)
		if err != nil {
			return fmt.Errorf("failed to lock inventory item: %w", err)
		}
		if !found {
			return nil
		}

		if err := modify(&item); err != nil {
			return err
		}

		_, err = tx.Update("inventory_items").
			Set(itemRecord(&item)).
			Where(goqu.Ex{"id": id}).
			Executor().
			ExecContext(ctx)
		if err != nil {
			return custom_error.FromDB("failed to update inventory item", err)
		}

		modified = &item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return modified, nil
}

func (r *itemRepositoryImpl) GetCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.repository.GoquDBWrapper.From("inventory_items").
		Select("category").
		Distinct().
		Order(goqu.I("category").Asc()).
		Executor().
		ScanValsContext(ctx, &categories)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

func lockItemQuery(db repository.Querier, id uuid.UUID) *goqu.SelectDataset {
	return db.From("inventory_items").
		Select(itemColumns...).
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait)
}

func itemRecord(item *models.InventoryItem) goqu.Record {
	return goqu.Record{
		"name":         item.Name,
		"description":  item.Description,
		"category":     item.Category,
		"sku":          item.SKU,
		"quantity":     item.Quantity,
		"min_quantity": item.MinQuantity,
		"unit_price":   item.UnitPrice,
		"supplier":     item.Supplier,
		"location":     item.Location,
		"status":       string(item.Status),
		"last_updated": item.LastUpdated,
	}
}
