package items

import (
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description *string          `json:"description" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	SKU         string           `json:"sku" binding:"required"`
	Quantity    *int             `json:"quantity" binding:"required"`
	MinQuantity *int             `json:"min_quantity" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required"`
	Supplier    *string          `json:"supplier"`
	Location    *string          `json:"location"`
}

// UpdateItemRequest is a partial patch. Status is never accepted; it follows
// from the effective quantity and minimum quantity.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	SKU         *string          `json:"sku"`
	Quantity    *int             `json:"quantity"`
	MinQuantity *int             `json:"min_quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Supplier    *string          `json:"supplier"`
	Location    *string          `json:"location"`
}

type ListItemsQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
}
