package items

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tracker/internal/repository"
	"tracker/internal/testutil"
	custom_error "tracker/pkg/errors"
	"tracker/pkg/metadata"
	"tracker/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetItems(ctx context.Context, search string, conditions repository.QueryBuilder) ([]models.InventoryItemView, error) {
	args := m.Called(search, conditions.BuildConditions(nil))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItemView), args.Error(1)
}

func (m *MockItemRepository) GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItemView, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItemView), args.Error(1)
}

func (m *MockItemRepository) PersistItem(ctx context.Context, item *models.InventoryItem) error {
	args := m.Called(item)
	return args.Error(0)
}

// ModifyItem hands a copy of the stored item to modify, like the real row lock would.
func (m *MockItemRepository) ModifyItem(ctx context.Context, id uuid.UUID, modify func(item *models.InventoryItem) error) (*models.InventoryItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	item := *args.Get(0).(*models.InventoryItem)
	if err := modify(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *MockItemRepository) GetCategories(ctx context.Context) ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

type MockAllocationHistory struct {
	mock.Mock
}

func (m *MockAllocationHistory) GetItemAllocations(ctx context.Context, itemID uuid.UUID) ([]models.AllocationView, error) {
	args := m.Called(itemID)
	return args.Get(0).([]models.AllocationView), args.Error(1)
}

func intPtr(i int) *int { return &i }
func strPtr(s string) *string { return &s }

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newService(repo *MockItemRepository, history *MockAllocationHistory) (*ItemService, *testutil.AuditRecorder) {
	audit := &testutil.AuditRecorder{}
	service := NewItemService(repo, history, audit)
	service.now = func() time.Time { return fixedNow }
	return service, audit
}

func TestCreateItemClassifiesStatus(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		minQuantity int
		expected    metadata.ItemStatus
	}{
		{"empty", 0, 5, metadata.StatusOutOfStock},
		{"at minimum", 5, 5, metadata.StatusLowStock},
		{"plenty", 50, 5, metadata.StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockItemRepository)
			service, audit := newService(repo, new(MockAllocationHistory))
			repo.On("PersistItem", mock.MatchedBy(func(item *models.InventoryItem) bool {
				return item.Status == tt.expected && item.LastUpdated.Equal(fixedNow)
			})).Return(nil)

			price := decimal.RequireFromString("12.99")
			item, err := service.CreateItem(context.Background(), testutil.NewIdentity("anna"), CreateItemRequest{
				Name:        "XLR cable",
				Description: strPtr("10m"),
				Category:    "cables",
				SKU:         "XLR-10",
				Quantity:    intPtr(tt.quantity),
				MinQuantity: intPtr(tt.minQuantity),
				UnitPrice:   &price,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, item.Status)
			assert.Equal(t, tt.quantity, item.AvailableQuantity)
			assert.Equal(t, []string{"create"}, audit.Actions())
			repo.AssertExpectations(t)
		})
	}
}

func TestCreateItemRejectsNegativeQuantity(t *testing.T) {
	service, _ := newService(new(MockItemRepository), new(MockAllocationHistory))
	price := decimal.Zero

	_, err := service.CreateItem(context.Background(), testutil.NewIdentity("anna"), CreateItemRequest{
		Name: "x", Description: strPtr(""), Category: "c", SKU: "s",
		Quantity: intPtr(-1), MinQuantity: intPtr(0), UnitPrice: &price,
	})

	assert.Equal(t, http.StatusBadRequest, custom_error.StatusCode(err))
}

func TestUpdateItemRecomputesStatusFromEffectiveValues(t *testing.T) {
	repo := new(MockItemRepository)
	service, audit := newService(repo, new(MockAllocationHistory))
	id := uuid.New()
	stored := &models.InventoryItem{
		ID: id, Name: "XLR cable", SKU: "XLR-10", Quantity: 20, MinQuantity: 5,
		Status: metadata.StatusAvailable, LastUpdated: fixedNow.Add(-time.Hour),
	}

	repo.On("ModifyItem", id).Return(stored, nil)
	repo.On("GetItem", id).Return(&models.InventoryItemView{
		InventoryItem:     models.InventoryItem{ID: id, Quantity: 4, MinQuantity: 5, Status: metadata.StatusLowStock},
		AllocatedQuantity: 6,
	}, nil)

	item, err := service.UpdateItem(context.Background(), testutil.NewIdentity("anna"), id, UpdateItemRequest{Quantity: intPtr(4)})

	require.NoError(t, err)
	assert.Equal(t, metadata.StatusLowStock, item.Status)
	assert.Equal(t, -2, item.AvailableQuantity, "availability is not clamped")
	require.Len(t, audit.Entries, 1)
	assert.Equal(t, metadata.StatusLowStock, audit.Entries[0].Data.(map[string]interface{})["status"])
}

func TestUpdateItemMissing(t *testing.T) {
	repo := new(MockItemRepository)
	service, audit := newService(repo, new(MockAllocationHistory))
	id := uuid.New()
	repo.On("ModifyItem", id).Return(nil, nil)

	_, err := service.UpdateItem(context.Background(), testutil.NewIdentity("anna"), id, UpdateItemRequest{Name: strPtr("x")})

	assert.Equal(t, http.StatusNotFound, custom_error.StatusCode(err))
	assert.Empty(t, audit.Entries)
}

func TestGetItemIncludesHistory(t *testing.T) {
	repo := new(MockItemRepository)
	history := new(MockAllocationHistory)
	service, _ := newService(repo, history)
	id := uuid.New()
	returned := fixedNow

	repo.On("GetItem", id).Return(&models.InventoryItemView{InventoryItem: models.InventoryItem{ID: id, Quantity: 10}}, nil)
	history.On("GetItemAllocations", id).Return([]models.AllocationView{
		{Allocation: models.Allocation{Quantity: 3}, AllocatedByName: "Anna"},
		{Allocation: models.Allocation{Quantity: 4, ReturnedAt: &returned}, AllocatedByName: "Bob"},
	}, nil)

	item, err := service.GetItem(context.Background(), testutil.NewIdentity("anna"), id)

	require.NoError(t, err)
	assert.Equal(t, 3, item.AllocatedQuantity)
	assert.Equal(t, 7, item.AvailableQuantity)
	assert.Len(t, item.Allocations, 2)
}

func TestGetItemMissing(t *testing.T) {
	repo := new(MockItemRepository)
	history := new(MockAllocationHistory)
	service, _ := newService(repo, history)
	id := uuid.New()
	repo.On("GetItem", id).Return(nil, nil)

	item, err := service.GetItem(context.Background(), testutil.NewIdentity("anna"), id)

	assert.NoError(t, err)
	assert.Nil(t, item)
	history.AssertNotCalled(t, "GetItemAllocations", mock.Anything)
}

func TestListItemsFilters(t *testing.T) {
	repo := new(MockItemRepository)
	service, _ := newService(repo, new(MockAllocationHistory))

	repo.On("GetItems", "xlr", goqu.Ex{"category": "cables", "status": "low-stock"}).Return([]models.InventoryItemView{
		{InventoryItem: models.InventoryItem{Quantity: 5}, AllocatedQuantity: 2},
	}, nil)

	items, err := service.ListItems(context.Background(), testutil.NewIdentity("anna"), ListItemsQuery{Search: "xlr", Category: "cables", Status: "Low Stock"})

	require.NoError(t, err)
	assert.Equal(t, 3, items[0].AvailableQuantity)
}

func TestItemHandler(t *testing.T) {
	identity := testutil.NewIdentity("anna")
	id := uuid.New()

	t.Run("categories route is not an id", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("GetCategories").Return([]string{"audio", "cables"}, nil)
		router, group := testutil.Router(identity)
		service, _ := newService(repo, new(MockAllocationHistory))
		NewItemHandler(service).RegisterRoutes(group)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/categories", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `["audio","cables"]`, w.Body.String())
	})

	t.Run("label renders png", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("GetItem", id).Return(&models.InventoryItemView{InventoryItem: models.InventoryItem{ID: id, SKU: "XLR-10"}}, nil)
		router, group := testutil.Router(identity)
		service, _ := newService(repo, new(MockAllocationHistory))
		NewItemHandler(service).RegisterRoutes(group)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/"+id.String()+"/label.png", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("duplicate sku", func(t *testing.T) {
		repo := new(MockItemRepository)
		repo.On("PersistItem", mock.Anything).Return(custom_error.WrapDBError("inventory_items_sku_key", "23505"))
		router, group := testutil.Router(identity)
		service, _ := newService(repo, new(MockAllocationHistory))
		NewItemHandler(service).RegisterRoutes(group)

		body, _ := json.Marshal(map[string]interface{}{
			"name": "XLR", "description": "", "category": "cables", "sku": "XLR-10",
			"quantity": 1, "min_quantity": 0, "unit_price": 3,
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewReader(body)))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		router, group := testutil.Router(nil)
		service, _ := newService(new(MockItemRepository), new(MockAllocationHistory))
		NewItemHandler(service).RegisterRoutes(group)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
