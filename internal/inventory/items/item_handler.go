package items

import (
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	service *ItemService
}

func NewItemHandler(service *ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/inventory", h.GetItems)
	router.POST("/inventory", h.CreateItem)
	router.GET("/inventory/categories", h.GetCategories)
	router.GET("/inventory/:id", h.GetItem)
	router.PATCH("/inventory/:id", h.UpdateItem)
	router.GET("/inventory/:id/label.png", h.GetLabel)
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	items, err := h.service.ListItems(c.Request.Context(), security.IdentityFromContext(c), query)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch inventory", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetItem answers 200 with a null body when the item does not exist.
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), security.IdentityFromContext(c), id)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch inventory item", err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), security.IdentityFromContext(c), req)
	if err != nil {
		custom_error.Abort(c, "Failed to create inventory item", err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), security.IdentityFromContext(c), id, req)
	if err != nil {
		custom_error.Abort(c, "Unable to update inventory item", err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context(), security.IdentityFromContext(c))
	if err != nil {
		custom_error.Abort(c, "Failed to fetch categories", err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ItemHandler) GetLabel(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	png, err := h.service.Label(c.Request.Context(), security.IdentityFromContext(c), id)
	if err != nil {
		custom_error.Abort(c, "Failed to render label", err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory item ID", "details": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}
