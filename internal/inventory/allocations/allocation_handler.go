package allocations

import (
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AllocationHandler struct {
	service *AllocationService
}

func NewAllocationHandler(service *AllocationService) *AllocationHandler {
	return &AllocationHandler{service: service}
}

func (h *AllocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/inventory/:id/allocations", h.Allocate)
	router.POST("/allocations/:id/return", h.ReturnAllocation)
	router.GET("/projects/:id/allocations", h.GetProjectAllocations)
}

func (h *AllocationHandler) Allocate(c *gin.Context) {
	itemID, ok := pathID(c, "Invalid inventory item ID")
	if !ok {
		return
	}

	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	allocation, err := h.service.Allocate(c.Request.Context(), security.IdentityFromContext(c), itemID, req)
	if err != nil {
		custom_error.Abort(c, "Unable to allocate item", err)
		return
	}

	c.JSON(http.StatusCreated, allocation)
}

func (h *AllocationHandler) ReturnAllocation(c *gin.Context) {
	id, ok := pathID(c, "Invalid allocation ID")
	if !ok {
		return
	}

	allocation, err := h.service.ReturnAllocation(c.Request.Context(), security.IdentityFromContext(c), id)
	if err != nil {
		custom_error.Abort(c, "Unable to return allocation", err)
		return
	}

	c.JSON(http.StatusOK, allocation)
}

func (h *AllocationHandler) GetProjectAllocations(c *gin.Context) {
	projectID, ok := pathID(c, "Invalid project ID")
	if !ok {
		return
	}

	allocations, err := h.service.ProjectAllocations(c.Request.Context(), security.IdentityFromContext(c), projectID)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch allocations", err)
		return
	}

	c.JSON(http.StatusOK, allocations)
}

func pathID(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}
