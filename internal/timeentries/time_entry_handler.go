package timeentries

import (
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TimeEntryHandler struct {
	service *TimeEntryService
}

func NewTimeEntryHandler(service *TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{service: service}
}

func (h *TimeEntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/tasks/:id/time-entries", h.LogTime)
	router.GET("/tasks/:id/time-entries", h.GetTimeEntries)
}

func (h *TimeEntryHandler) LogTime(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID", "details": err.Error()})
		return
	}

	var req LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	entry, err := h.service.LogTime(c.Request.Context(), security.IdentityFromContext(c), taskID, req)
	if err != nil {
		custom_error.Abort(c, "Unable to log time", err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *TimeEntryHandler) GetTimeEntries(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID", "details": err.Error()})
		return
	}

	entries, err := h.service.ListTimeEntries(c.Request.Context(), security.IdentityFromContext(c), taskID)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch time entries", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
