package auditlog

import (
	"context"
	"net/http"

	"tracker/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var resourceTypes = map[string]bool{
	"project":              true,
	"task":                 true,
	"inventory_item":       true,
	"inventory_allocation": true,
	"comment":              true,
}

type LogReader interface {
	GetResourceLog(ctx context.Context, id uuid.UUID, resourceType string) ([]models.AuditLog, error)
}

type AuditLogHandler struct {
	reader LogReader
}

func NewHandler(reader LogReader) *AuditLogHandler {
	return &AuditLogHandler{reader: reader}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs/:type/:id", h.GetResourceLog)
}

func (h *AuditLogHandler) GetResourceLog(c *gin.Context) {
	resourceType := c.Param("type")
	if !resourceTypes[resourceType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown resource type", "details": resourceType})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID", "details": err.Error()})
		return
	}

	logs, err := h.reader.GetResourceLog(c.Request.Context(), id, resourceType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, logs)
}
