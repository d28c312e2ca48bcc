package dashboard

import (
	"context"
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
)

type DashboardService struct {
	repo DashboardRepository
}

func NewDashboardService(repo DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Stats counts projects and stock globally and tasks for the caller only.
func (s *DashboardService) Stats(ctx context.Context, identity *security.Identity) (*Stats, error) {
	if err := security.Require(identity); err != nil {
		return nil, err
	}
	return s.repo.GetStats(ctx, identity.UserID)
}

type DashboardHandler struct {
	service *DashboardService
}

func NewDashboardHandler(service *DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetStats)
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), security.IdentityFromContext(c))
	if err != nil {
		custom_error.Abort(c, "Failed to load dashboard", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
