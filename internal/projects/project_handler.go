package projects

import (
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	service *ProjectService
}

func NewProjectHandler(service *ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects", h.GetProjects)
	router.POST("/projects", h.CreateProject)
	router.GET("/projects/:id", h.GetProject)
	router.PATCH("/projects/:id", h.UpdateProject)
	router.DELETE("/projects/:id", h.DeleteProject)
}

func (h *ProjectHandler) GetProjects(c *gin.Context) {
	var query ListProjectsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	projects, err := h.service.ListProjects(c.Request.Context(), security.IdentityFromContext(c), query)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch projects", err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject answers 200 with a null body when the project does not exist.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	project, err := h.service.GetProject(c.Request.Context(), security.IdentityFromContext(c), id)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch project", err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	project, err := h.service.CreateProject(c.Request.Context(), security.IdentityFromContext(c), req)
	if err != nil {
		custom_error.Abort(c, "Failed to create project", err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	project, err := h.service.UpdateProject(c.Request.Context(), security.IdentityFromContext(c), id, req)
	if err != nil {
		custom_error.Abort(c, "Unable to update project", err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), security.IdentityFromContext(c), id); err != nil {
		custom_error.Abort(c, "Failed to delete project", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID", "details": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}
