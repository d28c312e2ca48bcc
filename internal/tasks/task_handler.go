package tasks

import (
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	service *TaskService
}

func NewTaskHandler(service *TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/tasks", h.GetProjectTasks)
	router.GET("/tasks/mine", h.GetMyTasks)
	router.POST("/tasks", h.CreateTask)
	router.GET("/tasks/:id", h.GetTask)
	router.PATCH("/tasks/:id", h.UpdateTask)
	router.DELETE("/tasks/:id", h.DeleteTask)
}

func (h *TaskHandler) GetProjectTasks(c *gin.Context) {
	projectID, ok := pathID(c, "Invalid project ID")
	if !ok {
		return
	}

	var query ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	tasks, err := h.service.ListByProject(c.Request.Context(), security.IdentityFromContext(c), projectID, query)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetMyTasks(c *gin.Context) {
	tasks, err := h.service.MyTasks(c.Request.Context(), security.IdentityFromContext(c))
	if err != nil {
		custom_error.Abort(c, "Failed to fetch tasks", err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask answers 200 with a null body when the task does not exist.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "Invalid task ID")
	if !ok {
		return
	}

	task, err := h.service.GetTask(c.Request.Context(), security.IdentityFromContext(c), id)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), security.IdentityFromContext(c), req)
	if err != nil {
		custom_error.Abort(c, "Failed to create task", err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "Invalid task ID")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), security.IdentityFromContext(c), id, req)
	if err != nil {
		custom_error.Abort(c, "Unable to update task", err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "Invalid task ID")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), security.IdentityFromContext(c), id); err != nil {
		custom_error.Abort(c, "Failed to delete task", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "details": err.Error()})
		return uuid.Nil, false
	}
	return id, true
}
