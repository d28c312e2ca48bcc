package users

import (
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/models"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsersHandler struct {
	Repository UserRepository
}

func NewHandler(r UserRepository) *UsersHandler {
	return &UsersHandler{
		Repository: r,
	}
}

func (h *UsersHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.GetCurrentUser)
	router.GET("/users", h.GetUserList)
	router.GET("/users/:id", h.GetUser)
}

func (h *UsersHandler) GetCurrentUser(c *gin.Context) {
	identity := security.IdentityFromContext(c)
	if err := security.Require(identity); err != nil {
		custom_error.Abort(c, "Not authenticated", err)
		return
	}

	user, err := h.Repository.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		custom_error.Abort(c, "Unable to load current user", err)
		return
	}
	if user == nil {
		custom_error.Abort(c, "Unable to find user", custom_error.NewNotFound("user", identity.UserID))
		return
	}

	c.JSON(http.StatusOK, user.View())
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	user, err := h.Repository.GetUser(c.Request.Context(), userID)
	if err != nil {
		custom_error.Abort(c, "Unable to load user", err)
		return
	}
	if user == nil {
		custom_error.Abort(c, "Unable to find user", custom_error.NewNotFound("user", userID))
		return
	}

	c.JSON(http.StatusOK, user.View())
}

// GetUserList feeds the manager and assignee pickers.
func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers(c.Request.Context())
	if err != nil {
		custom_error.Abort(c, "Could not obtain list of users", err)
		return
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}

	c.JSON(http.StatusOK, views)
}
