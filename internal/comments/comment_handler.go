package comments

import (
	"net/http"

	custom_error "tracker/pkg/errors"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service *CommentService
}

func NewCommentHandler(service *CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/comments", h.CreateComment)
	router.GET("/comments", h.GetComments)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), security.IdentityFromContext(c), req)
	if err != nil {
		custom_error.Abort(c, "Unable to post comment", err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	var query ListCommentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), security.IdentityFromContext(c), query)
	if err != nil {
		custom_error.Abort(c, "Failed to fetch comments", err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
