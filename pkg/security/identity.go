package security

import (
	custom_error "tracker/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextUserID   = "userID"
	contextUsername = "username"
)

// Identity is the authenticated caller of a request. Services receive it
// explicitly instead of looking the user up from ambient state.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Require fails with custom_error.ErrUnauthenticated unless a user is present.
func Require(identity *Identity) error {
	if identity == nil || identity.UserID == uuid.Nil {
		return custom_error.ErrUnauthenticated
	}
	return nil
}

// IdentityFromContext returns the identity stored by JWTMiddleware, or nil.
func IdentityFromContext(c *gin.Context) *Identity {
	raw, exists := c.Get(contextUserID)
	if !exists {
		return nil
	}
	userID, ok := raw.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return nil
	}

	return &Identity{
		UserID:   userID,
		Username: c.GetString(contextUsername),
	}
}

// SetIdentity stores the identity on the gin context.
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(contextUserID, identity.UserID)
	c.Set(contextUsername, identity.Username)
}
