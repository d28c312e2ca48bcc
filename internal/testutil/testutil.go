// Package testutil holds fakes shared by handler and service tests.
package testutil

import (
	"sync"

	"tracker/pkg/auditlog"
	"tracker/pkg/models"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditEntry struct {
	Action string
	Actor  uuid.UUID
	Data   interface{}
	Entry  models.AuditLog
}

// AuditRecorder collects audit entries synchronously.
type AuditRecorder struct {
	mu      sync.Mutex
	Entries []AuditEntry
}

func (r *AuditRecorder) Log(action string, actor uuid.UUID, data interface{}, item auditlog.Auditable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, AuditEntry{Action: action, Actor: actor, Data: data, Entry: item.CreateLogView()})
}

func (r *AuditRecorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		actions = append(actions, e.Action)
	}
	return actions
}

// NewIdentity returns a signed-in caller with a fresh id.
func NewIdentity(username string) *security.Identity {
	return &security.Identity{UserID: uuid.New(), Username: username}
}

// Router builds a gin engine whose requests carry identity, as if JWTMiddleware
// had accepted a token for it. A nil identity leaves requests anonymous.
func Router(identity *security.Identity) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("")
	group.Use(func(c *gin.Context) {
		if identity != nil {
			security.SetIdentity(c, *identity)
		}
		c.Next()
	})
	return router, group
}
