package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// HealthChecker answers /health, pinging the database at most once per cacheFor.
type HealthChecker struct {
	ping      PingFunc
	version   string
	startTime time.Time
	cacheFor  time.Duration

	mu         sync.Mutex
	last       HealthStatus
	lastStatus int
	lastAt     time.Time
	now        func() time.Time
}

func NewHealthChecker(ping PingFunc, version string) *HealthChecker {
	return &HealthChecker{
		ping:      ping,
		version:   version,
		startTime: time.Now(),
		cacheFor:  5 * time.Second,
		now:       time.Now,
	}
}

func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := h.check(c.Request.Context())
		c.JSON(code, status)
	}
}

func (h *HealthChecker) check(ctx context.Context) (HealthStatus, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if !h.lastAt.IsZero() && now.Sub(h.lastAt) < h.cacheFor {
		return h.last, h.lastStatus
	}

	status := HealthStatus{
		Status:      "ok",
		Database:    "ok",
		LastChecked: now,
		Uptime:      now.Sub(h.startTime).Round(time.Second).String(),
		Version:     h.version,
	}
	code := http.StatusOK

	if h.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.ping(pingCtx); err != nil {
			status.Status = "degraded"
			status.Database = err.Error()
			code = http.StatusServiceUnavailable
		}
	}

	h.last, h.lastStatus, h.lastAt = status, code, now
	return status, code
}
