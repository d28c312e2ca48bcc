package routes

import (
	"tracker/internal/core/container"
	"tracker/internal/middleware"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the shared middleware chain and every route.
func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.RecoveryMiddleware(c.Log),
		middleware.RequestLogger(c.Log),
	)

	RegisterPublicRoutes(router, c)
	RegisterProtectedRoutes(router, c)

	return router
}

func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
	router.GET("/health", c.HealthChecker.Handler())
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(
		security.JWTMiddleware(c.TokenIssuer),
		middleware.TimeoutMiddleware(c.Config.RequestTimeout),
	)

	for _, handler := range c.ProtectedHandlers() {
		handler.RegisterRoutes(protectedRoutes)
	}
}
