package container

import (
	"database/sql"

	"tracker/internal/auditlog"
	"tracker/internal/comments"
	"tracker/internal/core/config"
	"tracker/internal/dashboard"
	"tracker/internal/inventory/allocations"
	"tracker/internal/inventory/items"
	"tracker/internal/middleware"
	"tracker/internal/projects"
	"tracker/internal/realtime"
	"tracker/internal/repository"
	"tracker/internal/tasks"
	"tracker/internal/timeentries"
	"tracker/internal/users"
	auditlogger "tracker/pkg/auditlog"
	"tracker/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const Version = "1.0.0"

// RouteRegistrar is implemented by every handler mounted behind authentication.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type Container struct {
	Config        *config.Config
	Log           *zap.Logger
	Repository    *repository.Repository
	AuditLog      *auditlogger.Auditlog
	Hub           *realtime.Hub
	TokenIssuer   *security.TokenIssuer
	LoginHandler  *security.LoginHandler
	HealthChecker *middleware.HealthChecker

	UserHandler       *users.UsersHandler
	ProjectHandler    *projects.ProjectHandler
	TaskHandler       *tasks.TaskHandler
	ItemHandler       *items.ItemHandler
	AllocationHandler *allocations.AllocationHandler
	TimeEntryHandler  *timeentries.TimeEntryHandler
	CommentHandler    *comments.CommentHandler
	DashboardHandler  *dashboard.DashboardHandler
	AuditLogHandler   *auditlog.AuditLogHandler
}

func NewAppContainer(cfg *config.Config, db *sql.DB, log *zap.Logger) *Container {
	repo := repository.NewRepository(db)
	hub := realtime.NewHub(log)
	auditLogRepo := auditlog.NewRepository(repo)
	auditLog := auditlogger.NewAuditLog(auditLogRepo, hub, log)
	issuer := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := users.NewRepository(repo)
	allocationStore := allocations.NewStore(repo)

	projectService := projects.NewProjectService(projects.NewRepository(repo), auditLog)
	taskService := tasks.NewTaskService(tasks.NewRepository(repo), auditLog)
	itemService := items.NewItemService(items.NewRepository(repo), allocationStore, auditLog)
	allocationService := allocations.NewAllocationService(allocationStore, auditLog)
	timeEntryService := timeentries.NewTimeEntryService(timeentries.NewRepository(repo), auditLog)
	commentService := comments.NewCommentService(comments.NewRepository(repo), auditLog)
	dashboardService := dashboard.NewDashboardService(dashboard.NewRepository(repo))

	return &Container{
		Config:        cfg,
		Log:           log,
		Repository:    repo,
		AuditLog:      auditLog,
		Hub:           hub,
		TokenIssuer:   issuer,
		LoginHandler:  security.NewLoginHandler(userRepo, issuer, log),
		HealthChecker: middleware.NewHealthChecker(db.PingContext, Version),

		UserHandler:       users.NewHandler(userRepo),
		ProjectHandler:    projects.NewProjectHandler(projectService),
		TaskHandler:       tasks.NewTaskHandler(taskService),
		ItemHandler:       items.NewItemHandler(itemService),
		AllocationHandler: allocations.NewAllocationHandler(allocationService),
		TimeEntryHandler:  timeentries.NewTimeEntryHandler(timeEntryService),
		CommentHandler:    comments.NewCommentHandler(commentService),
		DashboardHandler:  dashboard.NewDashboardHandler(dashboardService),
		AuditLogHandler:   auditlog.NewHandler(auditLogRepo),
	}
}

// ProtectedHandlers lists the handlers that require a signed-in user.
func (c *Container) ProtectedHandlers() []RouteRegistrar {
	return []RouteRegistrar{
		c.UserHandler,
		c.ProjectHandler,
		c.TaskHandler,
		c.ItemHandler,
		c.AllocationHandler,
		c.TimeEntryHandler,
		c.CommentHandler,
		c.DashboardHandler,
		c.AuditLogHandler,
		c.Hub,
	}
}

// Close stops background work and waits for pending audit entries.
func (c *Container) Close() {
	c.LoginHandler.Close()
	c.AuditLog.Wait()
}
