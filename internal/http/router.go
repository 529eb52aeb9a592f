package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	router.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})

	gate := auth.NewMiddleware(cfg.Tokens, cfg.Revoker, abortWithError)
	requireAuth := gate.RequireAuth()
	requireAdmin := gate.RequireRole(entities.RoleAdmin)

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	for name, check := range cfg.HealthChecks {
		health.AddCheck(name, check)
	}
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	// Users
	users := NewUsersController(cfg.Users)
	api.POST("/users", users.Register)
	api.GET("/users/me", requireAuth, users.Me)
	api.GET("/users", requireAuth, requireAdmin, users.List)
	api.GET("/users/:user_id", requireAuth, requireAdmin, users.Get)

	// Authentication
	authController := NewAuthController(cfg.Auth, cfg.Audit)
	api.POST("/auth/login", authController.Login)
	api.POST("/auth/logout", requireAuth, authController.Logout)

	// Books
	books := NewBooksController(cfg.Books)
	api.GET("/books", books.List)
	api.GET("/books/:book_id", books.Get)
	api.POST("/books", requireAuth, requireAdmin, books.Create)
	api.DELETE("/books/:book_id", requireAuth, requireAdmin, books.Delete)

	// Reviews and likes
	reviews := NewReviewsController(cfg.Reviews)
	api.GET("/books/:book_id/reviews", reviews.List)
	api.GET("/books/:book_id/reviews/top", reviews.Top)
	api.POST("/books/:book_id/reviews", requireAuth, reviews.Create)
	api.PATCH("/reviews/:review_id", requireAuth, reviews.Update)
	api.DELETE("/reviews/:review_id", requireAuth, reviews.Delete)
	api.POST("/reviews/:review_id/like", requireAuth, reviews.Like)
	api.DELETE("/reviews/:review_id/like", requireAuth, reviews.Unlike)

	// Comments
	comments := NewCommentsController(cfg.Comments)
	api.POST("/books/:book_id/comments", requireAuth, comments.Create)

	// Personal library
	library := NewLibraryController(cfg.Library)
	me := api.Group("/me", requireAuth)
	me.POST("/library", library.Add)
	me.GET("/library", library.List)

	// Admin operations
	admin := api.Group("/admin", requireAuth, requireAdmin)
	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		admin.GET("/audit-events", auditController.List)
	}
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.AuditRetentionDays)
		admin.GET("/tasks/types", tasksController.ListTaskTypes)
		admin.GET("/tasks/:id", tasksController.GetTaskStatus)
		admin.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
