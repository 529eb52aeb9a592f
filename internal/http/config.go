package http

import (
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Domain services
	Books    BookService
	Reviews  ReviewService
	Comments CommentService
	Library  LibraryService
	Users    UserService

	// Authentication
	Auth    AuthService
	Tokens  *auth.TokenService
	Revoker auth.TokenRevoker // optional; nil disables logout revocation checks

	// Audit trail (optional)
	Audit AuditReader

	// Task queue client (optional)
	TaskQueue          TaskQueue
	AuditRetentionDays int

	// Health checks
	Database     *database.Database
	HealthChecks map[string]HealthCheck

	// Application info
	Version string
}
