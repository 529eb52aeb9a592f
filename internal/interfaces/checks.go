package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/comments"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/tokens"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookStore = (*books.Repository)(nil)
var _ services.ReviewStore = (*reviews.Repository)(nil)
var _ services.UserStore = (*users.Repository)(nil)
var _ services.CommentStore = (*comments.Repository)(nil)
var _ services.LibraryStore = (*library.Repository)(nil)

// =============================================================================
// Authentication
// =============================================================================

var _ auth.UserLookup = (*users.Repository)(nil)

// TokenRevoker implementations
var _ auth.TokenRevoker = (*tokens.Repository)(nil)
var _ auth.TokenRevoker = (*auth.RedisTokenRevoker)(nil)

// =============================================================================
// Services consumed by HTTP controllers
// =============================================================================

var _ http.BookService = (*services.BookService)(nil)
var _ http.ReviewService = (*services.ReviewService)(nil)
var _ http.CommentService = (*services.CommentService)(nil)
var _ http.LibraryService = (*services.LibraryService)(nil)
var _ http.UserService = (*services.UserService)(nil)
var _ http.AuthService = (*auth.Service)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ services.AuditLogger = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.ExpiredTokenPurger = (*tokens.Repository)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
