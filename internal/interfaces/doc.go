// Package interfaces documents the core abstractions used throughout the application
// and holds the compile-time checks that bind them to their implementations.
//
// # Interface Categories
//
// ## Data Access Interfaces (internal/services/interfaces.go)
//
//   - BookStore: Active (not soft-deleted) book access. Deleted books read as not found.
//   - ReviewStore: Reviews, likes and the like-count ranking.
//   - UserStore: Accounts and display-name lookup for review authors.
//   - CommentStore, LibraryStore: Comments on books and personal reading lists.
//   - AuditLogger: Fire-and-forget recording of domain changes.
//
// ## Authentication Interfaces (internal/auth)
//
//   - UserLookup: Credential lookup by email for login.
//   - TokenRevoker: Denylist for logged-out tokens. Backed by the database
//     (tokens.Repository) or Redis (RedisTokenRevoker) when REDIS_ADDR is set.
//
// ## HTTP Interfaces (internal/http/stores.go)
//
// Controllers depend on narrow service interfaces (BookService, ReviewService,
// CommentService, LibraryService, UserService, AuthService, AuditReader) so they
// can be tested with fakes.
//
// ## Background Work Interfaces
//
//   - TaskQueue (internal/http/tasks.go), Enqueuer (internal/scheduler): Enqueue
//     maintenance tasks on the backlite queue.
//   - AuditEventCleaner, ExpiredTokenPurger (internal/tasks): Targets of the
//     retention tasks.
//
// # Adding a New Resource
//
//  1. Add the entity in internal/entities and register it in database.Open's migration list.
//
//  2. Add a repository in internal/database/<resource>/ translating gorm errors
//     with database.Translate.
//
//  3. Add a store interface in internal/services/interfaces.go and a service
//     that returns *services.AppError for client-visible failures.
//
//  4. Add a service interface in internal/http/stores.go, a controller, and
//     the routes in NewRouter.
//
//  5. Add the compile-time checks to checks.go:
//
//     var _ services.ShelfStore = (*shelves.Repository)(nil)
//     var _ http.ShelfService = (*services.ShelfService)(nil)
package interfaces
