// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations, error translation
//	├── books/           # Active-book lookup, catalogue listing, soft delete
//	├── users/           # Registration storage, lookups, admin listing
//	├── reviews/         # Reviews, likes, chronological paging and Top-N ranking
//	├── comments/        # Book comments
//	├── library/         # Personal library items
//	├── audit/           # Audit trail
//	└── tokens/          # Revoked access tokens
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./app.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	reviewsRepo := reviews.NewRepository(db.DB)
//
//	book, err := booksRepo.GetActiveBook(ctx, 123)
//	page, err := reviewsRepo.ListByBook(ctx, book.ID, 10, 0)
//
// # Uniqueness
//
// At-most-one invariants (one review per user and book, one like per user and
// review, one library entry per user and book, one account per email) are
// enforced by unique indexes. The connection is opened with TranslateError so
// a violation surfaces as ErrDuplicate through Translate, for both dialects.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces
package database
