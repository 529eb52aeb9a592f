// Package services holds the domain rules: existence and ownership checks,
// input validation, and translation of store errors into AppError codes.
package services

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookStore is the single accessor for books. Soft-deleted books are
// reported as database.ErrNotFound.
type BookStore interface {
	GetActiveBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	ListActiveBooks(ctx context.Context, limit, offset int) ([]entities.Book, int64, error)
	SoftDeleteBook(ctx context.Context, id uint) error
}

type ReviewStore interface {
	CreateReview(ctx context.Context, review *entities.Review) error
	GetReviewByID(ctx context.Context, id uint) (*entities.Review, error)
	UpdateReview(ctx context.Context, review *entities.Review) error
	DeleteReview(ctx context.Context, id uint) error
	CountByBook(ctx context.Context, bookID uint) (int64, error)
	ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]entities.Review, error)
	TopByLikes(ctx context.Context, bookID uint, limit int) ([]entities.RankedReview, error)
	LikeReview(ctx context.Context, userID, reviewID uint) (*entities.ReviewLike, error)
	UnlikeReview(ctx context.Context, userID, reviewID uint) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	ListNonAdminUsers(ctx context.Context) ([]entities.User, error)
	GetNonAdminUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetDisplayNames(ctx context.Context, ids []uint) (map[uint]string, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *entities.Comment) error
}

type LibraryStore interface {
	AddItem(ctx context.Context, item *entities.LibraryItem) error
	ListForUser(ctx context.Context, userID uint) ([]entities.LibraryItem, error)
}

// AuditLogger records domain changes. Implementations must not block.
type AuditLogger interface {
	LogEntity(userID uint, eventType entities.AuditEventType, action, entityType string, entityID uint, description string)
}
