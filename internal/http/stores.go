package http

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/auth"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

// This file consolidates the service interfaces used by HTTP controllers.
// Each controller depends on the narrowest set of operations it needs; the
// concrete implementations live in internal/services and internal/auth.

type BookService interface {
	Get(ctx context.Context, bookID uint) (*entities.Book, error)
	List(ctx context.Context, page, size int) (*services.BookPage, error)
	Create(ctx context.Context, actorID uint, title, author, isbn string) (*entities.Book, error)
	Delete(ctx context.Context, actorID, bookID uint) error
}

type ReviewService interface {
	Create(ctx context.Context, userID, bookID uint, content string, rating int) (*entities.Review, error)
	Update(ctx context.Context, userID, reviewID uint, content *string, rating *int) (*entities.Review, error)
	Delete(ctx context.Context, userID, reviewID uint) error
	Like(ctx context.Context, userID, reviewID uint) (*entities.ReviewLike, error)
	Unlike(ctx context.Context, userID, reviewID uint) error
	List(ctx context.Context, bookID uint, page, size int) (*services.ReviewPage, error)
	Top(ctx context.Context, bookID uint, limit int) ([]entities.RankedReview, error)
}

type CommentService interface {
	Create(ctx context.Context, userID, bookID uint, content string) (*entities.Comment, error)
}

type LibraryService interface {
	Add(ctx context.Context, userID, bookID uint) (*entities.LibraryItem, error)
	List(ctx context.Context, userID uint) ([]entities.LibraryItem, error)
}

type UserService interface {
	Register(ctx context.Context, email, password, name string) (*entities.User, error)
	Me(ctx context.Context, userID uint) (*entities.User, error)
	List(ctx context.Context) ([]entities.User, error)
	Get(ctx context.Context, userID uint) (*entities.User, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password, ip string) (*auth.LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

// AuditReader serves the admin audit trail. It also records login attempts.
type AuditReader interface {
	GetEvents(ctx context.Context, filter auditrepo.Filter, limit, offset int) ([]entities.AuditEvent, int64, error)
	LogAuth(userID uint, action, ip, userAgent string, success bool)
}
