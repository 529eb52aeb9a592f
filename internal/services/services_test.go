package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/comments"
	"github.com/mrlokans/bookshelf/internal/database/library"
	"github.com/mrlokans/bookshelf/internal/database/reviews"
	"github.com/mrlokans/bookshelf/internal/database/users"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type recordedEvent struct {
	UserID   uint
	Type     entities.AuditEventType
	Action   string
	EntityID uint
}

type fakeAudit struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeAudit) LogEntity(userID uint, eventType entities.AuditEventType, action, _ string, entityID uint, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{userID, eventType, action, entityID})
}

func (f *fakeAudit) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.Action)
	}
	return out
}

type testEnv struct {
	db       *gorm.DB
	books    *books.Repository
	users    *users.Repository
	reviews  *ReviewService
	comments *CommentService
	library  *LibraryService
	bookSvc  *BookService
	userSvc  *UserService
	audit    *fakeAudit
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)
	audit := &fakeAudit{}

	return &testEnv{
		db:       db.DB,
		books:    bookRepo,
		users:    userRepo,
		reviews:  NewReviewService(bookRepo, reviewRepo, userRepo, audit),
		comments: NewCommentService(bookRepo, comments.NewRepository(db.DB), audit),
		library:  NewLibraryService(bookRepo, library.NewRepository(db.DB), audit),
		bookSvc:  NewBookService(bookRepo, audit),
		userSvc:  NewUserService(userRepo, bcrypt.MinCost, audit),
		audit:    audit,
	}
}

func (e *testEnv) book(t *testing.T, title string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, Author: "Author"}
	require.NoError(t, e.books.CreateBook(context.Background(), book))
	return book
}

func (e *testEnv) user(t *testing.T, email, name string) *entities.User {
	t.Helper()
	user := &entities.User{Email: email, Name: name, PasswordHash: "x"}
	require.NoError(t, e.users.CreateUser(context.Background(), user))
	return user
}

func requireAppError(t *testing.T, err error, code string) *AppError {
	t.Helper()
	var appErr *AppError
	require.True(t, errors.As(err, &appErr), "expected AppError %s, got %v", code, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func ptr[T any](v T) *T { return &v }
