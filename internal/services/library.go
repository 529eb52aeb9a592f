package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type LibraryService struct {
	books   BookStore
	library LibraryStore
	audit   AuditLogger
}

func NewLibraryService(books BookStore, library LibraryStore, audit AuditLogger) *LibraryService {
	return &LibraryService{books: books, library: library, audit: audit}
}

// Add puts an active book into userID's library.
func (s *LibraryService) Add(ctx context.Context, userID, bookID uint) (*entities.LibraryItem, error) {
	if err := requireActiveBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}

	item := &entities.LibraryItem{UserID: userID, BookID: bookID}
	if err := s.library.AddItem(ctx, item); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateLibraryItem(bookID)
		}
		return nil, fmt.Errorf("failed to add library item: %w", err)
	}

	if s.audit != nil {
		s.audit.LogEntity(userID, entities.AuditEventLibrary, "library_add", "book", bookID,
			fmt.Sprintf("Added book %d to library", bookID))
	}
	return item, nil
}

// List returns userID's library, most recently added first.
func (s *LibraryService) List(ctx context.Context, userID uint) ([]entities.LibraryItem, error) {
	return s.library.ListForUser(ctx, userID)
}
