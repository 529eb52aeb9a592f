package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
)

// BookPage is one page of the active catalogue.
type BookPage struct {
	Books      []entities.Book
	Pagination pagination.Meta
}

type BookService struct {
	books BookStore
	audit AuditLogger
}

func NewBookService(books BookStore, audit AuditLogger) *BookService {
	return &BookService{books: books, audit: audit}
}

// Get returns an active book.
func (s *BookService) Get(ctx context.Context, bookID uint) (*entities.Book, error) {
	book, err := s.books.GetActiveBook(ctx, bookID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrBookNotFound(bookID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book: %w", err)
	}
	return book, nil
}

// List returns a page of active books, newest first.
func (s *BookService) List(ctx context.Context, page, size int) (*BookPage, error) {
	params, err := pagination.NewParams(page, size, pagination.MaxSize)
	if err != nil {
		return nil, invalidParam(err)
	}

	books, total, err := s.books.ListActiveBooks(ctx, params.Size, params.Offset())
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []entities.Book{}
	}
	return &BookPage{Books: books, Pagination: pagination.NewMeta(params, total)}, nil
}

// Create adds a book to the catalogue. actorID is the admin performing it.
func (s *BookService) Create(ctx context.Context, actorID uint, title, author, isbn string) (*entities.Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidRequest("title", "title must not be empty")
	}

	book := &entities.Book{
		Title:  title,
		Author: strings.TrimSpace(author),
		ISBN:   strings.TrimSpace(isbn),
	}
	if err := s.books.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.LogEntity(actorID, entities.AuditEventBook, "book_create", "book", book.ID, "Created book: "+book.Title)
	}
	return book, nil
}

// Delete soft-deletes a book. It disappears from every read afterwards.
func (s *BookService) Delete(ctx context.Context, actorID, bookID uint) error {
	err := s.books.SoftDeleteBook(ctx, bookID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrBookNotFound(bookID)
	}
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	if s.audit != nil {
		s.audit.LogEntity(actorID, entities.AuditEventBook, "book_delete", "book", bookID, fmt.Sprintf("Deleted book %d", bookID))
	}
	return nil
}
