// Package books provides database operations for the book catalogue.
//
// Books are soft-deleted. Every read in this package goes through the Book
// model, so gorm's soft-delete scope hides deleted rows; GetActiveBook is the
// accessor every other component uses to check that a book exists.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetActiveBook(ctx, 123)
package books

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetActiveBook retrieves a book that has not been soft-deleted.
// Returns database.ErrNotFound when the book is absent or deleted.
func (r *Repository) GetActiveBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &book, nil
}

// CreateBook inserts a new book.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", database.Translate(err))
	}
	return nil
}

// ListActiveBooks returns a page of active books, newest first, with the
// total number of active books.
func (r *Repository) ListActiveBooks(ctx context.Context, limit, offset int) ([]entities.Book, int64, error) {
	var books []entities.Book
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Book{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, total, nil
}

// SoftDeleteBook marks a book as deleted. Deleting an already deleted book
// returns database.ErrNotFound.
func (r *Repository) SoftDeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
