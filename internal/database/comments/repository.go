// Package comments provides database operations for book comments.
package comments

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateComment inserts a comment. Users may comment on a book any number of times.
func (r *Repository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByBook returns the comments on a book, oldest first.
func (r *Repository) ListByBook(ctx context.Context, bookID uint) ([]entities.Comment, error) {
	var comments []entities.Comment
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
