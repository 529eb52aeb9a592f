// Package library provides database operations for users' personal libraries.
package library

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a library item. Adding the same book twice for a user
// returns database.ErrDuplicate.
func (r *Repository) AddItem(ctx context.Context, item *entities.LibraryItem) error {
	if err := r.db.WithContext(ctx).Omit("Book").Create(item).Error; err != nil {
		return database.Translate(err)
	}
	return nil
}

// ListForUser returns a user's library items, most recently added first,
// with their books loaded. Items whose book was soft-deleted are skipped.
func (r *Repository) ListForUser(ctx context.Context, userID uint) ([]entities.LibraryItem, error) {
	var items []entities.LibraryItem
	err := r.db.WithContext(ctx).
		InnerJoins("Book").
		Where("library_items.user_id = ?", userID).
		Where(clause.Eq{Column: clause.Column{Table: "Book", Name: "deleted_at"}, Value: nil}).
		Order("library_items.created_at DESC, library_items.id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	return items, nil
}
