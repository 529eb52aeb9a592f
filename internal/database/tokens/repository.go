// Package tokens stores revoked access-token identifiers until the tokens
// would have expired on their own.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Revoke records jti as revoked. Revoking the same jti twice is a no-op.
func (r *Repository) Revoke(ctx context.Context, jti string, userID uint, expiresAt time.Time) error {
	err := r.db.WithContext(ctx).Create(&entities.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}).Error
	if errors.Is(database.Translate(err), database.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (r *Repository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return count > 0, nil
}

// DeleteExpired removes revocations whose token expired before now.
// Returns the number of deleted rows.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&entities.RevokedToken{})
	return result.RowsAffected, result.Error
}
