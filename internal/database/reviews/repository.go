// Package reviews provides database operations for reviews and review likes,
// including the chronological listing and the like-ranked Top-N query.
//
// Uniqueness of (user, book) reviews and (user, review) likes is enforced by
// unique indexes; violations surface as database.ErrDuplicate.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Repository handles all review and like database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateReview inserts a review. A second review by the same user for the
// same book returns database.ErrDuplicate.
func (r *Repository) CreateReview(ctx context.Context, review *entities.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return database.Translate(err)
	}
	return nil
}

// GetReviewByID retrieves a review by ID.
func (r *Repository) GetReviewByID(ctx context.Context, id uint) (*entities.Review, error) {
	var review entities.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &review, nil
}

// UpdateReview writes content, rating and updated_at of the given review.
// updated_at is always stamped with the current time.
func (r *Repository) UpdateReview(ctx context.Context, review *entities.Review) error {
	review.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&entities.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"content":    review.Content,
			"rating":     review.Rating,
			"updated_at": review.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// DeleteReview removes a review together with every like attached to it.
func (r *Repository) DeleteReview(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&entities.ReviewLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete review likes: %w", err)
		}
		result := tx.Delete(&entities.Review{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
}

// CountByBook returns the number of reviews for a book.
func (r *Repository) CountByBook(ctx context.Context, bookID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entities.Review{}).
		Where("book_id = ?", bookID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return total, nil
}

// ListByBook returns reviews of a book newest first. Reviews created at the
// same instant are ordered by descending ID.
func (r *Repository) ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// TopByLikes returns up to limit reviews of a book ranked by like count,
// then by recency. Reviews without likes are included with a zero count.
// AuthorName is left empty for the caller to resolve.
func (r *Repository) TopByLikes(ctx context.Context, bookID uint, limit int) ([]entities.RankedReview, error) {
	var ranked []entities.RankedReview
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.id, reviews.user_id, reviews.content, reviews.rating, reviews.created_at, COUNT(review_likes.id) AS like_count").
		Joins("LEFT JOIN review_likes ON review_likes.review_id = reviews.id").
		Where("reviews.book_id = ?", bookID).
		Group("reviews.id, reviews.user_id, reviews.content, reviews.rating, reviews.created_at").
		Order("like_count DESC, reviews.created_at DESC, reviews.id DESC").
		Limit(limit).
		Scan(&ranked).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank reviews: %w", err)
	}
	return ranked, nil
}

// LikeReview records a like by userID on reviewID. Returns
// database.ErrNotFound if the review does not exist and database.ErrDuplicate
// if the user already liked it.
func (r *Repository) LikeReview(ctx context.Context, userID, reviewID uint) (*entities.ReviewLike, error) {
	like := &entities.ReviewLike{UserID: userID, ReviewID: reviewID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.Review{}).Where("id = ?", reviewID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return database.ErrNotFound
		}
		return tx.Create(like).Error
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
		return nil, database.Translate(err)
	}
	return like, nil
}

// UnlikeReview removes the like by userID on reviewID. Returns
// database.ErrNotFound if there was no such like.
func (r *Repository) UnlikeReview(ctx context.Context, userID, reviewID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND review_id = ?", userID, reviewID).
		Delete(&entities.ReviewLike{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete like: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
