package entities

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is unique per (user, book).
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_book" json:"user_id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_review_user_book;index" json:"book_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewLike is unique per (user, review).
type ReviewLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_review" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_like_user_review;index" json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReviewLike) TableName() string {
	return "review_likes"
}

// RankedReview is a review row joined with its like count and author name.
type RankedReview struct {
	ID         uint
	UserID     uint
	AuthorName string
	Content    string
	Rating     int
	LikeCount  int64
	CreatedAt  time.Time
}
