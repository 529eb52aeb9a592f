package entities

import "time"

// LibraryItem is unique per (user, book).
type LibraryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_library_user_book" json:"user_id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_library_user_book" json:"book_id"`
	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (LibraryItem) TableName() string {
	return "library_items"
}
