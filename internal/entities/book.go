package entities

import (
	"time"

	"gorm.io/gorm"
)

// Book is soft-deleted through DeletedAt. Every query issued through this
// model excludes deleted rows unless Unscoped() is used.
type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"index;size:512;not null" json:"title"`
	Author    string         `gorm:"index;size:256" json:"author"`
	ISBN      string         `gorm:"index;size:20" json:"isbn,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}
