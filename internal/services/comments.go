package services

import (
	"context"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type CommentService struct {
	books    BookStore
	comments CommentStore
	audit    AuditLogger
}

func NewCommentService(books BookStore, comments CommentStore, audit AuditLogger) *CommentService {
	return &CommentService{books: books, comments: comments, audit: audit}
}

// Create posts a comment by userID on an active book.
func (s *CommentService) Create(ctx context.Context, userID, bookID uint, content string) (*entities.Comment, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := requireActiveBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}

	comment := &entities.Comment{UserID: userID, BookID: bookID, Content: content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.LogEntity(userID, entities.AuditEventComment, "comment_create", "comment", comment.ID,
			fmt.Sprintf("Commented on book %d", bookID))
	}
	return comment, nil
}
