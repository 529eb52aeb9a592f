package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentCreatedResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentsController struct {
	comments CommentService
}

func NewCommentsController(comments CommentService) *CommentsController {
	return &CommentsController{comments: comments}
}

// Create handles POST /api/books/:book_id/comments
func (cc *CommentsController) Create(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.comments.Create(c.Request.Context(), auth.GetUserID(c), bookID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "comment created", CommentCreatedResponse{ID: comment.ID, CreatedAt: comment.CreatedAt})
}
