package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

type AddLibraryItemRequest struct {
	BookID uint `json:"bookId" binding:"required"`
}

type LibraryItemCreatedResponse struct {
	BookID    uint      `json:"bookId"`
	CreatedAt time.Time `json:"createdAt"`
}

type LibraryItemResponse struct {
	BookID    uint      `json:"bookId"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type LibraryController struct {
	library LibraryService
}

func NewLibraryController(library LibraryService) *LibraryController {
	return &LibraryController{library: library}
}

// Add handles POST /api/me/library
func (lc *LibraryController) Add(c *gin.Context) {
	var req AddLibraryItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := lc.library.Add(c.Request.Context(), auth.GetUserID(c), req.BookID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "book added to library", LibraryItemCreatedResponse{BookID: item.BookID, CreatedAt: item.CreatedAt})
}

// List handles GET /api/me/library
func (lc *LibraryController) List(c *gin.Context) {
	items, err := lc.library.List(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]LibraryItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, LibraryItemResponse{
			BookID:    item.BookID,
			Title:     item.Book.Title,
			Author:    item.Book.Author,
			CreatedAt: item.CreatedAt,
		})
	}
	respondOK(c, "library retrieved", resp)
}
