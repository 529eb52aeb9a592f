package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
)

type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

type BookCreatedResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type BookListResponse struct {
	Books      []entities.Book `json:"books"`
	Pagination pagination.Meta `json:"pagination"`
}

type BooksController struct {
	books BookService
}

func NewBooksController(books BookService) *BooksController {
	return &BooksController{books: books}
}

// List handles GET /api/books?page=&size=
func (bc *BooksController) List(c *gin.Context) {
	page, ok := queryInt(c, "page", pagination.DefaultPage)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := bc.books.List(c.Request.Context(), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "books retrieved", BookListResponse{Books: result.Books, Pagination: result.Pagination})
}

// Get handles GET /api/books/:book_id
func (bc *BooksController) Get(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	book, err := bc.books.Get(c.Request.Context(), bookID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "book retrieved", book)
}

// Create handles POST /api/books (admin)
func (bc *BooksController) Create(c *gin.Context) {
	var req CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	book, err := bc.books.Create(c.Request.Context(), auth.GetUserID(c), req.Title, req.Author, req.ISBN)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "book created", BookCreatedResponse{ID: book.ID, CreatedAt: book.CreatedAt})
}

// Delete handles DELETE /api/books/:book_id (admin). The book is soft deleted.
func (bc *BooksController) Delete(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	if err := bc.books.Delete(c.Request.Context(), auth.GetUserID(c), bookID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "book deleted", IDResponse{ID: bookID})
}
