package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
)

type CreateReviewRequest struct {
	Content string `json:"content" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
}

// UpdateReviewRequest carries optional fields; nil means keep the stored value.
type UpdateReviewRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

type ReviewCreatedResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewUpdatedResponse struct {
	ID        uint      `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type IDResponse struct {
	ID uint `json:"id"`
}

type LikeResponse struct {
	ReviewID  uint      `json:"review_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewItem struct {
	ID         uint      `json:"id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

type RankedReviewItem struct {
	ID         uint      `json:"id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	LikeCount  int64     `json:"like_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews    []ReviewItem    `json:"reviews"`
	Pagination pagination.Meta `json:"pagination"`
}

type TopReviewsResponse struct {
	Reviews []RankedReviewItem `json:"reviews"`
}

type ReviewsController struct {
	reviews ReviewService
}

func NewReviewsController(reviews ReviewService) *ReviewsController {
	return &ReviewsController{reviews: reviews}
}

// Create handles POST /api/books/:book_id/reviews
func (rc *ReviewsController) Create(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := rc.reviews.Create(c.Request.Context(), auth.GetUserID(c), bookID, req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "review created", ReviewCreatedResponse{ID: review.ID, CreatedAt: review.CreatedAt})
}

// List handles GET /api/books/:book_id/reviews?page=&size=
func (rc *ReviewsController) List(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	page, ok := queryInt(c, "page", pagination.DefaultPage)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", pagination.DefaultSize)
	if !ok {
		return
	}

	result, err := rc.reviews.List(c.Request.Context(), bookID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]ReviewItem, 0, len(result.Reviews))
	for _, r := range result.Reviews {
		items = append(items, ReviewItem{
			ID:         r.ID,
			AuthorName: r.AuthorName,
			Content:    r.Content,
			Rating:     r.Rating,
			CreatedAt:  r.CreatedAt,
		})
	}
	respondOK(c, "reviews retrieved", ReviewListResponse{Reviews: items, Pagination: result.Pagination})
}

// Top handles GET /api/books/:book_id/reviews/top?limit=
func (rc *ReviewsController) Top(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", pagination.DefaultTopLimit)
	if !ok {
		return
	}

	ranked, err := rc.reviews.Top(c.Request.Context(), bookID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "top reviews retrieved", TopReviewsResponse{Reviews: toRankedItems(ranked)})
}

// Update handles PATCH /api/reviews/:review_id
func (rc *ReviewsController) Update(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := rc.reviews.Update(c.Request.Context(), auth.GetUserID(c), reviewID, req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "review updated", ReviewUpdatedResponse{ID: review.ID, UpdatedAt: review.UpdatedAt})
}

// Delete handles DELETE /api/reviews/:review_id
func (rc *ReviewsController) Delete(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}
	if err := rc.reviews.Delete(c.Request.Context(), auth.GetUserID(c), reviewID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "review deleted", IDResponse{ID: reviewID})
}

// Like handles POST /api/reviews/:review_id/like
func (rc *ReviewsController) Like(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}
	like, err := rc.reviews.Like(c.Request.Context(), auth.GetUserID(c), reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, "review liked", LikeResponse{ReviewID: like.ReviewID, CreatedAt: like.CreatedAt})
}

// Unlike handles DELETE /api/reviews/:review_id/like
func (rc *ReviewsController) Unlike(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}
	if err := rc.reviews.Unlike(c.Request.Context(), auth.GetUserID(c), reviewID); err != nil {
		respondError(c, err)
		return
	}
	respondOK[any](c, "review unliked", nil)
}

func toRankedItems(ranked []entities.RankedReview) []RankedReviewItem {
	items := make([]RankedReviewItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, RankedReviewItem{
			ID:         r.ID,
			AuthorName: r.AuthorName,
			Content:    r.Content,
			Rating:     r.Rating,
			LikeCount:  r.LikeCount,
			CreatedAt:  r.CreatedAt,
		})
	}
	return items
}
