package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/pagination"
)

// UnknownAuthor is shown when a review's author cannot be resolved.
const UnknownAuthor = "Unknown"

// ReviewPage is one page of a book's reviews in chronological order.
type ReviewPage struct {
	Reviews    []entities.RankedReview
	Pagination pagination.Meta
}

// ReviewService implements review creation, editing, likes and the two
// ordered views over a book's reviews.
type ReviewService struct {
	books   BookStore
	reviews ReviewStore
	users   UserStore
	audit   AuditLogger
}

func NewReviewService(books BookStore, reviews ReviewStore, users UserStore, audit AuditLogger) *ReviewService {
	return &ReviewService{books: books, reviews: reviews, users: users, audit: audit}
}

// Create adds userID's review of bookID.
func (s *ReviewService) Create(ctx context.Context, userID, bookID uint, content string, rating int) (*entities.Review, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if err := requireActiveBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}

	review := &entities.Review{
		UserID:  userID,
		BookID:  bookID,
		Content: content,
		Rating:  rating,
	}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateReview(bookID)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.record(userID, entities.AuditEventReview, "review_create", review.ID, fmt.Sprintf("Reviewed book %d", bookID))
	return review, nil
}

// Update changes the supplied fields of a review owned by userID. Omitted
// fields keep their value; updated_at is always refreshed.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, content *string, rating *int) (*entities.Review, error) {
	if content != nil {
		if err := validateContent(*content); err != nil {
			return nil, err
		}
	}
	if rating != nil {
		if err := validateRating(*rating); err != nil {
			return nil, err
		}
	}

	review, err := s.ownedReview(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if content != nil {
		review.Content = *content
	}
	if rating != nil {
		review.Rating = *rating
	}
	if err := s.reviews.UpdateReview(ctx, review); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrReviewNotFound(reviewID)
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.record(userID, entities.AuditEventReview, "review_update", review.ID, fmt.Sprintf("Updated review %d", review.ID))
	return review, nil
}

// Delete removes a review owned by userID along with its likes.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint) error {
	if _, err := s.ownedReview(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrReviewNotFound(reviewID)
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.record(userID, entities.AuditEventReview, "review_delete", reviewID, fmt.Sprintf("Deleted review %d", reviewID))
	return nil
}

// Like records userID's like on a review.
func (s *ReviewService) Like(ctx context.Context, userID, reviewID uint) (*entities.ReviewLike, error) {
	like, err := s.reviews.LikeReview(ctx, userID, reviewID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, ErrReviewNotFound(reviewID)
	case errors.Is(err, database.ErrDuplicate):
		return nil, ErrDuplicateLike(reviewID)
	case err != nil:
		return nil, fmt.Errorf("failed to like review: %w", err)
	}

	s.record(userID, entities.AuditEventLike, "review_like", reviewID, fmt.Sprintf("Liked review %d", reviewID))
	return like, nil
}

// Unlike removes userID's like on a review.
func (s *ReviewService) Unlike(ctx context.Context, userID, reviewID uint) error {
	err := s.reviews.UnlikeReview(ctx, userID, reviewID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrLikeNotFound(reviewID)
	}
	if err != nil {
		return fmt.Errorf("failed to unlike review: %w", err)
	}

	s.record(userID, entities.AuditEventLike, "review_unlike", reviewID, fmt.Sprintf("Unliked review %d", reviewID))
	return nil
}

// List returns one page of a book's reviews, newest first. A page past the
// end yields no reviews but the same pagination metadata.
func (s *ReviewService) List(ctx context.Context, bookID uint, page, size int) (*ReviewPage, error) {
	params, err := pagination.NewParams(page, size, pagination.MaxSize)
	if err != nil {
		return nil, invalidParam(err)
	}
	if err := requireActiveBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}

	total, err := s.reviews.CountByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	var rows []entities.Review
	if !params.PastEnd(total) {
		rows, err = s.reviews.ListByBook(ctx, bookID, params.Size, params.Offset())
		if err != nil {
			return nil, err
		}
	}

	items := make([]entities.RankedReview, 0, len(rows))
	for _, r := range rows {
		items = append(items, entities.RankedReview{
			ID:        r.ID,
			UserID:    r.UserID,
			Content:   r.Content,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
		})
	}
	if err := s.resolveAuthors(ctx, items); err != nil {
		return nil, err
	}

	return &ReviewPage{
		Reviews:    items,
		Pagination: pagination.NewMeta(params, total),
	}, nil
}

// Top returns up to limit reviews of a book ordered by like count, newer
// reviews first among equal counts.
func (s *ReviewService) Top(ctx context.Context, bookID uint, limit int) ([]entities.RankedReview, error) {
	if err := pagination.ValidateLimit(limit, pagination.MaxTopLimit); err != nil {
		return nil, invalidParam(err)
	}
	if err := requireActiveBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}

	ranked, err := s.reviews.TopByLikes(ctx, bookID, limit)
	if err != nil {
		return nil, err
	}
	if ranked == nil {
		ranked = []entities.RankedReview{}
	}
	if err := s.resolveAuthors(ctx, ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

func (s *ReviewService) ownedReview(ctx context.Context, userID, reviewID uint) (*entities.Review, error) {
	review, err := s.reviews.GetReviewByID(ctx, reviewID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrReviewNotFound(reviewID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	if review.UserID != userID {
		return nil, ErrForbidden("review", reviewID)
	}
	return review, nil
}

// resolveAuthors fills AuthorName with one batched lookup.
func (s *ReviewService) resolveAuthors(ctx context.Context, items []entities.RankedReview) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.UserID)
	}
	names, err := s.users.GetDisplayNames(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		name, ok := names[items[i].UserID]
		if !ok {
			name = UnknownAuthor
		}
		items[i].AuthorName = name
	}
	return nil
}

func (s *ReviewService) record(userID uint, eventType entities.AuditEventType, action string, entityID uint, description string) {
	if s.audit == nil {
		return
	}
	s.audit.LogEntity(userID, eventType, action, "review", entityID, description)
}

func validateContent(content string) error {
	if len(content) == 0 {
		return ErrInvalidRequest("content", "content must not be empty")
	}
	return nil
}

func validateRating(rating int) error {
	if rating < entities.MinRating || rating > entities.MaxRating {
		return ErrInvalidRequest("rating", fmt.Sprintf("rating must be between %d and %d", entities.MinRating, entities.MaxRating))
	}
	return nil
}

// requireActiveBook is the existence check every book-scoped operation runs.
func requireActiveBook(ctx context.Context, books BookStore, bookID uint) error {
	_, err := books.GetActiveBook(ctx, bookID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrBookNotFound(bookID)
	}
	if err != nil {
		return fmt.Errorf("failed to load book: %w", err)
	}
	return nil
}
