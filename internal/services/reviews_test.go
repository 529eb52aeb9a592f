package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestReviewService_Create(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	book := env.book(t, "Dune")
	u := env.user(t, "u@example.com", "U")

	review, err := env.reviews.Create(ctx, u.ID, book.ID, "Great", 5)
	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.False(t, review.CreatedAt.IsZero())

	t.Run("second review for same book is a duplicate", func(t *testing.T) {
		_, err := env.reviews.Create(ctx, u.ID, book.ID, "Again", 4)
		appErr := requireAppError(t, err, CodeDuplicateReview)
		assert.Equal(t, 409, appErr.Status)
		assert.Equal(t, book.ID, appErr.Details["book_id"])

		var count int64
		require.NoError(t, env.db.Model(&entities.Review{}).Where("book_id = ?", book.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := env.reviews.Create(ctx, u.ID, 999, "Text", 3)
		appErr := requireAppError(t, err, CodeBookNotFound)
		assert.Equal(t, 404, appErr.Status)
	})

	t.Run("soft-deleted book", func(t *testing.T) {
		gone := env.book(t, "Gone")
		require.NoError(t, env.books.SoftDeleteBook(ctx, gone.ID))
		_, err := env.reviews.Create(ctx, u.ID, gone.ID, "Text", 3)
		requireAppError(t, err, CodeBookNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		other := env.book(t, "Other")
		_, err := env.reviews.Create(ctx, u.ID, other.ID, "", 3)
		requireAppError(t, err, CodeInvalidRequest)
		_, err = env.reviews.Create(ctx, u.ID, other.ID, "ok", 0)
		requireAppError(t, err, CodeInvalidRequest)
		_, err = env.reviews.Create(ctx, u.ID, other.ID, "ok", 6)
		requireAppError(t, err, CodeInvalidRequest)
	})

	t.Run("whitespace content is non-empty", func(t *testing.T) {
		spaced := env.book(t, "Spaced")
		review, err := env.reviews.Create(ctx, u.ID, spaced.ID, " ", 3)
		require.NoError(t, err)
		assert.Equal(t, " ", review.Content)
	})
}

func TestReviewService_Update(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	book := env.book(t, "Dune")
	owner := env.user(t, "owner@example.com", "Owner")
	other := env.user(t, "other@example.com", "Other")

	review, err := env.reviews.Create(ctx, owner.ID, book.ID, "Original", 3)
	require.NoError(t, err)
	createdUpdatedAt := review.UpdatedAt

	t.Run("rating only keeps content", func(t *testing.T) {
		updated, err := env.reviews.Update(ctx, owner.ID, review.ID, nil, ptr(5))
		require.NoError(t, err)
		assert.Equal(t, "Original", updated.Content)
		assert.Equal(t, 5, updated.Rating)
		assert.False(t, updated.UpdatedAt.Before(createdUpdatedAt))

		var stored entities.Review
		require.NoError(t, env.db.First(&stored, review.ID).Error)
		assert.Equal(t, "Original", stored.Content)
		assert.Equal(t, 5, stored.Rating)
	})

	t.Run("no fields still stamps updated_at", func(t *testing.T) {
		before := time.Now()
		updated, err := env.reviews.Update(ctx, owner.ID, review.ID, nil, nil)
		require.NoError(t, err)
		assert.False(t, updated.UpdatedAt.Before(before))
	})

	t.Run("non-owner is forbidden and nothing changes", func(t *testing.T) {
		_, err := env.reviews.Update(ctx, other.ID, review.ID, ptr("Hijacked"), ptr(1))
		appErr := requireAppError(t, err, CodeForbidden)
		assert.Equal(t, 403, appErr.Status)

		var stored entities.Review
		require.NoError(t, env.db.First(&stored, review.ID).Error)
		assert.Equal(t, "Original", stored.Content)
		assert.Equal(t, 5, stored.Rating)
	})

	t.Run("missing review", func(t *testing.T) {
		_, err := env.reviews.Update(ctx, owner.ID, 999, ptr("x"), nil)
		requireAppError(t, err, CodeReviewNotFound)
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := env.reviews.Update(ctx, owner.ID, review.ID, ptr(""), nil)
		requireAppError(t, err, CodeInvalidRequest)
		_, err = env.reviews.Update(ctx, owner.ID, review.ID, nil, ptr(9))
		requireAppError(t, err, CodeInvalidRequest)
	})
}

func TestReviewService_Delete(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	book := env.book(t, "Dune")
	owner := env.user(t, "owner@example.com", "Owner")
	other := env.user(t, "other@example.com", "Other")

	review, err := env.reviews.Create(ctx, owner.ID, book.ID, "Text", 4)
	require.NoError(t, err)
	_, err = env.reviews.Like(ctx, other.ID, review.ID)
	require.NoError(t, err)

	requireAppError(t, env.reviews.Delete(ctx, other.ID, review.ID), CodeForbidden)
	require.NoError(t, env.reviews.Delete(ctx, owner.ID, review.ID))
	requireAppError(t, env.reviews.Delete(ctx, owner.ID, review.ID), CodeReviewNotFound)

	var likes int64
	require.NoError(t, env.db.Model(&entities.ReviewLike{}).Count(&likes).Error)
	assert.Zero(t, likes)

	// The owner may review the book again once the old review is gone.
	_, err = env.reviews.Create(ctx, owner.ID, book.ID, "Second thoughts", 2)
	assert.NoError(t, err)
}

func TestReviewService_LikeUnlike(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	book := env.book(t, "Dune")
	author := env.user(t, "author@example.com", "Author")
	fan := env.user(t, "fan@example.com", "Fan")

	review, err := env.reviews.Create(ctx, author.ID, book.ID, "Text", 4)
	require.NoError(t, err)

	like, err := env.reviews.Like(ctx, fan.ID, review.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, like.ReviewID)

	_, err = env.reviews.Like(ctx, fan.ID, review.ID)
	requireAppError(t, err, CodeDuplicateLike)

	require.NoError(t, env.reviews.Unlike(ctx, fan.ID, review.ID))
	requireAppError(t, env.reviews.Unlike(ctx, fan.ID, review.ID), CodeLikeNotFound)

	_, err = env.reviews.Like(ctx, fan.ID, review.ID)
	require.NoError(t, err)

	_, err = env.reviews.Like(ctx, fan.ID, 999)
	requireAppError(t, err, CodeReviewNotFound)

	assert.Equal(t, []string{"review_create", "review_like", "review_unlike", "review_like"}, env.audit.actions())
}

func TestReviewService_List(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	book := env.book(t, "Dune")

	t.Run("empty book reports one page", func(t *testing.T) {
		page, err := env.reviews.List(ctx, book.ID, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Reviews)
		assert.NotNil(t, page.Reviews)
		assert.Equal(t, 1, page.Pagination.Page)
		assert.Equal(t, 1, page.Pagination.TotalPages)
		assert.Equal(t, int64(0), page.Pagination.TotalElements)
	})

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var ids []uint
	for i, name := range []string{"Ann", "Bob", "Cid"} {
		u := env.user(t, name+"@example.com", name)
		r := &entities.Review{UserID: u.ID, BookID: book.ID, Content: "c", Rating: 3, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, env.db.Create(r).Error)
		ids = append(ids, r.ID)
	}

	t.Run("newest first with author names", func(t *testing.T) {
		page, err := env.reviews.List(ctx, book.ID, 1, 2)
		require.NoError(t, err)
		require.Len(t, page.Reviews, 2)
		assert.Equal(t, ids[2], page.Reviews[0].ID)
		assert.Equal(t, "Cid", page.Reviews[0].AuthorName)
		assert.Equal(t, ids[1], page.Reviews[1].ID)
		assert.Equal(t, 2, page.Pagination.TotalPages)
		assert.Equal(t, int64(3), page.Pagination.TotalElements)
	})

	t.Run("page beyond last is empty with same metadata", func(t *testing.T) {
		page, err := env.reviews.List(ctx, book.ID, 5, 2)
		require.NoError(t, err)
		assert.Empty(t, page.Reviews)
		assert.Equal(t, 5, page.Pagination.Page)
		assert.Equal(t, 2, page.Pagination.TotalPages)
		assert.Equal(t, int64(3), page.Pagination.TotalElements)
	})

	t.Run("huge page is past the end", func(t *testing.T) {
		page, err := env.reviews.List(ctx, book.ID, 922337203685477590, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Reviews)
		assert.Equal(t, 1, page.Pagination.TotalPages)
		assert.Equal(t, int64(3), page.Pagination.TotalElements)
	})

	t.Run("invalid params name the rejected field", func(t *testing.T) {
		_, err := env.reviews.List(ctx, book.ID, 0, 10)
		appErr := requireAppError(t, err, CodeInvalidRequest)
		assert.Equal(t, "page", appErr.Details["field"])

		_, err = env.reviews.List(ctx, book.ID, 1, 101)
		appErr = requireAppError(t, err, CodeInvalidRequest)
		assert.Equal(t, "size", appErr.Details["field"])
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := env.reviews.List(ctx, 999, 1, 10)
		requireAppError(t, err, CodeBookNotFound)
	})
}

func TestReviewService_Top(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	book := env.book(t, "Dune")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mk := func(name string, offset time.Duration) *entities.Review {
		u := env.user(t, name+"@example.com", name)
		r := &entities.Review{UserID: u.ID, BookID: book.ID, Content: name, Rating: 4, CreatedAt: base.Add(offset)}
		require.NoError(t, env.db.Create(r).Error)
		return r
	}
	a := mk("A", 0)
	b := mk("B", time.Hour)
	c := mk("C", 2*time.Hour)

	likers := []*entities.User{env.user(t, "l1@example.com", "L1"), env.user(t, "l2@example.com", "L2")}
	for _, r := range []*entities.Review{a, b} {
		for _, l := range likers {
			_, err := env.reviews.Like(ctx, l.ID, r.ID)
			require.NoError(t, err)
		}
	}
	_, err := env.reviews.Like(ctx, likers[0].ID, c.ID)
	require.NoError(t, err)

	t.Run("tie broken by recency", func(t *testing.T) {
		top, err := env.reviews.Top(ctx, book.ID, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, b.ID, top[0].ID)
		assert.Equal(t, "B", top[0].AuthorName)
		assert.Equal(t, a.ID, top[1].ID)
		assert.Equal(t, int64(2), top[1].LikeCount)
	})

	t.Run("zero-like review included and unknown author", func(t *testing.T) {
		orphan := &entities.Review{UserID: 4242, BookID: book.ID, Content: "ghost", Rating: 1, CreatedAt: base}
		require.NoError(t, env.db.Create(orphan).Error)

		top, err := env.reviews.Top(ctx, book.ID, 10)
		require.NoError(t, err)
		require.Len(t, top, 4)
		assert.Equal(t, c.ID, top[2].ID)
		assert.Equal(t, orphan.ID, top[3].ID)
		assert.Equal(t, int64(0), top[3].LikeCount)
		assert.Equal(t, UnknownAuthor, top[3].AuthorName)
	})

	t.Run("limit bounds", func(t *testing.T) {
		_, err := env.reviews.Top(ctx, book.ID, 0)
		requireAppError(t, err, CodeInvalidRequest)
		_, err = env.reviews.Top(ctx, book.ID, 51)
		appErr := requireAppError(t, err, CodeInvalidRequest)
		assert.Equal(t, "limit", appErr.Details["field"])
	})

	t.Run("empty book", func(t *testing.T) {
		empty := env.book(t, "Empty")
		top, err := env.reviews.Top(ctx, empty.ID, 10)
		require.NoError(t, err)
		assert.NotNil(t, top)
		assert.Empty(t, top)
	})
}
