package books

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_books.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB), db.DB
}

func TestRepository_CreateAndGetActiveBook(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"}
	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotZero(t, book.ID)

	got, err := repo.GetActiveBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
}

func TestRepository_GetActiveBook_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.GetActiveBook(context.Background(), 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_SoftDeleteBook(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Gone", Author: "Someone"}
	require.NoError(t, repo.CreateBook(ctx, book))

	require.NoError(t, repo.SoftDeleteBook(ctx, book.ID))

	_, err := repo.GetActiveBook(ctx, book.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	// The row is still there, only marked.
	var raw entities.Book
	require.NoError(t, db.Unscoped().First(&raw, book.ID).Error)
	assert.True(t, raw.DeletedAt.Valid)

	err = repo.SoftDeleteBook(ctx, book.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_ListActiveBooks(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	var ids []uint
	for _, title := range []string{"A", "B", "C"} {
		book := &entities.Book{Title: title, Author: "X"}
		require.NoError(t, repo.CreateBook(ctx, book))
		ids = append(ids, book.ID)
	}
	require.NoError(t, repo.SoftDeleteBook(ctx, ids[1]))

	books, total, err := repo.ListActiveBooks(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, books, 2)
	for _, b := range books {
		assert.NotEqual(t, ids[1], b.ID)
	}

	books, total, err = repo.ListActiveBooks(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Empty(t, books)
}
