package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB), db.DB
}

func TestRepository_AddItem_Duplicate(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, db.Create(book).Error)

	item := &entities.LibraryItem{UserID: 1, BookID: book.ID}
	require.NoError(t, repo.AddItem(ctx, item))
	assert.NotZero(t, item.ID)

	err := repo.AddItem(ctx, &entities.LibraryItem{UserID: 1, BookID: book.ID})
	assert.ErrorIs(t, err, database.ErrDuplicate)

	require.NoError(t, repo.AddItem(ctx, &entities.LibraryItem{UserID: 2, BookID: book.ID}))
}

func TestRepository_ListForUser(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	older := &entities.Book{Title: "Older", Author: "A"}
	newer := &entities.Book{Title: "Newer", Author: "B"}
	deleted := &entities.Book{Title: "Deleted", Author: "C"}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)
	require.NoError(t, db.Create(deleted).Error)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.AddItem(ctx, &entities.LibraryItem{UserID: 1, BookID: older.ID, CreatedAt: base}))
	require.NoError(t, repo.AddItem(ctx, &entities.LibraryItem{UserID: 1, BookID: newer.ID, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.AddItem(ctx, &entities.LibraryItem{UserID: 1, BookID: deleted.ID, CreatedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.AddItem(ctx, &entities.LibraryItem{UserID: 2, BookID: older.ID}))
	require.NoError(t, db.Delete(deleted).Error)

	items, err := repo.ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer", items[0].Book.Title)
	assert.Equal(t, "Older", items[1].Book.Title)
}
