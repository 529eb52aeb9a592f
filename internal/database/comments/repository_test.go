package comments

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
)

func TestRepository_CreateComment_AllowsMultiplePerBook(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test_comments.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db.DB)
	ctx := context.Background()

	first := &entities.Comment{UserID: 1, BookID: 1, Content: "first"}
	second := &entities.Comment{UserID: 1, BookID: 1, Content: "second"}
	require.NoError(t, repo.CreateComment(ctx, first))
	require.NoError(t, repo.CreateComment(ctx, second))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	list, err := repo.ListByBook(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
}
