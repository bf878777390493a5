package repositories

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagrop_cms/internal/models"
)

func newArticle(title string) *models.Article {
	return &models.Article{
		Title:           title,
		Content:         "content of " + title,
		PublicationDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func articleIDs(t *testing.T, repo ArticleRepository) ([]int64, []string) {
	t.Helper()
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	var ids []int64
	var titles []string
	for _, a := range list {
		ids = append(ids, a.ID)
		titles = append(titles, a.Title)
	}
	return ids, titles
}

func TestArticleRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewGormArticleRepository(setupTestDB(t))

	for _, title := range []string{"a", "b", "c"} {
		created, err := repo.Create(ctx, newArticle(title))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	}

	ids, titles := articleIDs(t, repo)
	assert.Equal(t, []int64{3, 2, 1}, ids)
	assert.Equal(t, []string{"c", "b", "a"}, titles)
}

func TestArticleRepository_DeleteRenumbers(t *testing.T) {
	ctx := context.Background()
	repo := NewGormArticleRepository(setupTestDB(t))

	for _, title := range []string{"a", "b", "c", "d"} {
		_, err := repo.Create(ctx, newArticle(title))
		require.NoError(t, err)
	}

	deleted, err := repo.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", deleted.Title)

	ids, titles := articleIDs(t, repo)
	assert.Equal(t, []int64{3, 2, 1}, ids)
	assert.Equal(t, []string{"d", "c", "a"}, titles)

	// the next insert lands on max id even though the sequence has moved on
	created, err := repo.Create(ctx, newArticle("e"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	latest, err := repo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "e", latest.Title)
}

func TestArticleRepository_DeleteOnlyArticle(t *testing.T) {
	ctx := context.Background()
	repo := NewGormArticleRepository(setupTestDB(t))

	_, err := repo.Create(ctx, newArticle("only"))
	require.NoError(t, err)

	_, err = repo.Delete(ctx, 1)
	require.NoError(t, err)

	ids, _ := articleIDs(t, repo)
	assert.Empty(t, ids)
}

func TestArticleRepository_DeleteMissing(t *testing.T) {
	repo := NewGormArticleRepository(setupTestDB(t))

	_, err := repo.Delete(context.Background(), 42)
	assert.True(t, IsNotFound(err))
}

func TestArticleRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewGormArticleRepository(setupTestDB(t))

	_, err := repo.Create(ctx, newArticle("draft"))
	require.NoError(t, err)

	title := "final"
	image := "/uploads/1-photo.png"
	updated, err := repo.Update(ctx, 1, models.ArticleUpdate{Title: &title, ImageURL: &image})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "content of draft", updated.Content)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, image, *updated.ImageURL)

	unchanged, err := repo.Update(ctx, 1, models.ArticleUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "final", unchanged.Title)

	_, err = repo.Update(ctx, 7, models.ArticleUpdate{Title: &title})
	assert.True(t, IsNotFound(err))
}

func TestArticleRepository_RandomCreatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewGormArticleRepository(setupTestDB(t))
	rng := rand.New(rand.NewSource(7))

	var expected []string // titles in ascending id order
	for step := 0; step < 60; step++ {
		if len(expected) > 0 && rng.Intn(3) == 0 {
			victim := rng.Intn(len(expected))
			_, err := repo.Delete(ctx, int64(victim+1))
			require.NoError(t, err)
			expected = append(expected[:victim], expected[victim+1:]...)
		} else {
			title := fmt.Sprintf("article-%d", step)
			created, err := repo.Create(ctx, newArticle(title))
			require.NoError(t, err)
			expected = append(expected, title)
			assert.Equal(t, int64(len(expected)), created.ID)
		}

		ids, titles := articleIDs(t, repo)
		for i := range ids {
			pos := len(ids) - i
			assert.Equal(t, int64(pos), ids[i])
			assert.Equal(t, expected[pos-1], titles[i])
		}
	}
}

func TestArticleRepository_FailedRenumberRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormArticleRepository(db)

	for _, title := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, newArticle(title))
		require.NoError(t, err)
	}

	require.NoError(t, db.Exec(`CREATE TRIGGER block_renumber BEFORE UPDATE OF id ON articles
		WHEN NEW.id = 2 BEGIN SELECT RAISE(ABORT, 'renumber blocked'); END`).Error)

	_, err := repo.Delete(ctx, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renumber")

	ids, titles := articleIDs(t, repo)
	assert.Equal(t, []int64{3, 2, 1}, ids)
	assert.Equal(t, []string{"c", "b", "a"}, titles)
}

func TestArticleRepository_Renumber(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormArticleRepository(db)

	for _, id := range []int64{4, 10, 11} {
		a := newArticle(fmt.Sprintf("raw-%d", id))
		a.ID = id
		require.NoError(t, db.Create(a).Error)
	}

	require.NoError(t, repo.Renumber(ctx))

	ids, titles := articleIDs(t, repo)
	assert.Equal(t, []int64{3, 2, 1}, ids)
	assert.Equal(t, []string{"raw-11", "raw-10", "raw-4"}, titles)
}
