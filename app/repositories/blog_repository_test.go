package repositories

import (
	"testing"

	"blogadmin/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepositoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBlogRepository(db)
	owner := makeUser(t, db, "owner")

	blog := makeBlog(t, db, owner, "Tech Talk")

	t.Run("get with owner joined", func(t *testing.T) {
		got, err := repo.GetByID(blog.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Owner)
		assert.Equal(t, "owner", got.Owner.Username)
	})

	t.Run("update", func(t *testing.T) {
		blog.Slug = "tech-talk"
		require.NoError(t, repo.Update(blog))
		got, err := repo.GetByID(blog.ID)
		require.NoError(t, err)
		assert.Equal(t, "tech-talk", got.Slug)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(424242)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestBlogDeleteCascadesPosts(t *testing.T) {
	db := setupTestDB(t)
	blogs := NewGormBlogRepository(db)
	posts := NewGormPostRepository(db)

	owner := makeUser(t, db, "owner")
	blog := makeBlog(t, db, owner, "Tech")
	p1 := makePost(t, db, blog, "one")
	p2 := makePost(t, db, blog, "two")

	require.NoError(t, blogs.Delete(blog.ID))

	for _, id := range []uint{p1.ID, p2.ID} {
		_, err := posts.GetByID(id)
		assert.ErrorIs(t, err, ErrNotFound)
	}

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}
