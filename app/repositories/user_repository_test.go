package repositories

import (
	"testing"

	"blogadmin/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	u := makeUser(t, db, "alice")
	require.NotZero(t, u.ID)

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetByUsername("alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.GetByID(9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		u.FirstName = "Alice"
		require.NoError(t, repo.Update(u))
		got, err := repo.GetByID(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.FirstName)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(u.ID))
		_, err := repo.GetByID(u.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(u.ID), ErrNotFound)
	})
}

func TestUserGetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	first := models.NewUser()
	first.Username = "bob"
	first.Email = "bob@example.com"
	got, created, err := repo.GetOrCreate(first)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotZero(t, got.ID)

	// same natural key: reused, not duplicated
	dup := models.NewUser()
	dup.Username = "bob"
	dup.Email = "bob@example.com"
	dup.FirstName = "Other"
	again, created, err := repo.GetOrCreate(dup)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, got.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUserSetActiveIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	a := makeUser(t, db, "a")
	b := makeUser(t, db, "b")
	ids := []uint{a.ID, b.ID}

	_, err := repo.SetActive(ids, false)
	require.NoError(t, err)
	_, err = repo.SetActive(ids, false)
	require.NoError(t, err)

	for _, id := range ids {
		got, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	}

	_, err = repo.SetActive(ids, true)
	require.NoError(t, err)
	for _, id := range ids {
		got, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
	}
}

func TestUserDeleteCascadesBlogsAndClearsAuthors(t *testing.T) {
	db := setupTestDB(t)
	users := NewGormUserRepository(db)
	posts := NewGormPostRepository(db)

	owner := makeUser(t, db, "owner")
	author := makeUser(t, db, "author")
	blog := makeBlog(t, db, owner, "Tech")

	p := models.NewPost()
	p.BlogID = blog.ID
	p.AuthorID = &author.ID
	p.Title = "Hello"
	p.Body = "text"
	require.NoError(t, posts.Create(p))

	// deleting the author nulls the reference but keeps the post
	require.NoError(t, users.Delete(author.ID))
	got, err := posts.GetByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AuthorID)

	// deleting the owner cascades to the blog and its posts
	require.NoError(t, users.Delete(owner.ID))
	_, err = NewGormBlogRepository(db).GetByID(blog.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = posts.GetByID(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestForeignKeysHoldOnFreshConnections(t *testing.T) {
	db := setupTestDB(t)
	users := NewGormUserRepository(db)
	posts := NewGormPostRepository(db)

	owner := makeUser(t, db, "owner")
	author := makeUser(t, db, "author")
	blog := makeBlog(t, db, owner, "Tech")

	p := models.NewPost()
	p.BlogID = blog.ID
	p.AuthorID = &author.ID
	p.Title = "Hello"
	p.Body = "text"
	require.NoError(t, posts.Create(p))

	// retire the warm connections so the deletes below run on ones
	// the pool opens afterwards
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(0)

	require.NoError(t, users.Delete(author.ID))
	got, err := posts.GetByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AuthorID)

	require.NoError(t, users.Delete(owner.ID))
	_, err = posts.GetByID(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
