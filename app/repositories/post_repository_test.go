package repositories

import (
	"testing"

	"blogadmin/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostDefaultsAuthorToBlogOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPostRepository(db)

	owner := makeUser(t, db, "owner")
	blog := makeBlog(t, db, owner, "Tech")

	// no author given: the create hook resolves the blog's owner
	p := models.NewPost()
	p.BlogID = blog.ID
	p.Title = "Defaulted"
	p.Body = "text"
	require.NoError(t, repo.Create(p))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AuthorID)
	assert.Equal(t, owner.ID, *got.AuthorID)

	// explicit author wins
	author := makeUser(t, db, "author")
	p2 := models.NewPost()
	p2.BlogID = blog.ID
	p2.AuthorID = &author.ID
	p2.Title = "Explicit"
	p2.Body = "text"
	require.NoError(t, repo.Create(p2))

	got, err = repo.GetByID(p2.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AuthorID)
	assert.Equal(t, author.ID, *got.AuthorID)
}

func TestPostCreateUnknownBlogFails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPostRepository(db)

	p := models.NewPost()
	p.BlogID = 12345
	p.Title = "Orphan"
	p.Body = "text"
	assert.Error(t, repo.Create(p))
}

func TestPostGetByIDJoinsRelations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPostRepository(db)

	owner := makeUser(t, db, "owner")
	blog := makeBlog(t, db, owner, "Tech")
	p := makePost(t, db, blog, "Joined")

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Blog)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Tech", got.Blog.Name)
	assert.Equal(t, "owner", got.Author.Username)
}

func TestPostListByBlog(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPostRepository(db)

	owner := makeUser(t, db, "owner")
	blog := makeBlog(t, db, owner, "Tech")
	other := makeBlog(t, db, owner, "Other")
	makePost(t, db, blog, "one")
	makePost(t, db, blog, "two")
	makePost(t, db, other, "elsewhere")

	got, err := repo.ListByBlog(blog.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
