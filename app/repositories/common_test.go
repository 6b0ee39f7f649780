package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"blogadmin/app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func makeUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := models.NewUser()
	u.Username = username
	u.Email = username + "@example.com"
	u.FirstName = "Test"
	u.LastName = "User"
	u.DateJoined = time.Date(2020, 3, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, NewGormUserRepository(db).Create(u))
	return u
}

func makeBlog(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Blog {
	t.Helper()
	b := models.NewBlog()
	b.OwnerID = owner.ID
	b.Name = name
	require.NoError(t, NewGormBlogRepository(db).Create(b))
	return b
}

func makePost(t *testing.T, db *gorm.DB, blog *models.Blog, title string) *models.Post {
	t.Helper()
	p := models.NewPost()
	p.BlogID = blog.ID
	p.Title = title
	p.Body = "body of " + title
	require.NoError(t, NewGormPostRepository(db).Create(p))
	return p
}
