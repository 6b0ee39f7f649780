package repositories

import (
	"testing"
	"time"

	"blogadmin/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnRef(t *testing.T) {
	assert.Equal(t, `"posts"."title"`, ColumnRef("posts", "title"))
	assert.Equal(t, `"Author"."username"`, ColumnRef("posts", "author__username"))
	assert.Equal(t, `"Owner"."first_name"`, ColumnRef("blogs", "owner__first_name"))
}

func TestRelationName(t *testing.T) {
	assert.Equal(t, "Author", RelationName("author__username"))
	assert.Equal(t, "", RelationName("title"))
}

func TestListSearchAcrossRelations(t *testing.T) {
	db := setupTestDB(t)
	posts := NewGormPostRepository(db)

	owner := makeUser(t, db, "zorro")
	blog := makeBlog(t, db, owner, "Fencing")
	makePost(t, db, blog, "First strike")

	other := makeUser(t, db, "plain")
	otherBlog := makeBlog(t, db, other, "Cooking")
	makePost(t, db, otherBlog, "Bread")

	got, err := posts.List(ListOptions{
		Search:       "zorro",
		SearchFields: []string{"title", "author__username"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "First strike", got[0].Title)

	got, err = posts.List(ListOptions{
		Search:       "Bread",
		SearchFields: []string{"title", "author__username"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bread", got[0].Title)
}

func TestListOrderByConcatExpression(t *testing.T) {
	db := setupTestDB(t)
	users := NewGormUserRepository(db)

	for _, n := range []struct{ username, first, last string }{
		{"u1", "Zoe", "Adams"},
		{"u2", "Ann", "Young"},
		{"u3", "Ann", "Brown"},
	} {
		u := models.NewUser()
		u.Username = n.username
		u.Email = n.username + "@example.com"
		u.FirstName = n.first
		u.LastName = n.last
		require.NoError(t, users.Create(u))
	}

	got, err := users.List(ListOptions{
		OrderBy: `"users"."first_name" || ' ' || "users"."last_name"`,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Ann Brown", got[0].FullName())
	assert.Equal(t, "Ann Young", got[1].FullName())
	assert.Equal(t, "Zoe Adams", got[2].FullName())
}

func TestListDateDrilldown(t *testing.T) {
	db := setupTestDB(t)
	blogs := NewGormBlogRepository(db)
	owner := makeUser(t, db, "owner")

	mk := func(name string, created time.Time) {
		b := models.NewBlog()
		b.OwnerID = owner.ID
		b.Name = name
		b.Created = created
		require.NoError(t, blogs.Create(b))
	}
	mk("march", time.Date(2023, 3, 5, 10, 0, 0, 0, time.UTC))
	mk("april", time.Date(2023, 4, 5, 10, 0, 0, 0, time.UTC))
	mk("old", time.Date(2019, 3, 5, 10, 0, 0, 0, time.UTC))

	got, err := blogs.List(ListOptions{DateField: "created", Year: 2023})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = blogs.List(ListOptions{DateField: "created", Year: 2023, Month: 3})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "march", got[0].Name)

	got, err = blogs.List(ListOptions{DateField: "created", Year: 2023, Month: 3, Day: 5})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListFilterAndPaging(t *testing.T) {
	db := setupTestDB(t)
	posts := NewGormPostRepository(db)
	owner := makeUser(t, db, "owner")
	blog := makeBlog(t, db, owner, "Tech")

	for i := 0; i < 5; i++ {
		p := makePost(t, db, blog, "post")
		if i%2 == 0 {
			p.IsPublished = false
			require.NoError(t, posts.Update(p))
		}
	}

	got, err := posts.List(ListOptions{
		Filters: []Clause{{Cond: `"posts"."is_published" = ?`, Args: []any{true}}},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = posts.List(ListOptions{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
