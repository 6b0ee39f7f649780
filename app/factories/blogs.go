package factories

import (
	"fmt"

	"blogadmin/app/models"
	"blogadmin/app/repositories"

	"github.com/gosimple/slug"
)

// BlogFactory builds fake blogs, generating an owner through the user
// factory when none is pinned.
type BlogFactory struct {
	blogs repositories.BlogRepository
	users *UserFactory
}

// NewBlogFactory creates a new BlogFactory
func NewBlogFactory(blogs repositories.BlogRepository, users *UserFactory) *BlogFactory {
	return &BlogFactory{blogs: blogs, users: users}
}

// BlogOverrides are the fields a caller may pin.
type BlogOverrides struct {
	Name  string
	Owner *models.User
}

// Create builds and persists one blog. The slug is derived from the
// name: transliterated to Latin script first, then lowercased and
// hyphenated.
func (f *BlogFactory) Create(o BlogOverrides) (*models.Blog, error) {
	b := models.NewBlog()
	b.Name = o.Name
	if b.Name == "" {
		b.Name = fake.Company().CatchPhrase()
	}
	b.Slug = slug.Make(b.Name)

	owner := o.Owner
	if owner == nil {
		var err error
		owner, err = f.users.Create(UserOverrides{})
		if err != nil {
			return nil, err
		}
	}
	b.OwnerID = owner.ID
	b.Owner = owner
	b.Created = randomPastTime()

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("generated blog is invalid: %w", err)
	}
	if err := f.blogs.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBatch builds count blogs in one call.
func (f *BlogFactory) CreateBatch(count int, o BlogOverrides) ([]*models.Blog, error) {
	blogs := make([]*models.Blog, 0, count)
	for i := 0; i < count; i++ {
		b, err := f.Create(o)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, nil
}
