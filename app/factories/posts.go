package factories

import (
	"fmt"
	"strings"

	"blogadmin/app/models"
	"blogadmin/app/repositories"
)

// PostFactory builds fake posts, generating a blog and an author
// through the other factories when none are pinned.
type PostFactory struct {
	posts repositories.PostRepository
	blogs *BlogFactory
	users *UserFactory
}

// NewPostFactory creates a new PostFactory
func NewPostFactory(posts repositories.PostRepository, blogs *BlogFactory, users *UserFactory) *PostFactory {
	return &PostFactory{posts: posts, blogs: blogs, users: users}
}

// PostOverrides are the fields a caller may pin.
type PostOverrides struct {
	Title  string
	Blog   *models.Blog
	Author *models.User
}

// Create builds and persists one post.
func (f *PostFactory) Create(o PostOverrides) (*models.Post, error) {
	p := models.NewPost()
	p.Title = o.Title
	if p.Title == "" {
		// short phrase, trailing period stripped
		p.Title = strings.TrimSuffix(fake.Lorem().Sentence(4), ".")
	}
	p.Body = fake.Lorem().Paragraph(3)

	blog := o.Blog
	if blog == nil {
		var err error
		blog, err = f.blogs.Create(BlogOverrides{})
		if err != nil {
			return nil, err
		}
	}
	p.BlogID = blog.ID

	author := o.Author
	if author == nil {
		var err error
		author, err = f.users.Create(UserOverrides{})
		if err != nil {
			return nil, err
		}
	}
	p.AuthorID = &author.ID
	p.Created = randomPastTime()

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("generated post is invalid: %w", err)
	}
	if err := f.posts.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateBatch builds count posts in one call.
func (f *PostFactory) CreateBatch(count int, o PostOverrides) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		p, err := f.Create(o)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
