package models

import (
	"fmt"

	"gorm.io/gorm"
)

// NewPost returns a post with the defaults a fresh record gets.
func NewPost() *Post {
	return &Post{IsPublished: true}
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate defaults the author to the blog's owner. Living in the
// persistence hook rather than a form means every code path that saves
// a post (admin, factory, script) gets the same default.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.AuthorID != nil {
		return nil
	}
	if p.Blog != nil && p.Blog.OwnerID != 0 {
		owner := p.Blog.OwnerID
		p.AuthorID = &owner
		return nil
	}
	var blog Blog
	if err := tx.Select("owner_id").First(&blog, p.BlogID).Error; err != nil {
		return fmt.Errorf("resolving default author for post: %w", err)
	}
	p.AuthorID = &blog.OwnerID
	return nil
}

func (p *Post) String() string {
	return fmt.Sprintf("%s [%d]", p.Title, p.ID)
}
