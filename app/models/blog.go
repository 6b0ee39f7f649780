package models

import "fmt"

// NewBlog returns a blog with the defaults a fresh record gets.
func NewBlog() *Blog {
	return &Blog{IsPublished: true}
}

// Validate checks if the blog meets all validation requirements
func (b *Blog) Validate() error {
	return validate.Struct(b)
}

func (b *Blog) String() string {
	if b.Slug != "" {
		return fmt.Sprintf("%s [%s]", b.Name, b.Slug)
	}
	return b.Name
}
