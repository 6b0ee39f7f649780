package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlogValidation(t *testing.T) {
	tests := []struct {
		name    string
		blog    *Blog
		wantErr bool
	}{
		{
			name:    "valid blog",
			blog:    &Blog{OwnerID: 1, Name: "My Blog", Slug: "my-blog"},
			wantErr: false,
		},
		{
			name:    "blank slug allowed",
			blog:    &Blog{OwnerID: 1, Name: "My Blog"},
			wantErr: false,
		},
		{
			name:    "missing owner",
			blog:    &Blog{Name: "My Blog"},
			wantErr: true,
		},
		{
			name:    "missing name",
			blog:    &Blog{OwnerID: 1},
			wantErr: true,
		},
		{
			name:    "slug with uppercase",
			blog:    &Blog{OwnerID: 1, Name: "My Blog", Slug: "My-Blog"},
			wantErr: true,
		},
		{
			name:    "slug with spaces",
			blog:    &Blog{OwnerID: 1, Name: "My Blog", Slug: "my blog"},
			wantErr: true,
		},
		{
			name:    "slug with non-ascii",
			blog:    &Blog{OwnerID: 1, Name: "My Blog", Slug: "мой-блог"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.blog.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBlogString(t *testing.T) {
	assert.Equal(t, "Tech [tech]", (&Blog{Name: "Tech", Slug: "tech"}).String())
	assert.Equal(t, "Tech", (&Blog{Name: "Tech"}).String())
}

func TestNewBlogDefaults(t *testing.T) {
	assert.True(t, NewBlog().IsPublished)
}
