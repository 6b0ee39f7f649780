package admin

import (
	"html/template"

	"blogadmin/app/models"
)

// inactiveAuthorStyle visually distinguishes posts whose author is
// deactivated. Presentation only; the data is untouched.
const inactiveAuthorStyle = "text-decoration: line-through; color: grey"

// NewPostAdmin configures the post changelist and change view.
func NewPostAdmin() *ModelAdmin[models.Post] {
	a := &ModelAdmin[models.Post]{
		App:   "content",
		Model: "post",
		Table: "posts",
		New:   models.NewPost,
		PK:    func(p *models.Post) uint { return p.ID },
		Label: func(p *models.Post) string { return p.String() },

		SearchFields: []string{
			"title",
			"author__username",
			"author__first_name",
			"author__last_name",
		},
		DateHierarchy: "created",
		// author and blog render in every list row; join them up
		// front instead of querying per row
		SelectRelated: []string{"Author", "Blog"},
		Ordering:      `"posts"."created" DESC`,
		FKFilters:     []string{"author_id", "blog_id"},

		ListFilters: []Filter{
			&BooleanFilter{Table: "posts", FieldSpec: "is_published"},
			&BooleanFilter{Table: "posts", FieldSpec: "author__is_active", TitleOverride: "author active"},
		},

		// both targets have their own admins with search fields, so
		// the edit form can use the autocomplete widget
		AutocompleteFields: []string{"blog", "author"},
	}

	a.ListDisplay = []Column[models.Post]{
		{
			Name:  "title",
			Title: "title",
			Sort:  `"posts"."title"`,
			Value: func(p *models.Post) any { return p.Title },
			Render: func(site *Site, p *models.Post) template.HTML {
				return link(site.Reverse("admin:content_post_change", p.ID), "", p.String())
			},
		},
		{
			Name:  "author_link",
			Title: "author",
			Sort:  `"Author"."username"`,
			Value: func(p *models.Post) any {
				if p.Author == nil {
					return nil
				}
				return p.Author.Username
			},
			Render: func(site *Site, p *models.Post) template.HTML {
				if p.Author == nil {
					return "-"
				}
				style := ""
				if !p.Author.IsActive {
					style = inactiveAuthorStyle
				}
				return link(site.Reverse("admin:users_user_change", *p.AuthorID), style, p.Author.Username)
			},
		},
		{
			Name:  "blog_link",
			Title: "blog",
			Sort:  `"Blog"."name"`,
			Value: func(p *models.Post) any {
				if p.Blog == nil {
					return nil
				}
				return p.Blog.Name
			},
			Render: func(site *Site, p *models.Post) template.HTML {
				if p.Blog == nil {
					return "-"
				}
				return link(site.Reverse("admin:content_blog_change", p.BlogID), "", p.Blog.String())
			},
		},
		{
			Name:  "is_published",
			Title: "published",
			Sort:  `"posts"."is_published"`,
			Value: func(p *models.Post) any { return p.IsPublished },
		},
		{
			Name:  "created",
			Title: "created",
			Sort:  `"posts"."created"`,
			Value: func(p *models.Post) any { return p.Created },
		},
		{
			Name:  "modified",
			Title: "modified",
			Value: func(p *models.Post) any { return p.Modified },
		},
	}

	return a
}
