package admin

import (
	"html/template"

	"blogadmin/app/models"
	"blogadmin/app/repositories"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const ownerNameSort = `"Owner"."first_name" || ' ' || "Owner"."last_name"`

// NewBlogAdmin configures the blog changelist and change view.
func NewBlogAdmin() *ModelAdmin[models.Blog] {
	a := &ModelAdmin[models.Blog]{
		App:   "content",
		Model: "blog",
		Table: "blogs",
		New:   models.NewBlog,
		PK:    func(b *models.Blog) uint { return b.ID },
		Label: func(b *models.Blog) string { return b.String() },

		SearchFields: []string{
			"name",
			"owner__username",
			"owner__first_name",
			"owner__last_name",
		},
		DateHierarchy: "created",
		SelectRelated: []string{"Owner"},
		Ordering:      `"blogs"."created" DESC`,
		FKFilters:     []string{"owner_id"},

		ListFilters: []Filter{
			&BooleanFilter{Table: "blogs", FieldSpec: "is_published"},
		},

		// the owner can be any of very many users, so the edit form
		// gets a raw-id popup selector rather than a dropdown of all
		// of them
		RawIDFields: []string{"owner"},

		// the form may leave owner empty; whoever is saving becomes
		// the owner. This is an admin-form default only: programmatic
		// creation still has to supply the owner. The slug is
		// prepopulated from the name the same way the form widget
		// would.
		SaveHook: func(actor *models.User, b *models.Blog) error {
			if b.OwnerID == 0 && actor != nil {
				b.OwnerID = actor.ID
			}
			if b.Slug == "" && b.Name != "" {
				b.Slug = slug.Make(b.Name)
			}
			return nil
		},
	}

	a.ListDisplay = []Column[models.Blog]{
		{
			Name:  "name",
			Title: "name",
			Sort:  `"blogs"."name"`,
			Value: func(b *models.Blog) any { return b.Name },
			Render: func(site *Site, b *models.Blog) template.HTML {
				return link(site.Reverse("admin:content_blog_change", b.ID), "", b.String())
			},
		},
		{
			Name:  "owner_name",
			Title: "owner",
			Sort:  ownerNameSort,
			Value: func(b *models.Blog) any {
				if b.Owner == nil {
					return nil
				}
				return b.Owner.FullName()
			},
			Render: func(site *Site, b *models.Blog) template.HTML {
				if b.Owner == nil {
					return "-"
				}
				return link(site.Reverse("admin:users_user_change", b.OwnerID), "", b.Owner.FullName())
			},
		},
		{
			Name:  "is_published",
			Title: "published",
			Sort:  `"blogs"."is_published"`,
			Value: func(b *models.Blog) any { return b.IsPublished },
		},
		{
			Name:  "created",
			Title: "created",
			Sort:  `"blogs"."created"`,
			Value: func(b *models.Blog) any { return b.Created },
		},
		{
			Name:  "modified",
			Title: "modified",
			Value: func(b *models.Blog) any { return b.Modified },
		},
	}

	// nested posts are shown for convenience; inlines have no paging,
	// so this does not suit blogs with large post counts
	a.Inlines = []Inline{
		{
			Name: "posts",
			Fetch: func(db *gorm.DB, pk uint) (any, error) {
				return repositories.NewGormPostRepository(db).ListByBlog(pk)
			},
		},
	}

	return a
}
