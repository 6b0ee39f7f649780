package admin

import (
	"fmt"
	"html/template"

	"blogadmin/app/models"
	"blogadmin/app/repositories"

	"gorm.io/gorm"
)

// fullNameSort glues the name parts together in the database so the
// computed column can be sorted there instead of in memory.
const fullNameSort = `"users"."first_name" || ' ' || "users"."last_name"`

// NewUserAdmin configures the user changelist and change view.
func NewUserAdmin() *ModelAdmin[models.User] {
	a := &ModelAdmin[models.User]{
		App:   "users",
		Model: "user",
		Table: "users",
		New:   models.NewUser,
		PK:    func(u *models.User) uint { return u.ID },
		Label: func(u *models.User) string { return u.Username },

		SearchFields:  []string{"username", "email", "first_name", "last_name"},
		DateHierarchy: "date_joined",
		Ordering:      `"users"."date_joined" DESC`,

		ListFilters: []Filter{
			&BooleanFilter{Table: "users", FieldSpec: "is_staff"},
			&BooleanFilter{Table: "users", FieldSpec: "is_superuser"},
			&BooleanFilter{Table: "users", FieldSpec: "is_active"},
		},
	}

	a.ListDisplay = []Column[models.User]{
		{
			Name:  "username",
			Title: "username",
			Sort:  `"users"."username"`,
			Value: func(u *models.User) any { return u.Username },
			Render: func(site *Site, u *models.User) template.HTML {
				return link(site.Reverse("admin:users_user_change", u.ID), "", u.Username)
			},
		},
		{
			Name:  "email",
			Title: "email",
			Sort:  `"users"."email"`,
			Value: func(u *models.User) any { return u.Email },
			Render: func(site *Site, u *models.User) template.HTML {
				return link(site.Reverse("admin:users_user_change", u.ID), "", u.Email)
			},
		},
		{
			Name:  "full_name",
			Title: "full name",
			Sort:  fullNameSort,
			Value: func(u *models.User) any { return u.FullName() },
		},
		{
			Name:  "is_active",
			Title: "active",
			Sort:  `"users"."is_active"`,
			Value: func(u *models.User) any { return u.IsActive },
		},
		{
			Name:  "is_superuser",
			Title: "superuser",
			Value: func(u *models.User) any { return u.IsSuperuser },
		},
		{
			Name:  "is_staff",
			Title: "staff",
			Value: func(u *models.User) any { return u.IsStaff },
		},
		{
			Name:  "date_joined",
			Title: "date joined",
			Sort:  `"users"."date_joined"`,
			Value: func(u *models.User) any { return u.DateJoined },
		},
		{
			Name:  "last_login",
			Title: "last login",
			Value: func(u *models.User) any { return u.LastLogin },
		},
	}

	// big related sets get a filtered changelist link instead of an
	// inline
	a.ReadonlyFields = []ReadonlyField[models.User]{
		{
			Name:  "link_to_posts",
			Title: "All posts by this user",
			Render: func(site *Site, db *gorm.DB, u *models.User) template.HTML {
				var count int64
				db.Model(&models.Post{}).Where("author_id = ?", u.ID).Count(&count)
				href := fmt.Sprintf("%s?author_id=%d", site.Reverse("admin:content_post_changelist"), u.ID)
				return link(href, "", fmt.Sprintf("View (%d)", count))
			},
		},
	}

	a.Actions = []Action[models.User]{
		{
			Name:        "make_active",
			Description: "Make active",
			Run: func(db *gorm.DB, pks []uint) (*ActionResult, error) {
				n, err := repositories.NewGormUserRepository(db).SetActive(pks, true)
				return &ActionResult{Updated: n}, err
			},
		},
		{
			Name:        "make_inactive",
			Description: "Make inactive",
			Run: func(db *gorm.DB, pks []uint) (*ActionResult, error) {
				n, err := repositories.NewGormUserRepository(db).SetActive(pks, false)
				return &ActionResult{Updated: n}, err
			},
		},
		ExportJSON("users.user",
			func(u *models.User) uint { return u.ID },
			func(u *models.User) map[string]any {
				return map[string]any{
					"username":     u.Username,
					"email":        u.Email,
					"first_name":   u.FirstName,
					"last_name":    u.LastName,
					"is_active":    u.IsActive,
					"is_staff":     u.IsStaff,
					"is_superuser": u.IsSuperuser,
					"date_joined":  u.DateJoined,
					"last_login":   u.LastLogin,
				}
			}),
	}

	return a
}
