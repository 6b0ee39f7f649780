package models

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// URL slugs are lowercase ASCII words joined by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func init() {
	validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	// report errors under the json names forms submit
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// User is an account that can own blogs and author posts.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:150;uniqueIndex;not null" json:"username" validate:"required,max=150"`
	Email        string     `gorm:"size:254;uniqueIndex;not null" json:"email" validate:"required,email"`
	FirstName    string     `gorm:"size:150" json:"first_name" validate:"max=150"`
	LastName     string     `gorm:"size:150" json:"last_name" validate:"max=150"`
	PasswordHash string     `gorm:"size:128" json:"-" validate:"-"`
	IsActive     bool       `gorm:"column:is_active;not null" json:"is_active"`
	IsStaff      bool       `gorm:"column:is_staff;not null" json:"is_staff"`
	IsSuperuser  bool       `gorm:"column:is_superuser;not null" json:"is_superuser"`
	DateJoined   time.Time  `gorm:"column:date_joined;not null;autoCreateTime" json:"date_joined"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login"`

	Blogs []*Blog `gorm:"foreignKey:OwnerID" json:"-" validate:"-"`
	Posts []*Post `gorm:"foreignKey:AuthorID" json:"-" validate:"-"`
}

// Blog is a named container of posts owned by one user.
type Blog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"column:owner_id;not null;index" json:"owner_id" validate:"required"`
	Owner       *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Name        string    `gorm:"size:255;not null" json:"name" validate:"required,max=255"`
	Slug        string    `gorm:"size:255" json:"slug" validate:"omitempty,slug"`
	IsPublished bool      `gorm:"column:is_published;not null" json:"is_published"`
	Created     time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
	Modified    time.Time `gorm:"column:modified;not null;autoUpdateTime" json:"modified"`

	Posts []*Post `gorm:"foreignKey:BlogID" json:"-" validate:"-"`
}

// Post is an article in a blog, attributed to an author. The author
// reference is optional: deleting the author account clears it while
// the post itself survives.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BlogID      uint      `gorm:"column:blog_id;not null;index" json:"blog_id" validate:"required"`
	Blog        *Blog     `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	AuthorID    *uint     `gorm:"column:author_id;index" json:"author_id"`
	Author      *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	Title       string    `gorm:"size:255;not null" json:"title" validate:"required,max=255"`
	Body        string    `gorm:"type:text;not null" json:"body" validate:"required"`
	IsPublished bool      `gorm:"column:is_published;not null" json:"is_published"`
	Created     time.Time `gorm:"column:created;not null;autoCreateTime" json:"created"`
	Modified    time.Time `gorm:"column:modified;not null;autoUpdateTime" json:"modified"`
}

// TableName get sql table name
func (User) TableName() string { return "users" }

// TableName get sql table name
func (Blog) TableName() string { return "blogs" }

// TableName get sql table name
func (Post) TableName() string { return "posts" }
