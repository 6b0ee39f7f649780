package repositories

import "blogadmin/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetOrCreate(user *models.User) (*models.User, bool, error)
	List(opts ListOptions) ([]*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	SetActive(ids []uint, active bool) (int64, error)
}

// BlogRepository defines the interface for blog data access
type BlogRepository interface {
	Create(blog *models.Blog) error
	GetByID(id uint) (*models.Blog, error)
	List(opts ListOptions) ([]*models.Blog, error)
	Update(blog *models.Blog) error
	Delete(id uint) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	List(opts ListOptions) ([]*models.Post, error)
	ListByBlog(blogID uint) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
}
