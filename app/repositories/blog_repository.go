package repositories

import (
	"blogadmin/app/models"

	"gorm.io/gorm"
)

// GormBlogRepository implements BlogRepository on gorm
type GormBlogRepository struct {
	db *gorm.DB
}

// NewGormBlogRepository creates a new GormBlogRepository
func NewGormBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

// Create creates a new blog
func (r *GormBlogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// GetByID retrieves a blog by ID with its owner
func (r *GormBlogRepository) GetByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.Joins("Owner").First(&blog, "blogs.id = ?", id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &blog, nil
}

// List retrieves blogs matching the options
func (r *GormBlogRepository) List(opts ListOptions) ([]*models.Blog, error) {
	var blogs []*models.Blog
	q := opts.Apply(r.db.Model(&models.Blog{}), models.Blog{}.TableName())
	if err := q.Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

// Update persists all fields of the blog
func (r *GormBlogRepository) Update(blog *models.Blog) error {
	return r.db.Save(blog).Error
}

// Delete removes a blog and, through the cascade on posts.blog_id,
// every post in it.
func (r *GormBlogRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Blog{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
