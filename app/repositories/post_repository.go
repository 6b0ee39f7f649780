package repositories

import (
	"blogadmin/app/models"

	"gorm.io/gorm"
)

// GormPostRepository implements PostRepository on gorm
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by ID with its blog and author joined
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Joins("Blog").Joins("Author").First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &post, nil
}

// List retrieves posts matching the options
func (r *GormPostRepository) List(opts ListOptions) ([]*models.Post, error) {
	var posts []*models.Post
	q := opts.Apply(r.db.Model(&models.Post{}), models.Post{}.TableName())
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByBlog retrieves all posts of one blog, newest first
func (r *GormPostRepository) ListByBlog(blogID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Where("blog_id = ?", blogID).Order("created DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update persists all fields of the post
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete removes a post
func (r *GormPostRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
