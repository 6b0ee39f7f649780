package repositories

import (
	"blogadmin/app/models"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository on gorm
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &user, nil
}

// GetOrCreate looks the user up by its natural key (username, email)
// and creates it when no matching row exists. The returned bool
// reports whether a row was created.
func (r *GormUserRepository) GetOrCreate(user *models.User) (*models.User, bool, error) {
	var existing models.User
	err := r.db.Where("username = ? AND email = ?", user.Username, user.Email).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if wrapNotFound(err) != ErrNotFound {
		return nil, false, err
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// List retrieves users matching the options
func (r *GormUserRepository) List(opts ListOptions) ([]*models.User, error) {
	var users []*models.User
	q := opts.Apply(r.db.Model(&models.User{}), models.User{}.TableName())
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists all fields of the user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete removes a user. Blogs the user owns go with it, posts the
// user authored lose their author reference; both are enforced by the
// foreign key declarations, not here.
func (r *GormUserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips is_active on the given users in one UPDATE. Rows
// already in the requested state are matched again with no effect, so
// reapplying the operation is a no-op.
func (r *GormUserRepository) SetActive(ids []uint, active bool) (int64, error) {
	res := r.db.Model(&models.User{}).Where("id IN ?", ids).Update("is_active", active)
	return res.RowsAffected, res.Error
}
