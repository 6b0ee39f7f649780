package factories

import (
	"fmt"

	"blogadmin/app/models"
	"blogadmin/app/repositories"
)

// UserFactory builds fake user accounts.
type UserFactory struct {
	users repositories.UserRepository
}

// NewUserFactory creates a new UserFactory
func NewUserFactory(users repositories.UserRepository) *UserFactory {
	return &UserFactory{users: users}
}

// UserOverrides are the fields a caller may pin; anything left zero
// is generated.
type UserOverrides struct {
	Sex       Sex
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// firstName maps the sex enumeration onto the matching generator.
func firstName(sex Sex) string {
	switch sex {
	case SexMale:
		return fake.Person().FirstNameMale()
	case SexFemale:
		return fake.Person().FirstNameFemale()
	default:
		return fake.Person().FirstName()
	}
}

// Create builds and persists one user. Username and email embed a
// sequence number so two generated users can never collide; the pair
// is also the natural key, so an existing matching row is reused
// instead of duplicated.
func (f *UserFactory) Create(o UserOverrides) (*models.User, error) {
	n := seq.Add(1)

	u := models.NewUser()
	u.Username = o.Username
	if u.Username == "" {
		u.Username = fmt.Sprintf("%s-%d", fake.Internet().User(), n)
	}
	u.Email = o.Email
	if u.Email == "" {
		u.Email = fmt.Sprintf("%d-%s", n, fake.Internet().Email())
	}
	u.FirstName = o.FirstName
	if u.FirstName == "" {
		u.FirstName = firstName(o.Sex)
	}
	u.LastName = o.LastName
	if u.LastName == "" {
		u.LastName = fake.Person().LastName()
	}
	u.DateJoined = randomPastTime()

	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("generated user is invalid: %w", err)
	}
	user, _, err := f.users.GetOrCreate(u)
	return user, err
}

// CreateBatch builds count users in one call.
func (f *UserFactory) CreateBatch(count int, o UserOverrides) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		u, err := f.Create(o)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
