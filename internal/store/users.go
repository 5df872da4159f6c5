package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/safar/go-warehouse/internal/models"
)

type AdminAccount struct {
	Name     string
	Login    string
	Password string
}

func DefaultAdminAccount() AdminAccount {
	return AdminAccount{
		Name:     "Admin",
		Login:    "admin",
		Password: "admin",
	}
}

// Directory holds every registered user in registration order, starting with
// the seeded administrator. Users are never removed and their fields never
// change after registration, so returned pointers are safe to read.
type Directory struct {
	guard
	users   []*models.User
	byLogin map[string]*models.User
	lastID  int64
	now     func() time.Time
}

func NewDirectory(admin AdminAccount) (*Directory, error) {
	d := &Directory{
		byLogin: make(map[string]*models.User),
		now:     time.Now,
	}

	if _, err := d.create(admin.Name, admin.Login, admin.Password, models.RoleAdministrator); err != nil {
		return nil, fmt.Errorf("seed administrator: %w", err)
	}

	return d, nil
}

func (d *Directory) create(name, login, password string, role models.Role) (*models.User, error) {
	if strings.TrimSpace(login) == "" {
		return nil, fmt.Errorf("%w: login is required", ErrInvalidInput)
	}

	var user *models.User
	err := d.withWrite(func() error {
		if _, exists := d.byLogin[login]; exists {
			return fmt.Errorf("%w: %q", ErrLoginTaken, login)
		}

		d.lastID++
		user = &models.User{
			ID:        d.lastID,
			Name:      name,
			Login:     login,
			Password:  password,
			Role:      role,
			CreatedAt: d.now(),
		}
		d.users = append(d.users, user)
		d.byLogin[login] = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (d *Directory) Register(name, login, password string) (*models.User, error) {
	return d.create(name, login, password, models.RoleStandard)
}

// Authenticate compares login and password verbatim.
func (d *Directory) Authenticate(login, password string) (*models.User, error) {
	var user *models.User
	d.withRead(func() {
		if u, ok := d.byLogin[login]; ok && u.Password == password {
			user = u
		}
	})
	if user == nil {
		return nil, ErrAuthFailed
	}
	return user, nil
}

func (d *Directory) IsAdministrator(user *models.User) bool {
	return user.IsAdmin()
}

func (d *Directory) List() []models.User {
	var users []models.User
	d.withRead(func() {
		users = make([]models.User, 0, len(d.users))
		for _, u := range d.users {
			users = append(users, u.Profile())
		}
	})
	return users
}
