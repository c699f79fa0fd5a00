package repository

import "github.com/shelftrack/shelftrack-api/internal/domain/entity"

// UserRepository is the persistence port for User (DIP). Lookups return
// (nil, nil) when the row does not exist; use cases translate that into the
// typed not-found error.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}

// RoleRepository is the persistence port for Role.
type RoleRepository interface {
	GetByName(name string) (*entity.Role, error)
	List() ([]*entity.Role, error)
}
