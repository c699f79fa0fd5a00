package repository

import "github.com/shelftrack/shelftrack-api/internal/domain/entity"

// LibraryRepository is the persistence port for Library (DIP).
type LibraryRepository interface {
	Create(library *entity.Library) error
	GetByID(id string) (*entity.Library, error)
	GetByName(name string) (*entity.Library, error)
	List(limit, offset int) ([]*entity.Library, error)
	Update(library *entity.Library) error
	Delete(id string) error
}
