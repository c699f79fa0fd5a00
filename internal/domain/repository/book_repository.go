package repository

import "github.com/shelftrack/shelftrack-api/internal/domain/entity"

// BookSearchFilter optional filters for searching books. Unset (empty/nil)
// fields match everything.
type BookSearchFilter struct {
	Title    string
	Author   string
	Category string
	Year     *int
}

// BookRepository is the persistence port for Book (DIP).
type BookRepository interface {
	Create(book *entity.Book) error
	GetByID(id string) (*entity.Book, error)
	Search(filter BookSearchFilter, limit, offset int) ([]*entity.Book, error)
	Count(filter BookSearchFilter) (int, error)
	Update(book *entity.Book) error
	Delete(id string) error
}
