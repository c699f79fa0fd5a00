package repository

import "github.com/shelftrack/shelftrack-api/internal/domain/entity"

// BookCopyRepository is the persistence port for BookCopy (DIP).
// GetForUpdate must lock the copy row for the duration of the surrounding
// transaction so concurrent borrow attempts on the same copy serialize.
type BookCopyRepository interface {
	Create(copy *entity.BookCopy) error
	GetByID(id string) (*entity.BookCopy, error)
	GetForUpdate(id string) (*entity.BookCopy, error)
	GetByBookLibraryAndNumber(bookID, libraryID string, copyNumber int) (*entity.BookCopy, error)
	ListByBook(bookID string) ([]*entity.BookCopy, error)
	ListByLibrary(libraryID string, limit, offset int) ([]*entity.BookCopy, error)
	CountAvailable(bookID, libraryID string) (int, error)
	CountByLibrary(libraryID string) (int, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
}
