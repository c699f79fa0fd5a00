package repository

import (
	"time"

	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
)

// BorrowRecordRepository is the persistence port for BorrowRecord (DIP).
type BorrowRecordRepository interface {
	Create(record *entity.BorrowRecord) error
	GetByID(id string) (*entity.BorrowRecord, error)
	Update(record *entity.BorrowRecord) error
	// ListActiveByUser returns the user's records with status BORROWED.
	ListActiveByUser(userID string) ([]*entity.BorrowRecord, error)
	// ListOverdueByUser returns BORROWED records with due_at before now.
	ListOverdueByUser(userID string, now time.Time) ([]*entity.BorrowRecord, error)
	// CountActiveByUserAndType counts BORROWED records whose copy's book has
	// the given book type.
	CountActiveByUserAndType(userID, bookType string) (int, error)
	CountActiveByUser(userID string) (int, error)
	HasOverdue(userID string, now time.Time) (bool, error)
	// ListDueBetween returns BORROWED records with due_at in [from, to).
	ListDueBetween(from, to time.Time) ([]*entity.BorrowRecord, error)
}
