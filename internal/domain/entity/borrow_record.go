package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Borrow record statuses. The only transition is BORROWED → RETURNED.
const (
	BorrowStatusBorrowed = "BORROWED"
	BorrowStatusReturned = "RETURNED"
)

// BorrowRecord links one user to one copy for a bounded period.
// FineAmount is computed at return time for late returns, zero otherwise.
type BorrowRecord struct {
	ID         string
	UserID     string
	BookCopyID string
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	Status     string
	FineAmount decimal.Decimal
}

// IsOverdue reports whether the record is still out and past due at now.
func (r *BorrowRecord) IsOverdue(now time.Time) bool {
	return r.Status == BorrowStatusBorrowed && r.DueAt.Before(now)
}
