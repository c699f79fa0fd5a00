package entity

import "time"

// Copy statuses. Status is the only concurrency-relevant mutable field; the
// borrowing component owns the AVAILABLE↔BORROWED flips.
const (
	CopyStatusAvailable = "AVAILABLE"
	CopyStatusBorrowed  = "BORROWED"
	CopyStatusLost      = "LOST"
	CopyStatusDamaged   = "DAMAGED"
)

// IsValidCopyStatus reports whether s is a known copy status.
func IsValidCopyStatus(s string) bool {
	switch s {
	case CopyStatusAvailable, CopyStatusBorrowed, CopyStatusLost, CopyStatusDamaged:
		return true
	}
	return false
}

// BookCopy is one physical instance of a Book held at one Library.
// CopyNumber is unique within (book, library).
type BookCopy struct {
	ID         string
	BookID     string
	LibraryID  string
	CopyNumber int
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
