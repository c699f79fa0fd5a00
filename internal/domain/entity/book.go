package entity

import "time"

// Book types. Each type carries its own concurrent-loan cap per user.
const (
	BookTypeTraditional = "TRADITIONAL"
	BookTypeModern      = "MODERN"
)

// Per-user caps on concurrently borrowed books, by book type.
const (
	TraditionalBorrowCap = 5
	ModernBorrowCap      = 10
)

// BorrowCapFor returns the concurrent-loan cap for a book type, or 0 for an
// unknown type.
func BorrowCapFor(bookType string) int {
	switch bookType {
	case BookTypeTraditional:
		return TraditionalBorrowCap
	case BookTypeModern:
		return ModernBorrowCap
	}
	return 0
}

// IsValidBookType reports whether t is one of the closed book-type values.
func IsValidBookType(t string) bool {
	return t == BookTypeTraditional || t == BookTypeModern
}

// Book is a catalog title. Physical instances live in BookCopy.
type Book struct {
	ID            string
	Title         string
	Author        string
	PublishedYear *int
	Category      string
	BookType      string // TRADITIONAL or MODERN
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
