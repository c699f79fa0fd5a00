package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors (no external dependencies). The text of the conflict errors
// is part of the contract: handlers and clients rely on it to tell apart
// which precondition failed.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrBookNotFound         = errors.New("book not found")
	ErrCopyNotFound         = errors.New("book copy not found")
	ErrLibraryNotFound      = errors.New("library not found")
	ErrRecordNotFound       = errors.New("borrow record not found")
	ErrEmailAlreadyExists   = errors.New("email is already registered")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicate            = errors.New("duplicate resource")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("access denied")
	ErrConflict             = errors.New("conflict with current state")
	ErrCopyNotAvailable     = errors.New("book is not available")
	ErrOverdueBooks         = errors.New("user has overdue books; return them first")
	ErrAlreadyReturned      = errors.New("borrow record already returned")
	ErrLibrarianUnverified  = errors.New("librarian account is not verified")
	ErrVerificationRejected = errors.New("librarian verification failed")
	ErrLibraryHasCopies     = errors.New("library still holds book copies")
)

// BorrowLimitError signals that the per-type concurrent loan cap was hit.
// The message names the cap so callers can surface it verbatim.
type BorrowLimitError struct {
	BookType string
	Cap      int
}

func (e *BorrowLimitError) Error() string {
	return fmt.Sprintf("borrow limit of %d %s books reached", e.Cap, strings.ToLower(e.BookType))
}

// Is makes errors.Is(err, ErrConflict) match borrow limit failures.
func (e *BorrowLimitError) Is(target error) bool {
	return target == ErrConflict
}

// IsConflict reports whether err belongs to the 409 family: a valid request
// that the current stored state forbids.
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrConflict, ErrCopyNotAvailable, ErrOverdueBooks, ErrAlreadyReturned,
		ErrDuplicate, ErrEmailAlreadyExists, ErrVerificationRejected, ErrLibraryHasCopies,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err belongs to the 404 family.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrBookNotFound, ErrCopyNotFound,
		ErrLibraryNotFound, ErrRecordNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
