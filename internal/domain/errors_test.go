package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shelftrack/shelftrack-api/internal/domain"
)

func TestBorrowLimitError(t *testing.T) {
	err := &domain.BorrowLimitError{BookType: "TRADITIONAL", Cap: 5}

	assert.Equal(t, "borrow limit of 5 traditional books reached", err.Error())
	assert.True(t, errors.Is(err, domain.ErrConflict),
		"a limit error must match ErrConflict via errors.Is")
	assert.True(t, domain.IsConflict(err))

	var limitErr *domain.BorrowLimitError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &limitErr))
	assert.Equal(t, 5, limitErr.Cap)
}

func TestConflictAndNotFoundFamilies(t *testing.T) {
	conflicts := []error{
		domain.ErrCopyNotAvailable, domain.ErrOverdueBooks, domain.ErrAlreadyReturned,
		domain.ErrDuplicate, domain.ErrEmailAlreadyExists, domain.ErrLibraryHasCopies,
	}
	for _, err := range conflicts {
		assert.True(t, domain.IsConflict(err), "%v", err)
		assert.False(t, domain.IsNotFound(err), "%v", err)
	}

	notFound := []error{
		domain.ErrUserNotFound, domain.ErrBookNotFound, domain.ErrCopyNotFound,
		domain.ErrLibraryNotFound, domain.ErrRecordNotFound,
	}
	for _, err := range notFound {
		assert.True(t, domain.IsNotFound(err), "%v", err)
		assert.False(t, domain.IsConflict(err), "%v", err)
	}

	assert.False(t, domain.IsConflict(domain.ErrInvalidInput))
	assert.False(t, domain.IsNotFound(errors.New("some other error")))
}
