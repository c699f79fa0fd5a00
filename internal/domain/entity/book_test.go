package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
)

func TestBorrowCapFor(t *testing.T) {
	assert.Equal(t, 5, entity.BorrowCapFor(entity.BookTypeTraditional))
	assert.Equal(t, 10, entity.BorrowCapFor(entity.BookTypeModern))
	assert.Equal(t, 0, entity.BorrowCapFor("DIGITAL"))
	assert.Equal(t, 0, entity.BorrowCapFor(""))
}

func TestIsValidBookType(t *testing.T) {
	assert.True(t, entity.IsValidBookType(entity.BookTypeTraditional))
	assert.True(t, entity.IsValidBookType(entity.BookTypeModern))
	assert.False(t, entity.IsValidBookType("traditional"), "values are case sensitive")
	assert.False(t, entity.IsValidBookType(""))
}

func TestBorrowRecordIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	active := &entity.BorrowRecord{Status: entity.BorrowStatusBorrowed, DueAt: now.Add(time.Hour)}
	assert.False(t, active.IsOverdue(now), "not yet due")

	late := &entity.BorrowRecord{Status: entity.BorrowStatusBorrowed, DueAt: now.Add(-time.Hour)}
	assert.True(t, late.IsOverdue(now))

	returned := &entity.BorrowRecord{Status: entity.BorrowStatusReturned, DueAt: now.Add(-time.Hour)}
	assert.False(t, returned.IsOverdue(now), "a returned record is never overdue")
}
