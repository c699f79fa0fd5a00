package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

var _ repository.BorrowRecordRepository = (*BorrowRecordRepo)(nil)

// BorrowRecordRepo implements the BorrowRecordRepository port over PostgreSQL.
type BorrowRecordRepo struct {
	q Querier
}

// NewBorrowRecordRepository builds the loan persistence adapter. Pass a pool or tx.
func NewBorrowRecordRepository(q Querier) *BorrowRecordRepo {
	return &BorrowRecordRepo{q: q}
}

const recordColumns = `id, user_id, book_copy_id, borrowed_at, due_at, returned_at, status, fine_amount`

// Create persists a new loan.
func (r *BorrowRecordRepo) Create(record *entity.BorrowRecord) error {
	query := `
		INSERT INTO borrow_records (id, user_id, book_copy_id, borrowed_at, due_at, returned_at, status, fine_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.UserID, record.BookCopyID, record.BorrowedAt, record.DueAt,
		record.ReturnedAt, record.Status, record.FineAmount,
	)
	if err != nil {
		return fmt.Errorf("insert borrow record: %w", err)
	}
	return nil
}

// GetByID fetches a loan by ID. Returns (nil, nil) when absent.
func (r *BorrowRecordRepo) GetByID(id string) (*entity.BorrowRecord, error) {
	var rec entity.BorrowRecord
	err := r.q.QueryRow(context.Background(),
		`SELECT `+recordColumns+` FROM borrow_records WHERE id = $1`, id).Scan(
		&rec.ID, &rec.UserID, &rec.BookCopyID, &rec.BorrowedAt, &rec.DueAt,
		&rec.ReturnedAt, &rec.Status, &rec.FineAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get borrow record: %w", err)
	}
	return &rec, nil
}

// Update persists the mutable loan fields (return transition and fine).
func (r *BorrowRecordRepo) Update(record *entity.BorrowRecord) error {
	query := `
		UPDATE borrow_records SET returned_at = $2, status = $3, fine_amount = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ReturnedAt, record.Status, record.FineAmount,
	)
	if err != nil {
		return fmt.Errorf("update borrow record: %w", err)
	}
	return nil
}

// ListActiveByUser returns the user's BORROWED records, oldest first.
func (r *BorrowRecordRepo) ListActiveByUser(userID string) ([]*entity.BorrowRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM borrow_records
		WHERE user_id = $1 AND status = $2 ORDER BY borrowed_at`
	return r.scanMany(query, userID, entity.BorrowStatusBorrowed)
}

// ListOverdueByUser returns BORROWED records past due at now.
func (r *BorrowRecordRepo) ListOverdueByUser(userID string, now time.Time) ([]*entity.BorrowRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM borrow_records
		WHERE user_id = $1 AND status = $2 AND due_at < $3 ORDER BY due_at`
	return r.scanMany(query, userID, entity.BorrowStatusBorrowed, now)
}

// ListDueBetween returns BORROWED records with due_at in [from, to).
func (r *BorrowRecordRepo) ListDueBetween(from, to time.Time) ([]*entity.BorrowRecord, error) {
	query := `
		SELECT ` + recordColumns + ` FROM borrow_records
		WHERE status = $1 AND due_at >= $2 AND due_at < $3 ORDER BY due_at`
	return r.scanMany(query, entity.BorrowStatusBorrowed, from, to)
}

func (r *BorrowRecordRepo) scanMany(query string, args ...any) ([]*entity.BorrowRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list borrow records: %w", err)
	}
	defer rows.Close()
	var list []*entity.BorrowRecord
	for rows.Next() {
		var rec entity.BorrowRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.BookCopyID, &rec.BorrowedAt, &rec.DueAt,
			&rec.ReturnedAt, &rec.Status, &rec.FineAmount); err != nil {
			return nil, fmt.Errorf("scan borrow record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// CountActiveByUserAndType counts the user's BORROWED records whose copy's
// book has the given type.
func (r *BorrowRecordRepo) CountActiveByUserAndType(userID, bookType string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM borrow_records br
		JOIN book_copies bc ON bc.id = br.book_copy_id
		JOIN books b ON b.id = bc.book_id
		WHERE br.user_id = $1 AND br.status = $2 AND b.book_type = $3`
	var count int
	err := r.q.QueryRow(context.Background(), query, userID, entity.BorrowStatusBorrowed, bookType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active by type: %w", err)
	}
	return count, nil
}

// CountActiveByUser counts the user's BORROWED records.
func (r *BorrowRecordRepo) CountActiveByUser(userID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM borrow_records WHERE user_id = $1 AND status = $2`,
		userID, entity.BorrowStatusBorrowed).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active: %w", err)
	}
	return count, nil
}

// HasOverdue reports whether the user holds any BORROWED record past due.
func (r *BorrowRecordRepo) HasOverdue(userID string, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records
			WHERE user_id = $1 AND status = $2 AND due_at < $3
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, userID, entity.BorrowStatusBorrowed, now).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has overdue: %w", err)
	}
	return exists, nil
}
