package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

var _ repository.BookCopyRepository = (*BookCopyRepo)(nil)

// BookCopyRepo implements the BookCopyRepository port over PostgreSQL.
// Usable with a pool or a tx; GetForUpdate only makes sense inside a tx.
type BookCopyRepo struct {
	q Querier
}

// NewBookCopyRepository builds the copy persistence adapter. Pass a pool or tx.
func NewBookCopyRepository(q Querier) *BookCopyRepo {
	return &BookCopyRepo{q: q}
}

const copyColumns = `id, book_id, library_id, copy_number, status, created_at, updated_at`

// Create persists a new copy.
func (r *BookCopyRepo) Create(bookCopy *entity.BookCopy) error {
	query := `
		INSERT INTO book_copies (id, book_id, library_id, copy_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		bookCopy.ID, bookCopy.BookID, bookCopy.LibraryID, bookCopy.CopyNumber, bookCopy.Status,
		bookCopy.CreatedAt, bookCopy.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert book copy: %w", err)
	}
	return nil
}

// GetByID fetches a copy by ID. Returns (nil, nil) when absent.
func (r *BookCopyRepo) GetByID(id string) (*entity.BookCopy, error) {
	return r.scanOne(`SELECT `+copyColumns+` FROM book_copies WHERE id = $1`, id)
}

// GetForUpdate fetches a copy and locks its row (SELECT FOR UPDATE) so
// concurrent borrow attempts on the same copy serialize on the row lock.
func (r *BookCopyRepo) GetForUpdate(id string) (*entity.BookCopy, error) {
	return r.scanOne(`SELECT `+copyColumns+` FROM book_copies WHERE id = $1 FOR UPDATE`, id)
}

// GetByBookLibraryAndNumber fetches a copy by its natural key.
func (r *BookCopyRepo) GetByBookLibraryAndNumber(bookID, libraryID string, copyNumber int) (*entity.BookCopy, error) {
	query := `SELECT ` + copyColumns + ` FROM book_copies WHERE book_id = $1 AND library_id = $2 AND copy_number = $3`
	return r.scanOne(query, bookID, libraryID, copyNumber)
}

func (r *BookCopyRepo) scanOne(query string, args ...any) (*entity.BookCopy, error) {
	var c entity.BookCopy
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.BookID, &c.LibraryID, &c.CopyNumber, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book copy: %w", err)
	}
	return &c, nil
}

// ListByBook lists every copy of a title across branches.
func (r *BookCopyRepo) ListByBook(bookID string) ([]*entity.BookCopy, error) {
	query := `SELECT ` + copyColumns + ` FROM book_copies WHERE book_id = $1 ORDER BY library_id, copy_number`
	return r.scanMany(query, bookID)
}

// ListByLibrary pages through the copies held at a branch.
func (r *BookCopyRepo) ListByLibrary(libraryID string, limit, offset int) ([]*entity.BookCopy, error) {
	query := `SELECT ` + copyColumns + ` FROM book_copies WHERE library_id = $1 ORDER BY copy_number LIMIT $2 OFFSET $3`
	return r.scanMany(query, libraryID, limit, offset)
}

func (r *BookCopyRepo) scanMany(query string, args ...any) ([]*entity.BookCopy, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list book copies: %w", err)
	}
	defer rows.Close()
	var list []*entity.BookCopy
	for rows.Next() {
		var c entity.BookCopy
		if err := rows.Scan(&c.ID, &c.BookID, &c.LibraryID, &c.CopyNumber, &c.Status,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book copy: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountAvailable counts AVAILABLE copies of a book at a branch.
func (r *BookCopyRepo) CountAvailable(bookID, libraryID string) (int, error) {
	// Empty libraryID counts across every branch.
	query := `
		SELECT COUNT(*) FROM book_copies
		WHERE book_id = $1 AND ($2 = '' OR library_id::text = $2) AND status = $3`
	var count int
	err := r.q.QueryRow(context.Background(), query, bookID, libraryID, entity.CopyStatusAvailable).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count available copies: %w", err)
	}
	return count, nil
}

// CountByLibrary counts all copies held at a branch.
func (r *BookCopyRepo) CountByLibrary(libraryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM book_copies WHERE library_id = $1`, libraryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count copies by library: %w", err)
	}
	return count, nil
}

// UpdateStatus flips a copy's status.
func (r *BookCopyRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE book_copies SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update copy status: %w", err)
	}
	return nil
}

// Delete removes a copy by ID.
func (r *BookCopyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM book_copies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book copy: %w", err)
	}
	return nil
}
