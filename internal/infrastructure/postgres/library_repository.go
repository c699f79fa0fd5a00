package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

var _ repository.LibraryRepository = (*LibraryRepo)(nil)

// LibraryRepo implements the LibraryRepository port over PostgreSQL.
type LibraryRepo struct {
	q Querier
}

// NewLibraryRepository builds the library persistence adapter.
func NewLibraryRepository(q Querier) *LibraryRepo {
	return &LibraryRepo{q: q}
}

// Create persists a new branch.
func (r *LibraryRepo) Create(library *entity.Library) error {
	query := `
		INSERT INTO libraries (id, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		library.ID, library.Name, library.Address, library.Phone, library.CreatedAt, library.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert library: %w", err)
	}
	return nil
}

// GetByID fetches a branch by ID. Returns (nil, nil) when absent.
func (r *LibraryRepo) GetByID(id string) (*entity.Library, error) {
	return r.scanOne(`SELECT id, name, address, phone, created_at, updated_at FROM libraries WHERE id = $1`, id)
}

// GetByName fetches a branch by its unique name. Returns (nil, nil) when absent.
func (r *LibraryRepo) GetByName(name string) (*entity.Library, error) {
	return r.scanOne(`SELECT id, name, address, phone, created_at, updated_at FROM libraries WHERE name = $1`, name)
}

func (r *LibraryRepo) scanOne(query string, arg any) (*entity.Library, error) {
	var l entity.Library
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Name, &l.Address, &l.Phone, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get library: %w", err)
	}
	return &l, nil
}

// List pages through branches by name.
func (r *LibraryRepo) List(limit, offset int) ([]*entity.Library, error) {
	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM libraries ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Library
	for rows.Next() {
		var l entity.Library
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Phone, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan library: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update persists mutable branch fields.
func (r *LibraryRepo) Update(library *entity.Library) error {
	query := `
		UPDATE libraries SET name = $2, address = $3, phone = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		library.ID, library.Name, library.Address, library.Phone, library.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update library: %w", err)
	}
	return nil
}

// Delete removes a branch by ID.
func (r *LibraryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM libraries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete library: %w", err)
	}
	return nil
}
