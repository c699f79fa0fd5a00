package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"

	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

const dialectPostgres = "postgres"

// BookRepo implements the BookRepository port over PostgreSQL. Search queries
// are built dynamically with goqu so unset filters simply drop out of the
// WHERE clause.
type BookRepo struct {
	q Querier
}

// NewBookRepository builds the book persistence adapter. Pass a pool or tx.
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

// Create persists a new title.
func (r *BookRepo) Create(book *entity.Book) error {
	query := `
		INSERT INTO books (id, title, author, published_year, category, book_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.Title, book.Author, book.PublishedYear, book.Category, book.BookType,
		book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID fetches a title by ID. Returns (nil, nil) when absent.
func (r *BookRepo) GetByID(id string) (*entity.Book, error) {
	query := `
		SELECT id, title, author, published_year, category, book_type, created_at, updated_at
		FROM books WHERE id = $1`
	var b entity.Book
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.PublishedYear, &b.Category, &b.BookType,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book by id: %w", err)
	}
	return &b, nil
}

// Search lists titles matching the filter, newest first.
func (r *BookRepo) Search(filter repository.BookSearchFilter, limit, offset int) ([]*entity.Book, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From("books").
		Select("id", "title", "author", "published_year", "category", "book_type", "created_at", "updated_at").
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset))
	stmt = addBookFilter(stmt, filter)

	sqlQuery, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}
	rows, err := r.q.Query(context.Background(), sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()

	var list []*entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublishedYear, &b.Category,
			&b.BookType, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Count counts titles matching the filter.
func (r *BookRepo) Count(filter repository.BookSearchFilter) (int, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From("books").
		Select(goqu.COUNT("*"))
	stmt = addBookFilter(stmt, filter)

	sqlQuery, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var count int
	if err := r.q.QueryRow(context.Background(), sqlQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func addBookFilter(stmt *goqu.SelectDataset, filter repository.BookSearchFilter) *goqu.SelectDataset {
	if filter.Title != "" {
		stmt = stmt.Where(goqu.I("title").ILike("%" + filter.Title + "%"))
	}
	if filter.Author != "" {
		stmt = stmt.Where(goqu.I("author").ILike("%" + filter.Author + "%"))
	}
	if filter.Category != "" {
		stmt = stmt.Where(goqu.I("category").Eq(filter.Category))
	}
	if filter.Year != nil {
		stmt = stmt.Where(goqu.I("published_year").Eq(*filter.Year))
	}
	return stmt
}

// Update persists mutable book fields.
func (r *BookRepo) Update(book *entity.Book) error {
	query := `
		UPDATE books SET title = $2, author = $3, published_year = $4, category = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.Title, book.Author, book.PublishedYear, book.Category, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// Delete removes a title by ID.
func (r *BookRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
