package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

// BookUseCase CRUD and search for catalog titles.
type BookUseCase struct {
	repo repository.BookRepository
}

// NewBookUseCase builds the use case.
func NewBookUseCase(repo repository.BookRepository) *BookUseCase {
	return &BookUseCase{repo: repo}
}

// Create validates and persists a new title. Title, author and category must
// be non-blank and the book type one of the closed enumeration.
func (uc *BookUseCase) Create(ctx context.Context, in dto.CreateBookRequest) (*dto.BookResponse, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidBookType(in.BookType) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	book := &entity.Book{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(in.Title),
		Author:        strings.TrimSpace(in.Author),
		PublishedYear: in.PublishedYear,
		Category:      strings.TrimSpace(in.Category),
		BookType:      in.BookType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// GetByID fetches a title.
func (uc *BookUseCase) GetByID(ctx context.Context, id string) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return toBookResponse(book), nil
}

// Search lists titles matching the optional filters; unset filters match
// everything.
func (uc *BookUseCase) Search(ctx context.Context, in dto.SearchBooksRequest) (*dto.BookListResponse, error) {
	in.DefaultPage()
	filter := repository.BookSearchFilter{
		Title:    in.Title,
		Author:   in.Author,
		Category: in.Category,
		Year:     in.Year,
	}
	books, err := uc.repo.Search(filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, *toBookResponse(b))
	}
	return &dto.BookListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Count counts titles matching the filters (per category, author or year).
func (uc *BookUseCase) Count(ctx context.Context, in dto.SearchBooksRequest) (int, error) {
	return uc.repo.Count(repository.BookSearchFilter{
		Title:    in.Title,
		Author:   in.Author,
		Category: in.Category,
		Year:     in.Year,
	})
}

// Update applies a partial update to a title. Book type is immutable: the
// per-type caps of existing loans depend on it.
func (uc *BookUseCase) Update(ctx context.Context, id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.ErrInvalidInput
		}
		book.Title = strings.TrimSpace(*in.Title)
	}
	if in.Author != nil {
		if strings.TrimSpace(*in.Author) == "" {
			return nil, domain.ErrInvalidInput
		}
		book.Author = strings.TrimSpace(*in.Author)
	}
	if in.PublishedYear != nil {
		book.PublishedYear = in.PublishedYear
	}
	if in.Category != nil {
		if strings.TrimSpace(*in.Category) == "" {
			return nil, domain.ErrInvalidInput
		}
		book.Category = strings.TrimSpace(*in.Category)
	}
	book.UpdatedAt = time.Now()
	if err := uc.repo.Update(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// Delete removes a title.
func (uc *BookUseCase) Delete(ctx context.Context, id string) error {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.ErrBookNotFound
	}
	return uc.repo.Delete(id)
}

func toBookResponse(b *entity.Book) *dto.BookResponse {
	if b == nil {
		return nil
	}
	return &dto.BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedYear: b.PublishedYear,
		Category:      b.Category,
		BookType:      b.BookType,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
