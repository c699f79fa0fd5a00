package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

// CopyUseCase manages physical copy inventory. Only AVAILABLE/LOST/DAMAGED
// transitions go through here; the AVAILABLE↔BORROWED flips belong to the
// borrowing component.
type CopyUseCase struct {
	repo     repository.BookCopyRepository
	bookRepo repository.BookRepository
	libRepo  repository.LibraryRepository
}

// NewCopyUseCase builds the use case.
func NewCopyUseCase(repo repository.BookCopyRepository, bookRepo repository.BookRepository, libRepo repository.LibraryRepository) *CopyUseCase {
	return &CopyUseCase{repo: repo, bookRepo: bookRepo, libRepo: libRepo}
}

// Add registers a new copy of a book at a branch. CopyNumber must be unique
// within (book, library); new copies start AVAILABLE.
func (uc *CopyUseCase) Add(ctx context.Context, in dto.AddCopyRequest) (*dto.CopyResponse, error) {
	book, err := uc.bookRepo.GetByID(in.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	library, err := uc.libRepo.GetByID(in.LibraryID)
	if err != nil {
		return nil, err
	}
	if library == nil {
		return nil, domain.ErrLibraryNotFound
	}
	existing, err := uc.repo.GetByBookLibraryAndNumber(in.BookID, in.LibraryID, in.CopyNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	bookCopy := &entity.BookCopy{
		ID:         uuid.New().String(),
		BookID:     in.BookID,
		LibraryID:  in.LibraryID,
		CopyNumber: in.CopyNumber,
		Status:     entity.CopyStatusAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(bookCopy); err != nil {
		return nil, err
	}
	return toCopyResponse(bookCopy), nil
}

// GetByID fetches a copy.
func (uc *CopyUseCase) GetByID(ctx context.Context, id string) (*dto.CopyResponse, error) {
	bookCopy, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bookCopy == nil {
		return nil, domain.ErrCopyNotFound
	}
	return toCopyResponse(bookCopy), nil
}

// ListByBook lists every copy of a title across branches.
func (uc *CopyUseCase) ListByBook(ctx context.Context, bookID string) ([]dto.CopyResponse, error) {
	book, err := uc.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	list, err := uc.repo.ListByBook(bookID)
	if err != nil {
		return nil, err
	}
	return toCopyResponses(list), nil
}

// ListByLibrary lists the copies held at a branch.
func (uc *CopyUseCase) ListByLibrary(ctx context.Context, libraryID string, page dto.PageRequest) ([]dto.CopyResponse, error) {
	library, err := uc.libRepo.GetByID(libraryID)
	if err != nil {
		return nil, err
	}
	if library == nil {
		return nil, domain.ErrLibraryNotFound
	}
	page.DefaultPage()
	list, err := uc.repo.ListByLibrary(libraryID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toCopyResponses(list), nil
}

// UpdateStatus marks a copy LOST, DAMAGED or AVAILABLE again. A BORROWED copy
// cannot be touched here, and BORROWED cannot be set: both sides of that
// transition are owned by the borrowing component.
func (uc *CopyUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateCopyStatusRequest) (*dto.CopyResponse, error) {
	if !entity.IsValidCopyStatus(in.Status) || in.Status == entity.CopyStatusBorrowed {
		return nil, domain.ErrInvalidInput
	}
	bookCopy, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bookCopy == nil {
		return nil, domain.ErrCopyNotFound
	}
	if bookCopy.Status == entity.CopyStatusBorrowed {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateStatus(id, in.Status); err != nil {
		return nil, err
	}
	bookCopy.Status = in.Status
	return toCopyResponse(bookCopy), nil
}

// Availability reports whether the book has an available copy and how many.
// An empty libraryID counts across every branch.
func (uc *CopyUseCase) Availability(ctx context.Context, bookID, libraryID string) (*dto.AvailabilityResponse, error) {
	book, err := uc.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	if libraryID != "" {
		library, err := uc.libRepo.GetByID(libraryID)
		if err != nil {
			return nil, err
		}
		if library == nil {
			return nil, domain.ErrLibraryNotFound
		}
	}
	count, err := uc.repo.CountAvailable(bookID, libraryID)
	if err != nil {
		return nil, err
	}
	return &dto.AvailabilityResponse{
		BookID:          bookID,
		LibraryID:       libraryID,
		Available:       count > 0,
		AvailableCopies: count,
	}, nil
}

func toCopyResponse(c *entity.BookCopy) *dto.CopyResponse {
	if c == nil {
		return nil
	}
	return &dto.CopyResponse{
		ID:         c.ID,
		BookID:     c.BookID,
		LibraryID:  c.LibraryID,
		CopyNumber: c.CopyNumber,
		Status:     c.Status,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toCopyResponses(list []*entity.BookCopy) []dto.CopyResponse {
	items := make([]dto.CopyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCopyResponse(c))
	}
	return items
}
