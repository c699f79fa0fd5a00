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

// LibraryUseCase CRUD for branches. Name is unique across branches.
type LibraryUseCase struct {
	repo     repository.LibraryRepository
	copyRepo repository.BookCopyRepository
}

// NewLibraryUseCase builds the use case.
func NewLibraryUseCase(repo repository.LibraryRepository, copyRepo repository.BookCopyRepository) *LibraryUseCase {
	return &LibraryUseCase{repo: repo, copyRepo: copyRepo}
}

// Create persists a new branch; a taken name is a conflict.
func (uc *LibraryUseCase) Create(ctx context.Context, in dto.CreateLibraryRequest) (*dto.LibraryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	library := &entity.Library{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(library); err != nil {
		return nil, err
	}
	return toLibraryResponse(library), nil
}

// GetByID fetches a branch.
func (uc *LibraryUseCase) GetByID(ctx context.Context, id string) (*dto.LibraryResponse, error) {
	library, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if library == nil {
		return nil, domain.ErrLibraryNotFound
	}
	return toLibraryResponse(library), nil
}

// List pages through branches.
func (uc *LibraryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.LibraryListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LibraryResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLibraryResponse(l))
	}
	return &dto.LibraryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update applies a partial update; renaming onto a taken name is a conflict.
func (uc *LibraryUseCase) Update(ctx context.Context, id string, in dto.UpdateLibraryRequest) (*dto.LibraryResponse, error) {
	library, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if library == nil {
		return nil, domain.ErrLibraryNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if name != library.Name {
			existing, err := uc.repo.GetByName(name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicate
			}
		}
		library.Name = name
	}
	if in.Address != nil {
		library.Address = *in.Address
	}
	if in.Phone != nil {
		library.Phone = *in.Phone
	}
	library.UpdatedAt = time.Now()
	if err := uc.repo.Update(library); err != nil {
		return nil, err
	}
	return toLibraryResponse(library), nil
}

// Delete removes a branch. A branch that still holds copies cannot be
// deleted; copies must be moved or retired first.
func (uc *LibraryUseCase) Delete(ctx context.Context, id string) error {
	library, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if library == nil {
		return domain.ErrLibraryNotFound
	}
	count, err := uc.copyRepo.CountByLibrary(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrLibraryHasCopies
	}
	return uc.repo.Delete(id)
}

func toLibraryResponse(l *entity.Library) *dto.LibraryResponse {
	if l == nil {
		return nil
	}
	return &dto.LibraryResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Phone:     l.Phone,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
