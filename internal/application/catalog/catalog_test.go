package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelftrack/shelftrack-api/internal/application/catalog"
	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeBookRepo struct {
	books map[string]*entity.Book
}

func (f *fakeBookRepo) Create(b *entity.Book) error { f.books[b.ID] = b; return nil }
func (f *fakeBookRepo) GetByID(id string) (*entity.Book, error) {
	return f.books[id], nil
}
func (f *fakeBookRepo) Search(filter repository.BookSearchFilter, limit, offset int) ([]*entity.Book, error) {
	var out []*entity.Book
	for _, b := range f.books {
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
func (f *fakeBookRepo) Count(filter repository.BookSearchFilter) (int, error) {
	list, _ := f.Search(filter, 0, 0)
	return len(list), nil
}
func (f *fakeBookRepo) Update(b *entity.Book) error { f.books[b.ID] = b; return nil }
func (f *fakeBookRepo) Delete(id string) error      { delete(f.books, id); return nil }

type fakeLibraryRepo struct {
	libs map[string]*entity.Library
}

func (f *fakeLibraryRepo) Create(l *entity.Library) error { f.libs[l.ID] = l; return nil }
func (f *fakeLibraryRepo) GetByID(id string) (*entity.Library, error) {
	return f.libs[id], nil
}
func (f *fakeLibraryRepo) GetByName(name string) (*entity.Library, error) {
	for _, l := range f.libs {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, nil
}
func (f *fakeLibraryRepo) List(int, int) ([]*entity.Library, error) {
	var out []*entity.Library
	for _, l := range f.libs {
		out = append(out, l)
	}
	return out, nil
}
func (f *fakeLibraryRepo) Update(l *entity.Library) error { f.libs[l.ID] = l; return nil }
func (f *fakeLibraryRepo) Delete(id string) error         { delete(f.libs, id); return nil }

type fakeCopyRepo struct {
	copies map[string]*entity.BookCopy
}

func (f *fakeCopyRepo) Create(c *entity.BookCopy) error { f.copies[c.ID] = c; return nil }
func (f *fakeCopyRepo) GetByID(id string) (*entity.BookCopy, error) {
	return f.copies[id], nil
}
func (f *fakeCopyRepo) GetForUpdate(id string) (*entity.BookCopy, error) {
	return f.copies[id], nil
}
func (f *fakeCopyRepo) GetByBookLibraryAndNumber(bookID, libraryID string, n int) (*entity.BookCopy, error) {
	for _, c := range f.copies {
		if c.BookID == bookID && c.LibraryID == libraryID && c.CopyNumber == n {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCopyRepo) ListByBook(bookID string) ([]*entity.BookCopy, error) {
	var out []*entity.BookCopy
	for _, c := range f.copies {
		if c.BookID == bookID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCopyRepo) ListByLibrary(string, int, int) ([]*entity.BookCopy, error) { return nil, nil }
func (f *fakeCopyRepo) CountAvailable(bookID, libraryID string) (int, error) {
	n := 0
	for _, c := range f.copies {
		if c.BookID != bookID || c.Status != entity.CopyStatusAvailable {
			continue
		}
		if libraryID != "" && c.LibraryID != libraryID {
			continue
		}
		n++
	}
	return n, nil
}
func (f *fakeCopyRepo) CountByLibrary(libraryID string) (int, error) {
	n := 0
	for _, c := range f.copies {
		if c.LibraryID == libraryID {
			n++
		}
	}
	return n, nil
}
func (f *fakeCopyRepo) UpdateStatus(id, status string) error {
	f.copies[id].Status = status
	return nil
}
func (f *fakeCopyRepo) Delete(id string) error { delete(f.copies, id); return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Books
// ──────────────────────────────────────────────────────────────────────────────

func newBookUC() (*catalog.BookUseCase, *fakeBookRepo) {
	repo := &fakeBookRepo{books: map[string]*entity.Book{}}
	return catalog.NewBookUseCase(repo), repo
}

func TestBookCreate(t *testing.T) {
	uc, _ := newBookUC()

	resp, err := uc.Create(context.Background(), dto.CreateBookRequest{
		Title: "  The Go Programming Language  ", Author: "Alan Donovan",
		Category: "Programming", BookType: entity.BookTypeTraditional,
	})
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", resp.Title, "title must be trimmed")
	assert.Equal(t, entity.BookTypeTraditional, resp.BookType)
	assert.NotEmpty(t, resp.ID)
}

func TestBookCreate_RejectsBlankAndBadType(t *testing.T) {
	uc, _ := newBookUC()

	cases := []dto.CreateBookRequest{
		{Title: "   ", Author: "A", Category: "C", BookType: entity.BookTypeModern},
		{Title: "T", Author: "", Category: "C", BookType: entity.BookTypeModern},
		{Title: "T", Author: "A", Category: "C", BookType: "DIGITAL"},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", in)
	}
}

func TestBookUpdate_TypeStaysFixed(t *testing.T) {
	uc, repo := newBookUC()
	created, err := uc.Create(context.Background(), dto.CreateBookRequest{
		Title: "T", Author: "A", Category: "C", BookType: entity.BookTypeTraditional,
	})
	require.NoError(t, err)

	newTitle := "T2"
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, entity.BookTypeTraditional, repo.books[created.ID].BookType,
		"the book type cannot change after creation")
}

func TestBookGetByID_Missing(t *testing.T) {
	uc, _ := newBookUC()
	_, err := uc.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookSearch_FiltersByCategory(t *testing.T) {
	uc, _ := newBookUC()
	for _, cat := range []string{"Programming", "Programming", "Fiction"} {
		_, err := uc.Create(context.Background(), dto.CreateBookRequest{
			Title: "T", Author: "A", Category: cat, BookType: entity.BookTypeModern,
		})
		require.NoError(t, err)
	}

	resp, err := uc.Search(context.Background(), dto.SearchBooksRequest{Category: "Programming"})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Page.Total)

	n, err := uc.Count(context.Background(), dto.SearchBooksRequest{Category: "Fiction"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libraries
// ──────────────────────────────────────────────────────────────────────────────

func newLibraryUC() (*catalog.LibraryUseCase, *fakeLibraryRepo, *fakeCopyRepo) {
	libs := &fakeLibraryRepo{libs: map[string]*entity.Library{}}
	copies := &fakeCopyRepo{copies: map[string]*entity.BookCopy{}}
	return catalog.NewLibraryUseCase(libs, copies), libs, copies
}

func TestLibraryCreate_DuplicateName(t *testing.T) {
	uc, _, _ := newLibraryUC()

	_, err := uc.Create(context.Background(), dto.CreateLibraryRequest{Name: "Central Library"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateLibraryRequest{Name: "Central Library"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLibraryDelete_RefusedWhileHoldingCopies(t *testing.T) {
	uc, _, copies := newLibraryUC()
	created, err := uc.Create(context.Background(), dto.CreateLibraryRequest{Name: "Central Library"})
	require.NoError(t, err)

	copies.copies["copy-1"] = &entity.BookCopy{
		ID: "copy-1", BookID: "book-1", LibraryID: created.ID,
		CopyNumber: 1, Status: entity.CopyStatusAvailable,
	}

	err = uc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrLibraryHasCopies)

	// Retire the copy, then deletion goes through.
	delete(copies.copies, "copy-1")
	require.NoError(t, uc.Delete(context.Background(), created.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Copies
// ──────────────────────────────────────────────────────────────────────────────

type copyFixture struct {
	uc     *catalog.CopyUseCase
	copies *fakeCopyRepo
	bookID string
	libID  string
}

func newCopyFixture(t *testing.T) *copyFixture {
	t.Helper()
	books := &fakeBookRepo{books: map[string]*entity.Book{
		"book-1": {ID: "book-1", Title: "T", Author: "A", Category: "C", BookType: entity.BookTypeTraditional},
	}}
	libs := &fakeLibraryRepo{libs: map[string]*entity.Library{
		"lib-1": {ID: "lib-1", Name: "Central Library"},
	}}
	copies := &fakeCopyRepo{copies: map[string]*entity.BookCopy{}}
	return &copyFixture{
		uc:     catalog.NewCopyUseCase(copies, books, libs),
		copies: copies,
		bookID: "book-1",
		libID:  "lib-1",
	}
}

func TestCopyAdd(t *testing.T) {
	f := newCopyFixture(t)

	resp, err := f.uc.Add(context.Background(), dto.AddCopyRequest{
		BookID: f.bookID, LibraryID: f.libID, CopyNumber: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CopyStatusAvailable, resp.Status, "new copies start available")
}

func TestCopyAdd_DuplicateNumberSameBranch(t *testing.T) {
	f := newCopyFixture(t)

	in := dto.AddCopyRequest{BookID: f.bookID, LibraryID: f.libID, CopyNumber: 1}
	_, err := f.uc.Add(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.Add(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrDuplicate,
		"copy numbers are unique within (book, branch)")
}

func TestCopyUpdateStatus_BorrowedIsOffLimits(t *testing.T) {
	f := newCopyFixture(t)
	created, err := f.uc.Add(context.Background(), dto.AddCopyRequest{
		BookID: f.bookID, LibraryID: f.libID, CopyNumber: 1,
	})
	require.NoError(t, err)

	// BORROWED cannot be set through inventory management.
	_, err = f.uc.UpdateStatus(context.Background(), created.ID,
		dto.UpdateCopyStatusRequest{Status: entity.CopyStatusBorrowed})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// And a copy that is out on loan cannot be touched.
	f.copies.copies[created.ID].Status = entity.CopyStatusBorrowed
	_, err = f.uc.UpdateStatus(context.Background(), created.ID,
		dto.UpdateCopyStatusRequest{Status: entity.CopyStatusLost})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCopyUpdateStatus_LostAndBack(t *testing.T) {
	f := newCopyFixture(t)
	created, err := f.uc.Add(context.Background(), dto.AddCopyRequest{
		BookID: f.bookID, LibraryID: f.libID, CopyNumber: 1,
	})
	require.NoError(t, err)

	lost, err := f.uc.UpdateStatus(context.Background(), created.ID,
		dto.UpdateCopyStatusRequest{Status: entity.CopyStatusLost})
	require.NoError(t, err)
	assert.Equal(t, entity.CopyStatusLost, lost.Status)

	found, err := f.uc.UpdateStatus(context.Background(), created.ID,
		dto.UpdateCopyStatusRequest{Status: entity.CopyStatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, entity.CopyStatusAvailable, found.Status)
}

func TestAvailability(t *testing.T) {
	f := newCopyFixture(t)
	for i := 1; i <= 2; i++ {
		_, err := f.uc.Add(context.Background(), dto.AddCopyRequest{
			BookID: f.bookID, LibraryID: f.libID, CopyNumber: i,
		})
		require.NoError(t, err)
	}

	resp, err := f.uc.Availability(context.Background(), f.bookID, f.libID)
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 2, resp.AvailableCopies)

	// Empty branch id counts across every branch.
	all, err := f.uc.Availability(context.Background(), f.bookID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.AvailableCopies)

	_, err = f.uc.Availability(context.Background(), f.bookID, "missing-lib")
	require.ErrorIs(t, err, domain.ErrLibraryNotFound)
}
