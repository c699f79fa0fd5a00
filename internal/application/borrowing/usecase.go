package borrowing

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

// LoanPolicy borrowing rules injected from config.
type LoanPolicy struct {
	PeriodDays int
	FinePerDay decimal.Decimal
}

// UseCase orchestrates the borrow/return state transitions of a single copy
// together with the user's active-loan bookkeeping and limit enforcement.
// All checks run against current stored state; failures are deterministic and
// never retried.
type UseCase struct {
	txRunner   TxRunner
	userRepo   repository.UserRepository
	bookRepo   repository.BookRepository
	copyRepo   repository.BookCopyRepository
	recordRepo repository.BorrowRecordRepository
	libRepo    repository.LibraryRepository
	receipts   ReceiptGenerator
	policy     LoanPolicy
	now        func() time.Time
}

// New builds the borrowing use case. receipts may be nil when PDF receipts
// are not wired (Receipt then fails with ErrInvalidInput).
func New(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	copyRepo repository.BookCopyRepository,
	recordRepo repository.BorrowRecordRepository,
	libRepo repository.LibraryRepository,
	receipts ReceiptGenerator,
	policy LoanPolicy,
) *UseCase {
	if policy.PeriodDays <= 0 {
		policy.PeriodDays = 30
	}
	return &UseCase{
		txRunner:   txRunner,
		userRepo:   userRepo,
		bookRepo:   bookRepo,
		copyRepo:   copyRepo,
		recordRepo: recordRepo,
		libRepo:    libRepo,
		receipts:   receipts,
		policy:     policy,
		now:        time.Now,
	}
}

// Borrow lends one available copy to the user. Check order matters:
// availability, then the per-type cap, then the global overdue gate. Only
// after every check passes are the record insert and the copy status flip
// applied, inside one transaction with the copy row locked and re-checked.
func (uc *UseCase) Borrow(ctx context.Context, userID, copyID string) (*dto.BorrowRecordResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	bookCopy, err := uc.copyRepo.GetByID(copyID)
	if err != nil {
		return nil, err
	}
	if bookCopy == nil {
		return nil, domain.ErrCopyNotFound
	}
	if bookCopy.Status != entity.CopyStatusAvailable {
		return nil, domain.ErrCopyNotAvailable
	}

	book, err := uc.bookRepo.GetByID(bookCopy.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}

	limit := entity.BorrowCapFor(book.BookType)
	if limit <= 0 {
		return nil, domain.ErrInvalidInput
	}
	active, err := uc.recordRepo.CountActiveByUserAndType(userID, book.BookType)
	if err != nil {
		return nil, err
	}
	if active >= limit {
		return nil, &domain.BorrowLimitError{BookType: book.BookType, Cap: limit}
	}

	// Overdue gate is global across both types.
	now := uc.now()
	overdue, err := uc.recordRepo.HasOverdue(userID, now)
	if err != nil {
		return nil, err
	}
	if overdue {
		return nil, domain.ErrOverdueBooks
	}

	record := &entity.BorrowRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		BookCopyID: copyID,
		BorrowedAt: now,
		DueAt:      now.AddDate(0, 0, uc.policy.PeriodDays),
		Status:     entity.BorrowStatusBorrowed,
		FineAmount: decimal.Zero,
	}

	err = uc.txRunner.Run(ctx, func(
		copyRepo repository.BookCopyRepository,
		recordRepo repository.BorrowRecordRepository,
	) error {
		// Re-check under the row lock: a concurrent borrow may have flipped
		// the copy between the first read and this transaction.
		locked, err := copyRepo.GetForUpdate(copyID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrCopyNotFound
		}
		if locked.Status != entity.CopyStatusAvailable {
			return domain.ErrCopyNotAvailable
		}
		if err := recordRepo.Create(record); err != nil {
			return err
		}
		return copyRepo.UpdateStatus(copyID, entity.CopyStatusBorrowed)
	})
	if err != nil {
		return nil, err
	}
	return toRecordResponse(record), nil
}

// Return closes a loan: sets returned_at and status, computes the late fine
// and flips the copy back to AVAILABLE, all in one transaction. Returning an
// already-returned record is a conflict, not a silent no-op. A non-empty
// userID restricts the operation to that user's own records; staff callers
// pass "" to act on any record.
func (uc *UseCase) Return(ctx context.Context, userID, recordID string) (*dto.BorrowRecordResponse, error) {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	if userID != "" && record.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if record.Status == entity.BorrowStatusReturned {
		return nil, domain.ErrAlreadyReturned
	}

	now := uc.now()
	record.ReturnedAt = &now
	record.Status = entity.BorrowStatusReturned
	record.FineAmount = uc.lateFine(record.DueAt, now)

	err = uc.txRunner.Run(ctx, func(
		copyRepo repository.BookCopyRepository,
		recordRepo repository.BorrowRecordRepository,
	) error {
		if err := recordRepo.Update(record); err != nil {
			return err
		}
		return copyRepo.UpdateStatus(record.BookCopyID, entity.CopyStatusAvailable)
	})
	if err != nil {
		return nil, err
	}
	return toRecordResponse(record), nil
}

// lateFine charges FinePerDay per started day past due, zero when on time.
// A return at exactly a whole-day boundary counts as that day, not the next.
func (uc *UseCase) lateFine(dueAt, returnedAt time.Time) decimal.Decimal {
	late := returnedAt.Sub(dueAt)
	if late <= 0 || uc.policy.FinePerDay.IsZero() {
		return decimal.Zero
	}
	days := int64(math.Ceil(late.Hours() / 24))
	return uc.policy.FinePerDay.Mul(decimal.NewFromInt(days))
}

// GetByID fetches one borrow record. A non-empty userID restricts the lookup
// to that user's own records; staff callers pass "".
func (uc *UseCase) GetByID(ctx context.Context, userID, recordID string) (*dto.BorrowRecordResponse, error) {
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	if userID != "" && record.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toRecordResponse(record), nil
}

// ActiveByUser lists the user's BORROWED records.
func (uc *UseCase) ActiveByUser(ctx context.Context, userID string) (*dto.BorrowListResponse, error) {
	if err := uc.requireUser(userID); err != nil {
		return nil, err
	}
	records, err := uc.recordRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	return toListResponse(records), nil
}

// OverdueByUser lists the user's BORROWED records past due at now.
func (uc *UseCase) OverdueByUser(ctx context.Context, userID string) (*dto.BorrowListResponse, error) {
	records, err := uc.recordRepo.ListOverdueByUser(userID, uc.now())
	if err != nil {
		return nil, err
	}
	return toListResponse(records), nil
}

// HasOverdue reports whether the user holds any overdue record.
func (uc *UseCase) HasOverdue(ctx context.Context, userID string) (bool, error) {
	return uc.recordRepo.HasOverdue(userID, uc.now())
}

// CountActive counts the user's BORROWED records.
func (uc *UseCase) CountActive(ctx context.Context, userID string) (int, error) {
	if err := uc.requireUser(userID); err != nil {
		return 0, err
	}
	return uc.recordRepo.CountActiveByUser(userID)
}

// Quota returns per-type active counts against the caps, for display.
func (uc *UseCase) Quota(ctx context.Context, userID string) (*dto.QuotaResponse, error) {
	if err := uc.requireUser(userID); err != nil {
		return nil, err
	}
	traditional, err := uc.recordRepo.CountActiveByUserAndType(userID, entity.BookTypeTraditional)
	if err != nil {
		return nil, err
	}
	modern, err := uc.recordRepo.CountActiveByUserAndType(userID, entity.BookTypeModern)
	if err != nil {
		return nil, err
	}
	return &dto.QuotaResponse{
		UserID:          userID,
		TraditionalUsed: traditional,
		TraditionalCap:  entity.TraditionalBorrowCap,
		ModernUsed:      modern,
		ModernCap:       entity.ModernBorrowCap,
	}, nil
}

// Receipt renders the borrow receipt PDF for a record. A non-empty userID
// restricts it to that user's own records; staff callers pass "".
func (uc *UseCase) Receipt(ctx context.Context, userID, recordID string) ([]byte, error) {
	if uc.receipts == nil {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.recordRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	if userID != "" && record.UserID != userID {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	bookCopy, err := uc.copyRepo.GetByID(record.BookCopyID)
	if err != nil {
		return nil, err
	}
	if bookCopy == nil {
		return nil, domain.ErrCopyNotFound
	}
	book, err := uc.bookRepo.GetByID(bookCopy.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	library, err := uc.libRepo.GetByID(bookCopy.LibraryID)
	if err != nil {
		return nil, err
	}
	if library == nil {
		return nil, domain.ErrLibraryNotFound
	}
	return uc.receipts.GenerateReceipt(ctx, ReceiptData{
		RecordID:    record.ID,
		UserName:    user.Name,
		BookTitle:   book.Title,
		BookAuthor:  book.Author,
		LibraryName: library.Name,
		CopyNumber:  bookCopy.CopyNumber,
		BorrowedAt:  record.BorrowedAt,
		DueAt:       record.DueAt,
		ReturnedAt:  record.ReturnedAt,
		FineAmount:  record.FineAmount,
	})
}

func (uc *UseCase) requireUser(userID string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

func toRecordResponse(r *entity.BorrowRecord) *dto.BorrowRecordResponse {
	if r == nil {
		return nil
	}
	return &dto.BorrowRecordResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		BookCopyID: r.BookCopyID,
		BorrowedAt: r.BorrowedAt,
		DueAt:      r.DueAt,
		ReturnedAt: r.ReturnedAt,
		Status:     r.Status,
		FineAmount: r.FineAmount,
	}
}

func toListResponse(records []*entity.BorrowRecord) *dto.BorrowListResponse {
	items := make([]dto.BorrowRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *toRecordResponse(r))
	}
	return &dto.BorrowListResponse{Items: items}
}
