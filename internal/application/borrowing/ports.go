package borrowing

import (
	"context"
	"time"

	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner executes a function inside one database transaction, passing
// repositories bound to that transaction. It guarantees the copy status flip
// and the borrow record write commit or roll back as a unit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		copyRepo repository.BookCopyRepository,
		recordRepo repository.BorrowRecordRepository,
	) error) error
}

// ReceiptData is everything the receipt PDF needs, resolved by the use case
// so the generator stays free of repository access.
type ReceiptData struct {
	RecordID    string
	UserName    string
	BookTitle   string
	BookAuthor  string
	LibraryName string
	CopyNumber  int
	BorrowedAt  time.Time
	DueAt       time.Time
	ReturnedAt  *time.Time
	FineAmount  decimal.Decimal
}

// ReceiptGenerator renders a borrow receipt as PDF bytes.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
