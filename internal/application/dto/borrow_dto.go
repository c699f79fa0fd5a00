package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BorrowRequest input for borrowing a copy. The user comes from the request
// context (JWT), never from the body.
type BorrowRequest struct {
	BookCopyID string `json:"book_copy_id" validate:"required,uuid"`
}

// BorrowRecordResponse loan output.
type BorrowRecordResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	BookCopyID string          `json:"book_copy_id"`
	BorrowedAt time.Time       `json:"borrowed_at"`
	DueAt      time.Time       `json:"due_at"`
	ReturnedAt *time.Time      `json:"returned_at,omitempty"`
	Status     string          `json:"status"`
	FineAmount decimal.Decimal `json:"fine_amount"`
}

// BorrowListResponse list of loans.
type BorrowListResponse struct {
	Items []BorrowRecordResponse `json:"items"`
}

// QuotaResponse per-type active loan counts against the caps, for display.
type QuotaResponse struct {
	UserID          string `json:"user_id"`
	TraditionalUsed int    `json:"traditional_used"`
	TraditionalCap  int    `json:"traditional_cap"`
	ModernUsed      int    `json:"modern_used"`
	ModernCap       int    `json:"modern_cap"`
}

// BorrowCountResponse number of active loans held by a user.
type BorrowCountResponse struct {
	UserID string `json:"user_id"`
	Active int    `json:"active"`
}

// OverdueStatusResponse whether a user currently holds overdue loans.
type OverdueStatusResponse struct {
	UserID     string `json:"user_id"`
	HasOverdue bool   `json:"has_overdue"`
}

// NotificationResponse reminder log entry output.
type NotificationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	BorrowRecordID string    `json:"borrow_record_id"`
	Message        string    `json:"message"`
	SentAt         time.Time `json:"sent_at"`
}
