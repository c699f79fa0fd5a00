package entity

import "time"

// Notification is an append-only reminder log entry. It never mutates the
// borrow record it references.
type Notification struct {
	ID             string
	UserID         string
	BorrowRecordID string
	Message        string
	SentAt         time.Time
}
