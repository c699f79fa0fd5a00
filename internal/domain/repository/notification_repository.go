package repository

import "github.com/shelftrack/shelftrack-api/internal/domain/entity"

// NotificationRepository is the persistence port for the append-only
// reminder log.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByUser(userID string, limit, offset int) ([]*entity.Notification, error)
	// ExistsForRecord reports whether a reminder was already logged for the
	// borrow record. Used to deduplicate scheduler ticks.
	ExistsForRecord(borrowRecordID string) (bool, error)
}
