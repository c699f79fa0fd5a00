package postgres

import (
	"context"
	"fmt"

	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implements the NotificationRepository port over PostgreSQL.
// The table is append-only.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository builds the reminder-log persistence adapter.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create appends a reminder log entry.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, borrow_record_id, message, sent_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, n.ID, n.UserID, n.BorrowRecordID, n.Message, n.SentAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser pages through a user's reminders, newest first.
func (r *NotificationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, borrow_record_id, message, sent_at
		FROM notifications WHERE user_id = $1 ORDER BY sent_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.BorrowRecordID, &n.Message, &n.SentAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// ExistsForRecord reports whether a reminder was already logged for the
// borrow record.
func (r *NotificationRepo) ExistsForRecord(borrowRecordID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE borrow_record_id = $1)`, borrowRecordID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("notification exists: %w", err)
	}
	return exists, nil
}
