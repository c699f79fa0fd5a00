package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack-api/internal/application/dto"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
	"github.com/shelftrack/shelftrack-api/pkg/logger"
)

// Reminders fire for loans due within this window ahead of now.
const (
	windowStartOffset = 5 * 24 * time.Hour
	windowEndOffset   = 6 * 24 * time.Hour
)

// Sender delivers one reminder. The default implementation only logs;
// an AMQP publisher can be plugged in instead.
type Sender interface {
	Send(ctx context.Context, n *entity.Notification) error
}

// LogSender writes reminders to the structured log. Used when no delivery
// channel is configured.
type LogSender struct {
	Log *logger.Logger
}

// Send logs the reminder.
func (s *LogSender) Send(_ context.Context, n *entity.Notification) error {
	s.Log.Info().
		Str("user_id", n.UserID).
		Str("borrow_record_id", n.BorrowRecordID).
		Str("message", n.Message).
		Msg("due-date reminder")
	return nil
}

// UseCase records and sends due-date reminders. It is safe to invoke
// repeatedly: reminders already logged for a record are skipped, and it never
// mutates borrow record state.
type UseCase struct {
	recordRepo repository.BorrowRecordRepository
	userRepo   repository.UserRepository
	copyRepo   repository.BookCopyRepository
	bookRepo   repository.BookRepository
	notifRepo  repository.NotificationRepository
	sender     Sender
	log        *logger.Logger
	now        func() time.Time
}

// New builds the notification use case.
func New(
	recordRepo repository.BorrowRecordRepository,
	userRepo repository.UserRepository,
	copyRepo repository.BookCopyRepository,
	bookRepo repository.BookRepository,
	notifRepo repository.NotificationRepository,
	sender Sender,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		recordRepo: recordRepo,
		userRepo:   userRepo,
		copyRepo:   copyRepo,
		bookRepo:   bookRepo,
		notifRepo:  notifRepo,
		sender:     sender,
		log:        log,
		now:        time.Now,
	}
}

// CheckOverdueNotifications finds loans due in [now+5d, now+6d) and emits a
// reminder for each one that has none logged yet. A failure on one record is
// logged and skipped; the batch always runs to completion. Both the scheduler
// tick and the manual trigger endpoint call this same method.
func (uc *UseCase) CheckOverdueNotifications(ctx context.Context) error {
	now := uc.now()
	from := now.Add(windowStartOffset)
	to := now.Add(windowEndOffset)

	records, err := uc.recordRepo.ListDueBetween(from, to)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		uc.log.Info().Time("from", from).Time("to", to).Msg("no loans due in reminder window")
		return nil
	}

	sent := 0
	for _, record := range records {
		if err := uc.notifyOne(ctx, record, now); err != nil {
			uc.log.Error().Err(err).
				Str("borrow_record_id", record.ID).
				Msg("reminder failed, continuing with batch")
			continue
		}
		sent++
	}
	uc.log.Info().Int("candidates", len(records)).Int("sent", sent).Msg("reminder batch done")
	return nil
}

func (uc *UseCase) notifyOne(ctx context.Context, record *entity.BorrowRecord, now time.Time) error {
	// Dedup against the reminder log so repeated ticks inside the 24h window
	// do not re-notify.
	exists, err := uc.notifRepo.ExistsForRecord(record.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	user, err := uc.userRepo.GetByID(record.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found for record", record.UserID)
	}
	bookCopy, err := uc.copyRepo.GetByID(record.BookCopyID)
	if err != nil {
		return err
	}
	if bookCopy == nil {
		return fmt.Errorf("copy %s not found for record", record.BookCopyID)
	}
	book, err := uc.bookRepo.GetByID(bookCopy.BookID)
	if err != nil {
		return err
	}
	if book == nil {
		return fmt.Errorf("book %s not found for record", bookCopy.BookID)
	}

	n := &entity.Notification{
		ID:             uuid.New().String(),
		UserID:         record.UserID,
		BorrowRecordID: record.ID,
		Message: fmt.Sprintf("Reminder for %s: %q is due on %s",
			user.Name, book.Title, record.DueAt.Format("2006-01-02")),
		SentAt: now,
	}
	if err := uc.sender.Send(ctx, n); err != nil {
		return err
	}
	return uc.notifRepo.Create(n)
}

// ListByUser returns the user's reminder log entries.
func (uc *UseCase) ListByUser(ctx context.Context, userID string, limit, offset int) ([]dto.NotificationResponse, error) {
	list, err := uc.notifRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NotificationResponse{
			ID:             n.ID,
			UserID:         n.UserID,
			BorrowRecordID: n.BorrowRecordID,
			Message:        n.Message,
			SentAt:         n.SentAt,
		})
	}
	return items, nil
}
