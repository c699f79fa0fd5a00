package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelftrack/shelftrack-api/internal/application/notification"
	"github.com/shelftrack/shelftrack-api/internal/domain/entity"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
	"github.com/shelftrack/shelftrack-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeRecordRepo struct {
	records []*entity.BorrowRecord

	// window bounds captured from the last ListDueBetween call
	lastFrom, lastTo time.Time
}

func (f *fakeRecordRepo) Create(*entity.BorrowRecord) error              { return nil }
func (f *fakeRecordRepo) GetByID(string) (*entity.BorrowRecord, error)   { return nil, nil }
func (f *fakeRecordRepo) Update(*entity.BorrowRecord) error              { return nil }
func (f *fakeRecordRepo) ListActiveByUser(string) ([]*entity.BorrowRecord, error) {
	return nil, nil
}
func (f *fakeRecordRepo) ListOverdueByUser(string, time.Time) ([]*entity.BorrowRecord, error) {
	return nil, nil
}
func (f *fakeRecordRepo) CountActiveByUserAndType(string, string) (int, error) { return 0, nil }
func (f *fakeRecordRepo) CountActiveByUser(string) (int, error)                { return 0, nil }
func (f *fakeRecordRepo) HasOverdue(string, time.Time) (bool, error)           { return false, nil }
func (f *fakeRecordRepo) ListDueBetween(from, to time.Time) ([]*entity.BorrowRecord, error) {
	f.lastFrom, f.lastTo = from, to
	var out []*entity.BorrowRecord
	for _, r := range f.records {
		if r.Status == entity.BorrowStatusBorrowed && !r.DueAt.Before(from) && r.DueAt.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(*entity.User) error                  { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error)    { return f.users[id], nil }
func (f *fakeUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (f *fakeUserRepo) Update(*entity.User) error                  { return nil }
func (f *fakeUserRepo) List(int, int) ([]*entity.User, error)      { return nil, nil }
func (f *fakeUserRepo) Delete(string) error                        { return nil }

type fakeCopyRepo struct {
	copies map[string]*entity.BookCopy
}

func (f *fakeCopyRepo) Create(*entity.BookCopy) error                  { return nil }
func (f *fakeCopyRepo) GetByID(id string) (*entity.BookCopy, error)    { return f.copies[id], nil }
func (f *fakeCopyRepo) GetForUpdate(id string) (*entity.BookCopy, error) {
	return f.copies[id], nil
}
func (f *fakeCopyRepo) GetByBookLibraryAndNumber(string, string, int) (*entity.BookCopy, error) {
	return nil, nil
}
func (f *fakeCopyRepo) ListByBook(string) ([]*entity.BookCopy, error)           { return nil, nil }
func (f *fakeCopyRepo) ListByLibrary(string, int, int) ([]*entity.BookCopy, error) { return nil, nil }
func (f *fakeCopyRepo) CountAvailable(string, string) (int, error)              { return 0, nil }
func (f *fakeCopyRepo) CountByLibrary(string) (int, error)                      { return 0, nil }
func (f *fakeCopyRepo) UpdateStatus(string, string) error                       { return nil }
func (f *fakeCopyRepo) Delete(string) error                                     { return nil }

type fakeBookRepo struct {
	books map[string]*entity.Book
}

func (f *fakeBookRepo) Create(*entity.Book) error               { return nil }
func (f *fakeBookRepo) GetByID(id string) (*entity.Book, error) { return f.books[id], nil }
func (f *fakeBookRepo) Search(repository.BookSearchFilter, int, int) ([]*entity.Book, error) {
	return nil, nil
}
func (f *fakeBookRepo) Count(repository.BookSearchFilter) (int, error) { return 0, nil }
func (f *fakeBookRepo) Update(*entity.Book) error                      { return nil }
func (f *fakeBookRepo) Delete(string) error                            { return nil }

type fakeNotifRepo struct {
	created []*entity.Notification
}

func (f *fakeNotifRepo) Create(n *entity.Notification) error {
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotifRepo) ListByUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}
func (f *fakeNotifRepo) ExistsForRecord(recordID string) (bool, error) {
	for _, n := range f.created {
		if n.BorrowRecordID == recordID {
			return true, nil
		}
	}
	return false, nil
}

// captureSender records deliveries and can be told to fail for one user.
type captureSender struct {
	sent       []*entity.Notification
	failUserID string
}

func (s *captureSender) Send(_ context.Context, n *entity.Notification) error {
	if s.failUserID != "" && n.UserID == s.failUserID {
		return errors.New("delivery failed")
	}
	s.sent = append(s.sent, n)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc      *notification.UseCase
	records *fakeRecordRepo
	notifs  *fakeNotifRepo
	sender  *captureSender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Name: "Ada Lovelace"},
		"user-2": {ID: "user-2", Name: "Grace Hopper"},
	}}
	books := &fakeBookRepo{books: map[string]*entity.Book{
		"book-1": {ID: "book-1", Title: "The Go Programming Language"},
	}}
	copies := &fakeCopyRepo{copies: map[string]*entity.BookCopy{
		"copy-1": {ID: "copy-1", BookID: "book-1"},
		"copy-2": {ID: "copy-2", BookID: "book-1"},
	}}
	records := &fakeRecordRepo{}
	notifs := &fakeNotifRepo{}
	sender := &captureSender{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := notification.New(records, users, copies, books, notifs, sender, log)
	return &fixture{uc: uc, records: records, notifs: notifs, sender: sender}
}

// dueIn adds a BORROWED record for the user due the given duration from now.
func (f *fixture) dueIn(id, userID, copyID string, d time.Duration) {
	f.records.records = append(f.records.records, &entity.BorrowRecord{
		ID: id, UserID: userID, BookCopyID: copyID,
		DueAt:  time.Now().Add(d),
		Status: entity.BorrowStatusBorrowed,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCheck_WindowIsFiveToSixDaysAhead(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))

	assert.Equal(t, 24*time.Hour, f.records.lastTo.Sub(f.records.lastFrom),
		"the reminder window spans exactly one day")
	assert.WithinDuration(t, time.Now().Add(5*24*time.Hour), f.records.lastFrom, time.Minute,
		"the window starts five days ahead")
}

func TestCheck_NotifiesLoansInsideWindowOnly(t *testing.T) {
	f := newFixture(t)
	f.dueIn("rec-in", "user-1", "copy-1", 5*24*time.Hour+time.Hour)   // inside
	f.dueIn("rec-early", "user-1", "copy-2", 3*24*time.Hour)          // too soon
	f.dueIn("rec-late", "user-2", "copy-1", 8*24*time.Hour)           // too far out

	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "rec-in", f.sender.sent[0].BorrowRecordID)
	assert.Contains(t, f.sender.sent[0].Message, "Ada Lovelace")
	assert.Contains(t, f.sender.sent[0].Message, "The Go Programming Language")
}

func TestCheck_EmptyWindowIsNoOp(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))
	assert.Empty(t, f.sender.sent)
	assert.Empty(t, f.notifs.created)
}

func TestCheck_SecondTickDoesNotRenotify(t *testing.T) {
	f := newFixture(t)
	f.dueIn("rec-1", "user-1", "copy-1", 5*24*time.Hour+time.Hour)

	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))
	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))

	assert.Len(t, f.sender.sent, 1, "the second tick must be deduplicated")
	assert.Len(t, f.notifs.created, 1)
}

func TestCheck_OneFailureDoesNotStopBatch(t *testing.T) {
	f := newFixture(t)
	f.sender.failUserID = "user-1"
	f.dueIn("rec-1", "user-1", "copy-1", 5*24*time.Hour+time.Hour)
	f.dueIn("rec-2", "user-2", "copy-2", 5*24*time.Hour+2*time.Hour)

	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()),
		"a per-record failure must not fail the batch")

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "user-2", f.sender.sent[0].UserID)
	assert.Len(t, f.notifs.created, 1, "the failed reminder must not be logged as sent")
}

func TestCheck_FailedSendRetriesNextTick(t *testing.T) {
	f := newFixture(t)
	f.sender.failUserID = "user-1"
	f.dueIn("rec-1", "user-1", "copy-1", 5*24*time.Hour+time.Hour)

	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))
	require.Empty(t, f.notifs.created)

	// Delivery recovers before the next tick.
	f.sender.failUserID = ""
	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))
	assert.Len(t, f.sender.sent, 1)
	assert.Len(t, f.notifs.created, 1)
}

func TestListByUser(t *testing.T) {
	f := newFixture(t)
	f.dueIn("rec-1", "user-1", "copy-1", 5*24*time.Hour+time.Hour)
	require.NoError(t, f.uc.CheckOverdueNotifications(context.Background()))

	mine, err := f.uc.ListByUser(context.Background(), "user-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "rec-1", mine[0].BorrowRecordID)

	other, err := f.uc.ListByUser(context.Background(), "user-2", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, other)
}
