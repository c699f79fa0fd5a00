package borrowing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// The fine charges per started late day: any fraction of a day counts, but a
// return at an exact whole-day boundary counts as that day, not the next.
func TestLateFineWholeDayBoundary(t *testing.T) {
	perDay := decimal.RequireFromString("0.50")
	uc := &UseCase{policy: LoanPolicy{FinePerDay: perDay}}
	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		returnedAt time.Time
		wantDays   int64
	}{
		{"on time", due, 0},
		{"one second late starts day one", due.Add(time.Second), 1},
		{"exactly one day late is still day one", due.Add(24 * time.Hour), 1},
		{"past one day starts day two", due.Add(24*time.Hour + time.Second), 2},
		{"exactly two days late is day two", due.Add(48 * time.Hour), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want := perDay.Mul(decimal.NewFromInt(tc.wantDays))
			got := uc.lateFine(due, tc.returnedAt)
			assert.True(t, got.Equal(want), "expected %s, got %s", want, got)
		})
	}
}

func TestLateFineZeroRateChargesNothing(t *testing.T) {
	uc := &UseCase{policy: LoanPolicy{}}
	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	got := uc.lateFine(due, due.Add(72*time.Hour))
	assert.True(t, got.IsZero())
}
