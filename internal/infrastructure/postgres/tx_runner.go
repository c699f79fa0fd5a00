package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shelftrack/shelftrack-api/internal/application/borrowing"
	"github.com/shelftrack/shelftrack-api/internal/domain/repository"
)

var _ borrowing.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside one PostgreSQL transaction, handing out
// repositories bound to the tx. The copy status flip and the borrow record
// write commit or roll back together.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner from the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repos and commits, or
// rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	copyRepo repository.BookCopyRepository,
	recordRepo repository.BorrowRecordRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	copyRepo := NewBookCopyRepository(tx)
	recordRepo := NewBorrowRecordRepository(tx)

	if err := fn(copyRepo, recordRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
