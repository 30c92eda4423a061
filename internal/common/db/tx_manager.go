package db

import (
	"context"
	"fmt"

	pgx "github.com/jackc/pgx/v4"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

// Conn is the part of *pgxpool.Pool the stores query through.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
}

type PgTxManager struct {
	pool Conn
}

func NewTxManager(pool Conn) *PgTxManager {
	return &PgTxManager{pool: pool}
}

// WithTx runs fn in one transaction; it commits when fn returns nil and
// rolls back on error or panic.
func (m *PgTxManager) WithTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) (err error) {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.Background())
			metrics.DBTransactions.WithLabelValues("panic").Inc()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(context.Background())
			metrics.DBTransactions.WithLabelValues("rollback").Inc()
			return
		}
		if err = tx.Commit(ctx); err != nil {
			metrics.DBTransactions.WithLabelValues("commit_failed").Inc()
			err = fmt.Errorf("commit transaction: %w", err)
			return
		}
		metrics.DBTransactions.WithLabelValues("commit").Inc()
	}()

	err = fn(ctx, tx)
	return err
}
