package db

import (
	"context"
	"database/sql"
)

// Executor is satisfied by both *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type TxManager interface {
	// RunInTx executes fn within a database transaction. The transaction is
	// carried by the context passed to fn and is committed when fn returns nil,
	// rolled back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExecutorFromContext returns the transaction in ctx, or fallback when there is none.
func ExecutorFromContext(ctx context.Context, fallback Executor) Executor {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return fallback
}
