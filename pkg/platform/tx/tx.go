// Package tx carries a *sql.Tx on the context so Postgres stores join an
// enclosing unit of work without changing their signatures.
package tx

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct{}

// Executor is the query surface shared by *sql.DB and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Unit runs fn so that every store call made with the ctx it receives
// observes the same transaction.
type Unit func(ctx context.Context, fn func(ctx context.Context) error) error

func current(ctx context.Context) *sql.Tx {
	t, _ := ctx.Value(txKey{}).(*sql.Tx)
	return t
}

// Using returns the transaction on ctx, or db when there is none.
func Using(ctx context.Context, db *sql.DB) Executor {
	if t := current(ctx); t != nil {
		return t
	}
	return db
}

// Run executes fn in a transaction opened with opts. A transaction already on
// ctx is reused and left for its owner to finish.
func Run(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if current(ctx) != nil {
		return fn(ctx)
	}
	t, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = t.Rollback()
		}
	}()
	if err = fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}
	return t.Commit()
}

// ReadSnapshot returns a Unit that runs in a read-only REPEATABLE READ
// transaction.
func ReadSnapshot(db *sql.DB) Unit {
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		return Run(ctx, db, opts, fn)
	}
}
