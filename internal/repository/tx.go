package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cyberfanta/shopping-exercise/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(q *db.Queries) (T, error)) (T, error) {
	// If we're already in a transaction (pool is nil), just use the existing queries
	if pool == nil {
		return fn(q)
	}

	var result T
	err := runTx(ctx, pool, func(tx pgx.Tx) error {
		var err error
		result, err = fn(db.New(tx))
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// runTx commits when fn returns nil and rolls back otherwise, including when fn panics.
// Rollback runs on a context detached from ctx cancellation.
func runTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) (txErr error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
		if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}
	committed = true

	return nil
}
