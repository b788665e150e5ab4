package repository

import (
	"context"
	"errors"

	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) port.Store {
	return &store{pool: pool}
}

func (s *store) Repositories() port.Repositories {
	return port.Repositories{
		Carts:      NewCart(s.pool),
		Products:   NewProduct(s.pool),
		Categories: NewCategory(s.pool),
		Orders:     NewOrder(s.pool),
		Users:      NewUser(s.pool),
	}
}

func (s *store) Atomic(ctx context.Context, fn func(repos port.Repositories) error) error {
	return runTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(withTxRepositories(tx))
	})
}

func withTxRepositories(tx pgx.Tx) port.Repositories {
	return port.Repositories{
		Carts:      NewCartWithTx(tx),
		Products:   NewProductWithTx(tx),
		Categories: NewCategoryWithTx(tx),
		Orders:     NewOrderWithTx(tx),
		Users:      NewUserWithTx(tx),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
