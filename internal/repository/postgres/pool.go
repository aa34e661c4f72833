// Package postgres contains PostgreSQL implementations of repository interfaces.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhi1083/simple-crud-ops/internal/errs"
)

// PgxPool is a minimal abstraction over a Postgres connection pool,
// used by repositories. It is implemented by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	// Exec executes a SQL command and returns the command tag.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	// Query executes a SELECT and returns a rows iterator.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	// QueryRow executes a query expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	// Close shuts down the pool and frees resources.
	Close()
}

// DB wraps pgxpool.Pool to satisfy repository constructors and allow testing.
// OpTimeout bounds every single store operation; zero disables the bound.
type DB struct {
	Pool      PgxPool
	OpTimeout time.Duration
}

// New creates a new connection pool for the given DSN.
func New(ctx context.Context, dsn string, opTimeout time.Duration) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{Pool: pool, OpTimeout: opTimeout}, nil
}

// Close closes the underlying pool.
func (db *DB) Close() { db.Pool.Close() }

// opCtx derives a per-operation deadline so a stalled store surfaces as
// ErrStoreUnavailable instead of blocking the request.
func (db *DB) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.OpTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, db.OpTimeout)
}

// storeErr maps deadline expiry and connection-class failures to the
// store-unavailable sentinel; query-level errors pass through.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var connErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &connErr) || pgconn.SafeToRetry(err) {
		return errs.ErrStoreUnavailable
	}
	return err
}

// isUniqueViolation reports whether the error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
