package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the Postgres stores run on. Both *sql.DB and
// *sql.Tx satisfy it, so a store built over the pool and the copy returned
// by WithTx share one implementation.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
