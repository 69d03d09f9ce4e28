package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the stores use.
// Tests substitute a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Row-level policy shared by request and comment queries. $1 is always the
// caller's user id.
const (
	callerIsLandlord = `EXISTS (SELECT 1 FROM profiles me WHERE me.id = $1 AND me.role = 'landlord')`
	callerIsTenant   = `EXISTS (SELECT 1 FROM profiles me WHERE me.id = $1 AND me.role = 'tenant')`
)
