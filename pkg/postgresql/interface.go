package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// PostgreSQLClient defines the interface for PostgreSQL operations.
type PostgreSQLClient interface {
	// Basic query operations
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	// Connection management
	Ping(ctx context.Context) error
	Close()
}
