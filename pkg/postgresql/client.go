package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
)

// Client is the PostgreSQL client.
type Client struct {
	pool *pgxpool.Pool
}

// Config is the PostgreSQL client configuration.
type Config struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	Database string `env:"DATABASE" envDefault:"matchbook"`
	Username string `env:"USERNAME" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:""`
	SSLMode  string `env:"SSL_MODE" envDefault:"prefer"`

	MaxConns        int32         `env:"MAX_CONNS" envDefault:"4"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"1"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"2h"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"15m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`

	// Application name for connection tracking
	ApplicationName string `env:"APPLICATION_NAME" envDefault:"matchbook"`
}

// Ensure Client implements PostgreSQLClient interface
var _ PostgreSQLClient = (*Client)(nil)

// NewClient creates a new PostgreSQL client and verifies the connection.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	pgxConfig, err := pgxpool.ParseConfig(buildConnectionString(config))
	if err != nil {
		return nil, errors.NewTracer("failed to parse postgresql config").Wrap(err)
	}

	pgxConfig.MaxConns = config.MaxConns
	pgxConfig.MinConns = config.MinConns
	pgxConfig.MaxConnLifetime = config.MaxConnLifetime
	pgxConfig.MaxConnIdleTime = config.MaxConnIdleTime
	pgxConfig.ConnConfig.ConnectTimeout = config.ConnectTimeout
	if config.ApplicationName != "" {
		pgxConfig.ConnConfig.RuntimeParams["application_name"] = config.ApplicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	if err != nil {
		return nil, errors.NewTracer("failed to create postgresql pool").Wrap(err)
	}
	return newClientFromPool(ctx, pool)
}

// NewClientFromConnString creates a client from a ready-made connection string.
func NewClientFromConnString(ctx context.Context, connString string) (*Client, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, errors.NewTracer("failed to create postgresql pool").Wrap(err)
	}
	return newClientFromPool(ctx, pool)
}

func newClientFromPool(ctx context.Context, pool *pgxpool.Pool) (*Client, error) {
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewTracer("failed to ping postgresql").Wrap(err)
	}
	return &Client{pool: pool}, nil
}

// buildConnectionString constructs the PostgreSQL connection string
func buildConnectionString(config Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.Database,
		config.SSLMode,
	)
}

// Close closes the connection pool.
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Ping pings the connection pool.
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// Exec executes a query without returning any rows
func (c *Client) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.pool.Exec(ctx, sql, args...)
}

// QueryRow executes a query that is expected to return at most one row
func (c *Client) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.pool.QueryRow(ctx, sql, args...)
}
