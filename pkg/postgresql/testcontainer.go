package postgresql

import (
	"context"
	"time"

	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainer wraps a PostgreSQL testcontainer and a client connected to it.
type TestContainer struct {
	Container *postgres.PostgresContainer
	Client    *Client
	ConnStr   string
}

// TestContainerConfig holds configuration for the test container
type TestContainerConfig struct {
	Image          string
	Database       string
	Username       string
	Password       string
	StartupTimeout time.Duration
	InitScripts    []string
}

// DefaultTestContainerConfig returns a default configuration
func DefaultTestContainerConfig() *TestContainerConfig {
	return &TestContainerConfig{
		Image:          "postgres:16-alpine",
		Database:       "matchbook_test",
		Username:       "test_user",
		Password:       "test_pass",
		StartupTimeout: 2 * time.Minute,
	}
}

// NewTestContainer starts a PostgreSQL container and connects a Client to it.
func NewTestContainer(ctx context.Context, config *TestContainerConfig) (*TestContainer, error) {
	if config == nil {
		config = DefaultTestContainerConfig()
	}

	opts := []testcontainers.ContainerCustomizer{
		postgres.WithDatabase(config.Database),
		postgres.WithUsername(config.Username),
		postgres.WithPassword(config.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(config.StartupTimeout),
		),
	}
	if len(config.InitScripts) > 0 {
		opts = append(opts, postgres.WithInitScripts(config.InitScripts...))
	}

	container, err := postgres.Run(ctx, config.Image, opts...)
	if err != nil {
		return nil, errors.NewTracer("failed to start postgres container").Wrap(err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, errors.NewTracer("failed to get connection string").Wrap(err)
	}

	client, err := NewClientFromConnString(ctx, connStr)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, err
	}

	return &TestContainer{
		Container: container,
		Client:    client,
		ConnStr:   connStr,
	}, nil
}

// Close closes the client and terminates the container.
func (tc *TestContainer) Close() error {
	if tc.Client != nil {
		tc.Client.Close()
	}
	if tc.Container != nil {
		if err := testcontainers.TerminateContainer(tc.Container); err != nil {
			return errors.NewTracer("failed to terminate container").Wrap(err)
		}
	}
	return nil
}
