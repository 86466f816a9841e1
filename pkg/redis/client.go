package redis

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger  *logger.Logger
	config  *Config
	cmdable redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
func NewClient(logger *logger.Logger, config *Config) Client {
	return &client{
		logger: logger,
		config: config,
	}
}

func configError(message, field string) error {
	return errors.NewErrorDetails(message, string(errors.RedisConfigError), field)
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return configError("Redis config is nil", "connect")
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	switch c.config.Mode {
	case Standalone:
		c.cmdable = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	case Cluster:
		c.cmdable = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			MaxIdleConns:    c.config.MaxIdleConns,
			ConnMaxLifetime: c.config.ConnMaxLifetime,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewTracer("redis_connect_error").Wrap(err)
	}
	return nil
}

// Reconnect retries Connect with exponential backoff and jitter. It reports
// whether a connection was established before the retries ran out.
func (c *client) Reconnect(ctx context.Context) bool {
	baseDelay := c.config.MinRetryBackoff
	maxDelay := c.config.MaxRetryBackoff

	for i := range c.config.ReconnectMaxRetries {
		backoff := min(baseDelay*time.Duration(math.Pow(2, float64(i))), maxDelay)

		jitter := time.Duration(rand.IntN(1000)) * time.Millisecond
		totalDelay := backoff + jitter

		c.logger.Info("Reconnecting to Redis",
			logger.NewField("attempt", i+1),
			logger.NewField("delay", totalDelay),
		)

		select {
		case <-ctx.Done():
			c.logger.Info("Reconnect cancelled", logger.NewField("reason", ctx.Err()))
			return false
		case <-time.After(totalDelay):
			connectCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
			err := c.Connect(connectCtx)
			cancel()
			if err == nil {
				c.logger.Info("Reconnected to Redis successfully", logger.NewField("attempt", i+1))
				return true
			}
			c.logger.Error(errors.TracerFromError(err), logger.NewField("attempt", i+1))
		}
	}

	return false
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.cmdable == nil {
		return errors.NewErrorDetails("Redis client is not connected", string(errors.RedisDisconnectionError), "disconnect")
	}
	return c.cmdable.Close()
}

func (c *client) Ping(ctx context.Context) error {
	if c.cmdable == nil {
		return errors.NewErrorDetails("Redis client is not connected", string(errors.RedisPingError), "ping")
	}
	if err := c.cmdable.Ping(ctx).Err(); err != nil {
		return errors.NewErrorDetails("Failed to ping Redis", string(errors.RedisPingError), "ping")
	}
	return nil
}

// Get returns an empty string without error when the key does not exist.
func (c *client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.cmdable.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), "get")
	}
	return val, nil
}

func (c *client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if err := c.cmdable.Set(ctx, key, value, expiration).Err(); err != nil {
		return errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), "set")
	}
	return nil
}

func (c *client) Del(ctx context.Context, keys ...string) (int64, error) {
	deleted, err := c.cmdable.Del(ctx, keys...).Result()
	if err != nil {
		return 0, errors.NewErrorDetails("Failed to delete keys from Redis", string(errors.RedisDelError), "del")
	}
	return deleted, nil
}
