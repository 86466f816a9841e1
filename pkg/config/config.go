package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/matchbook/pkg/postgresql"
	"github.com/muhammadchandra19/matchbook/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return env.Parse(cfg)
}

// Config holds the configuration for the application
type Config struct {
	Pair     string `env:"PAIR,required"` // Trading pair, e.g., BTC-USD
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	KafkaConfig     `envPrefix:"KAFKA_"`     // Command topic consumer
	PublisherConfig `envPrefix:"PUBLISHER_"` // Event topic producer
	HTTPConfig      `envPrefix:"HTTP_"`
	EngineConfig    `envPrefix:"ENGINE_"`

	Redis    redis.Config   `envPrefix:"REDIS_"`
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
}

// KafkaConfig holds the configuration for the command consumer.
type KafkaConfig struct {
	Topic string `env:"TOPIC,required"`
	// Partition is read directly so the engine can seek to its snapshot offset.
	Partition int           `env:"PARTITION" envDefault:"0"`
	Brokers   []string      `env:"BROKER,required"`
	MinBytes  int           `env:"MIN_BYTES" envDefault:"1"`
	MaxBytes  int           `env:"MAX_BYTES" envDefault:"10485760"`
	MaxWait   time.Duration `env:"MAX_WAIT" envDefault:"500ms"`
}

// PublisherConfig holds the configuration for the book event producer.
type PublisherConfig struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	Topic        string        `env:"TOPIC" envDefault:"book-events"`
	Brokers      []string      `env:"BROKER"`
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" envDefault:"10ms"`
}

// HTTPConfig holds the configuration for the inspection server.
type HTTPConfig struct {
	Addr              string        `env:"ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	MaxDepth          int           `env:"MAX_DEPTH" envDefault:"100"`
}

// EngineConfig holds the snapshot and shutdown settings of the engine.
type EngineConfig struct {
	SnapshotInterval    time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"5s"`
	SnapshotOffsetDelta int64         `env:"SNAPSHOT_OFFSET_DELTA" envDefault:"1000"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// PostgresConfig enables the optional event journal.
type PostgresConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"false"`
	postgresql.Config
}

// PublisherBrokers falls back to the consumer brokers when no producer brokers are set.
func (c *Config) PublisherBrokers() []string {
	if len(c.PublisherConfig.Brokers) > 0 {
		return c.PublisherConfig.Brokers
	}
	return c.KafkaConfig.Brokers
}
