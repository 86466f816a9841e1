package config

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/matchbook/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("PAIR", "BTC-USD")
	t.Setenv("KAFKA_TOPIC", "commands")
	t.Setenv("KAFKA_BROKER", "kafka-1:9092,kafka-2:9092")
	t.Setenv("REDIS_ADDRS", "redis:6379")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("ENGINE_SNAPSHOT_OFFSET_DELTA", "50")

	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "BTC-USD", cfg.Pair)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, 0, cfg.Partition)
	assert.Equal(t, []string{"redis:6379"}, cfg.Redis.Addrs)
	assert.Equal(t, redis.Standalone, cfg.Redis.Mode)
	assert.True(t, cfg.Postgres.Enabled)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, int64(50), cfg.SnapshotOffsetDelta)
	assert.Equal(t, 5*time.Second, cfg.SnapshotInterval)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "book-events", cfg.PublisherConfig.Topic)
	assert.Equal(t, cfg.KafkaConfig.Brokers, cfg.PublisherBrokers())
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("KAFKA_TOPIC", "commands")
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	err := Load(&Config{})
	assert.Error(t, err)
}

func TestConfig_PublisherBrokers(t *testing.T) {
	cfg := &Config{
		KafkaConfig:     KafkaConfig{Brokers: []string{"a:9092"}},
		PublisherConfig: PublisherConfig{Brokers: []string{"b:9092"}},
	}
	assert.Equal(t, []string{"b:9092"}, cfg.PublisherBrokers())
}
