package snapshot

import (
	"context"
	"encoding/json"
	"time"

	snapshotv1 "github.com/muhammadchandra19/matchbook/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/redis"
)

// Store keeps the latest book snapshot of one pair in Redis.
type Store struct {
	key         string
	ttl         time.Duration
	logger      *logger.Logger
	redisclient redis.Client
}

var _ snapshotv1.Store = (*Store)(nil)

// NewSnapshotStore creates a store writing under prefix + "snapshot:" + pair.
func NewSnapshotStore(redisclient redis.Client, prefix, pair string, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		key:         prefix + "snapshot:" + pair,
		ttl:         ttl,
		redisclient: redisclient,
		logger:      log.WithFields(logger.NewField("key", prefix+"snapshot:"+pair)),
	}
}

// Key returns the Redis key of the snapshot.
func (s *Store) Key() string {
	return s.key
}

// Store stores the snapshot in Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("action", "marshal snapshot"))
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.key, buf, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("action", "store snapshot"))
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Snapshot stored",
		logger.NewField("orderOffset", snapshot.OrderOffset),
		logger.NewField("orders", len(snapshot.OrderBookSnapshot.Orders)),
	)
	return nil
}

// LoadStore loads the snapshot from Redis. It returns nil when none exists.
func (s *Store) LoadStore(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("action", "load snapshot"))
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found", logger.NewField("action", "load snapshot"))
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("action", "unmarshal snapshot"))
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &snapshot, nil
}
