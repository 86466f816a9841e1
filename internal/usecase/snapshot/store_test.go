package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	snapshotv1 "github.com/muhammadchandra19/matchbook/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	redismock "github.com/muhammadchandra19/matchbook/pkg/redis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *snapshotv1.Snapshot {
	return &snapshotv1.Snapshot{
		OrderOffset: 12,
		OrderBookSnapshot: snapshotv1.OrderBookSnapshot{
			Orders: []snapshotv1.BookOrder{
				{OrderID: "B1", Bid: true, Price: 99, Size: 3},
				{OrderID: "S1", Bid: false, Price: 101, Size: 4},
			},
			EventSequence: 30,
		},
	}
}

func TestStore_Store(t *testing.T) {
	testCases := []struct {
		name    string
		setErr  error
		wantErr bool
	}{
		{name: "stored"},
		{name: "redis failure", setErr: errors.NewErrorDetails("Failed to set value in Redis", string(errors.RedisSetError), "set"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redismock.NewMockClient(ctrl)
			store := NewSnapshotStore(client, "matchbook:", "BTC-USD", time.Hour, logger.NewNopLogger())
			snapshot := testSnapshot()

			client.EXPECT().
				Set(gomock.Any(), "matchbook:snapshot:BTC-USD", gomock.Any(), time.Hour).
				DoAndReturn(func(_ context.Context, _ string, value any, _ time.Duration) error {
					var decoded snapshotv1.Snapshot
					require.NoError(t, json.Unmarshal(value.([]byte), &decoded))
					assert.Equal(t, *snapshot, decoded)
					return tc.setErr
				})

			err := store.Store(context.Background(), snapshot)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, "snapshot_store_error", err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStore_LoadStore(t *testing.T) {
	encoded, err := json.Marshal(testSnapshot())
	require.NoError(t, err)

	testCases := []struct {
		name    string
		data    string
		getErr  error
		want    *snapshotv1.Snapshot
		wantErr string
	}{
		{name: "found", data: string(encoded), want: testSnapshot()},
		{name: "missing", data: ""},
		{name: "corrupt", data: "{", wantErr: "snapshot_unmarshal_error"},
		{name: "redis failure", getErr: errors.NewErrorDetails("Failed to get value from Redis", string(errors.RedisGetError), "get"), wantErr: "snapshot_load_error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := redismock.NewMockClient(ctrl)
			store := NewSnapshotStore(client, "matchbook:", "BTC-USD", 0, logger.NewNopLogger())
			client.EXPECT().Get(gomock.Any(), store.Key()).Return(tc.data, tc.getErr)

			got, err := store.LoadStore(context.Background())
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
