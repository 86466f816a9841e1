package eventpublisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	eventv1 "github.com/muhammadchandra19/matchbook/internal/domain/event/v1"
	eventmock "github.com/muhammadchandra19/matchbook/internal/domain/event/v1/mock"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayloads() []*eventv1.Payload {
	ts := time.Unix(1700000000, 0)
	return []*eventv1.Payload{
		eventv1.CreateFromEvent("BTC-USD", 1, 5, orderbookv1.Event{Type: orderbookv1.EventTypeMatch, OrderID: "S1", IncomingOrderID: "B1", Side: orderbookv1.SideBuy, Price: 100, Quantity: 2}, ts),
		eventv1.CreateFromEvent("BTC-USD", 2, 5, orderbookv1.Event{Type: orderbookv1.EventTypeAdd, OrderID: "B1", Side: orderbookv1.SideBuy, Price: 100, Quantity: 1}, ts),
	}
}

func TestToMessages(t *testing.T) {
	payloads := testPayloads()

	msgs := toMessages(payloads)

	require.Len(t, msgs, 2)
	for i, msg := range msgs {
		assert.Equal(t, "BTC-USD", string(msg.Key))
		assert.Equal(t, string(payloads[i].Type), string(msg.Headers[0].Value))
		decoded := eventv1.FromBytes(msg.Value)
		require.NotNil(t, decoded)
		assert.Equal(t, payloads[i].Sequence, decoded.Sequence)
	}
}

func TestPublisher_EmptyBatch(t *testing.T) {
	p := NewPublisher(nil, nil)
	assert.NoError(t, p.PublishEvents(context.Background(), nil))
}

func TestMulti_PublishEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := eventmock.NewMockPublisher(ctrl)
	second := eventmock.NewMockPublisher(ctrl)
	third := eventmock.NewMockPublisher(ctrl)
	payloads := testPayloads()
	boom := errors.New("broker down")

	gomock.InOrder(
		first.EXPECT().PublishEvents(gomock.Any(), payloads).Return(nil),
		second.EXPECT().PublishEvents(gomock.Any(), payloads).Return(boom),
	)
	third.EXPECT().PublishEvents(gomock.Any(), gomock.Any()).Times(0)

	err := Multi{first, second, third}.PublishEvents(context.Background(), payloads)
	assert.ErrorIs(t, err, boom)
}
