package eventpublisher

import (
	"context"
	"time"

	eventv1 "github.com/muhammadchandra19/matchbook/internal/domain/event/v1"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher represents a Kafka Publisher for publishing book events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

var _ eventv1.Publisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for publishing book events.
func NewPublisher(writer *kafka.Writer, log *logger.Logger) *Publisher {
	return &Publisher{
		kafkaWriter: writer,
		logger:      log,
	}
}

// NewKafkaWriter builds the writer used by Publisher. Messages are keyed by
// pair so every event of one book lands on the same partition in order.
func NewKafkaWriter(brokers []string, topic string, batchTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireAll,
	}
}

// PublishEvents writes the payloads in one batch.
func (p *Publisher) PublishEvents(ctx context.Context, payloads []*eventv1.Payload) error {
	if len(payloads) == 0 {
		return nil
	}

	msgs := toMessages(payloads)
	if err := p.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.NewField("events", len(payloads)),
			logger.NewField("firstSequence", payloads[0].Sequence),
		)
		return errors.NewTracer("failed to publish book events").Wrap(err)
	}
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}

func toMessages(payloads []*eventv1.Payload) []kafka.Message {
	msgs := make([]kafka.Message, 0, len(payloads))
	for _, payload := range payloads {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(payload.Pair),
			Value: eventv1.ToBytes(payload),
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(payload.Type)},
			},
			Time: payload.Timestamp,
		})
	}
	return msgs
}
