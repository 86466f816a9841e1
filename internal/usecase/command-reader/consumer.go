package commandreader

import (
	"context"

	commandv1 "github.com/muhammadchandra19/matchbook/internal/domain/command/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes commands from one partition of the command topic.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      *logger.Logger
}

var _ commandv1.Reader = (*Reader)(nil)

// NewReader creates a new Kafka reader for consuming messages from the command topic.
func NewReader(config config.KafkaConfig, log *logger.Logger) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		Partition:   config.Partition,
		MinBytes:    config.MinBytes,
		MaxBytes:    config.MaxBytes,
		MaxWait:     config.MaxWait,
		StartOffset: kafka.FirstOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log.WithFields(logger.NewField("topic", config.Topic)),
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err, logger.NewField("operation", operation))
}

// SetOffset sets the offset for the Kafka reader.
func (r *Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return err
	}
	return nil
}

// ReadMessage reads a message from the Kafka topic and decodes it as a Command.
// A message that fails to decode is returned together with the error so the
// caller can skip past it.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, commandv1.Command, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		return kafka.Message{}, commandv1.Command{}, err
	}

	cmd, err := decode(msg)
	if err != nil {
		r.logError(err, "DecodeCommand")
		return msg, commandv1.Command{}, err
	}

	r.logger.Debug("ReadMessage",
		logger.NewField("offset", msg.Offset),
		logger.NewField("type", cmd.Type),
		logger.NewField("orderID", cmd.OrderID),
	)

	return msg, cmd, nil
}

func decode(msg kafka.Message) (commandv1.Command, error) {
	cmd, err := commandv1.FromBytes(msg.Value)
	if err != nil {
		return commandv1.Command{}, err
	}
	cmd.Offset = msg.Offset
	return cmd, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// CommitMessages is a no-op: the reader has no consumer group and the
// processed offset is persisted with each snapshot instead.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return nil
}
