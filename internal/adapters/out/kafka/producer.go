// Package kafka publishes outbox messages with segmentio/kafka-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafedelivery/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implements ports.EventProducer. Messages with the same key land on
// the same partition, so events of one order keep their relative order.
type Producer struct {
	writer messageWriter
}

// NewProducer requires at least one broker address. The topic is taken from
// each message.
func NewProducer(brokers []string, writeTimeout time.Duration) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("kafka brokers")
	}
	if writeTimeout <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("write timeout", writeTimeout, "1ns", "unbounded")
	}

	return newProducer(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}), nil
}

func newProducer(w messageWriter) *Producer {
	return &Producer{writer: w}
}

func (p *Producer) Produce(ctx context.Context, topic, key string, payload []byte) error {
	if topic == "" {
		return errs.NewValueIsRequiredError("topic")
	}

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		var writeErrs kafka.WriteErrors
		if errors.As(err, &writeErrs) && len(writeErrs) == 1 && writeErrs[0] != nil {
			err = writeErrs[0]
		}
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
