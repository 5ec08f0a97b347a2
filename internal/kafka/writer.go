package kafka

import (
	"context"
	"strconv"
	"time"

	"saferoute/internal/config"
	"saferoute/internal/domain"

	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes hazard events to a Kafka topic, keyed by hazard id so
// all events of one hazard land on the same partition in order.
type Writer struct {
	writer *kafkago.Writer
}

func NewWriter(cfg config.KafkaConfig) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Writer{writer: w}
}

func (w *Writer) Write(ctx context.Context, ev domain.Event, payload []byte) error {
	return w.writer.WriteMessages(ctx, newMessage(ev, payload))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func newMessage(ev domain.Event, payload []byte) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(ev.HazardID(), 10)),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	}
}
