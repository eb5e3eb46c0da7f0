package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/orders"
)

var newSyncProducer = sarama.NewSyncProducer

// Producer publishes rider offers keyed by delivery id.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	logger   logx.Logger
}

// NewProducer creates an offers producer. It returns nil when Kafka is not configured.
func NewProducer(logger logx.Logger, brokers []string, topic string) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newProducer(logger, p, topic), nil
}

func newProducer(logger logx.Logger, p sarama.SyncProducer, topic string) *Producer {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Producer{producer: p, topic: topic, logger: logger}
}

// Publish sends all offers in one batch. A nil Producer drops them.
func (p *Producer) Publish(ctx context.Context, offers []orders.Offer) error {
	if p == nil {
		return nil
	}
	if len(offers) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(offers))
	for _, o := range offers {
		b, err := json.Marshal(o)
		if err != nil {
			return Permanent(fmt.Errorf("encode offer %s: %w", o.DeliveryID, err))
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(o.DeliveryID),
			Value: sarama.ByteEncoder(b),
			Headers: []sarama.RecordHeader{
				{Key: []byte("type"), Value: []byte(o.Type)},
			},
		})
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("kafka send %d offers: %w", len(msgs), err)
	}
	p.logger.Debug("kafka offers sent", logx.String("topic", p.topic), logx.Int("count", len(msgs)))
	return nil
}

// Close closes the underlying producer.
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
