package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/orders"
)

// HandleFunc processes a single orders.Event from Kafka
type HandleFunc func(context.Context, orders.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

const consumeRetryDelay = time.Second

// Consumer wraps a Sarama consumer group and dispatches events to a handler
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer creates a new Kafka consumer. It returns nil when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	// не стратую если у кафки нет настроек
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger.With(logx.String("topic", topic), logx.String("group", groupID)),
	}, nil
}

// Run consumes until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error", logx.Err(err))

			t := time.NewTimer(consumeRetryDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close closes the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks malformed and permanently failing messages as consumed.
// Any other handler error stops the claim so the message is delivered again.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := sess.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.handle(ctx, msg); err != nil {
				return err
			}
			sess.MarkMessage(msg, "")
		}
	}
}

// handle returns an error only when msg must be redelivered.
func (h *groupHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	log := h.c.logger.With(
		logx.String("topic", msg.Topic),
		logx.Int("partition", int(msg.Partition)),
		logx.Int64("offset", msg.Offset),
	)

	ev, err := decodeEvent(msg.Value)
	if err != nil {
		log.Warn("kafka message skipped", logx.Err(err))
		return nil
	}

	err = h.c.handler(ctx, ev)
	switch {
	case err == nil:
		return nil
	case IsPermanent(err):
		log.Error("kafka handle failed, skipping message",
			logx.String("order_id", ev.OrderID),
			logx.String("status", ev.Status),
			logx.Err(err),
		)
		return nil
	default:
		log.Error("kafka handle failed, will retry",
			logx.String("order_id", ev.OrderID),
			logx.String("status", ev.Status),
			logx.Err(err),
		)
		return err
	}
}

var errEmptyOrderID = errors.New("empty order_id")

func decodeEvent(raw []byte) (orders.Event, error) {
	var dto EventDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return orders.Event{}, fmt.Errorf("bad json: %w", err)
	}
	ev := ToDomain(dto)
	if ev.OrderID == "" {
		return orders.Event{}, errEmptyOrderID
	}
	return ev, nil
}
