package app

import (
	"context"
	"errors"

	"go.uber.org/dig"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/config"
	ordersgw "service-rider-platform/internal/gateway/orders"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/orders"
	"service-rider-platform/internal/transport/kafka"
)

type eventHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

// makeOrdersKafka adapts the processor to the consumer. Upstream answers that will not change
// on redelivery are marked permanent so the partition keeps moving.
func makeOrdersKafka(h eventHandler) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		err := h.Handle(ctx, event)
		if err != nil && errors.Is(err, apperr.ErrUpstream) {
			return kafka.Permanent(err)
		}
		return err
	}
}

type producerOut struct {
	dig.Out
	Producer *kafka.Producer
	Closer   namedCloser `group:"closers"`
}

func newOffersProducer(cfg *config.Config, logger logx.Logger) (producerOut, error) {
	p, err := kafka.NewProducer(logger, cfg.Kafka.Brokers, cfg.Kafka.OffersTopic)
	if err != nil {
		return producerOut{}, err
	}
	if p == nil {
		logger.Warn("offers topic not configured, offers will not be published")
	}
	return producerOut{Producer: p, Closer: namedCloser{name: "kafka producer", close: p.Close}}, nil
}

func newProcessor(cfg *config.Config, logger logx.Logger, gw *ordersgw.RetryingGateway, p *kafka.Producer) *orders.Processor {
	return orders.NewProcessor(gw, p, logger, cfg.Orders.Timeout)
}

func newOrdersConsumer(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, makeOrdersKafka(p))
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newOffersProducer,
		newProcessor,
		newOrdersConsumer,
	)
}
