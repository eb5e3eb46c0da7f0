package orders

import (
	"context"
	"fmt"
	"time"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/domain"
	ordersgw "service-rider-platform/internal/gateway/orders"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/splitter"
)

// Processor turns order events into rider offers.
type Processor struct {
	orders    OrdersGateway
	publisher OfferPublisher
	logger    logx.Logger
	timeout   time.Duration
	now       func() time.Time
	factory   *actionFactory
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock overrides the processor clock.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// NewProcessor creates a new orders.Processor. timeout bounds each gateway refresh.
func NewProcessor(gw OrdersGateway, pub OfferPublisher, logger logx.Logger, timeout time.Duration, opts ...Option) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{
		orders:    gw,
		publisher: pub,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.factory = newActionFactory(p.onOffered, p.onWithdrawn)
	return p
}

// Handle processes a single orders.Event.
// The event is refreshed through the gateway and the current order status decides the action.
// Gateway failures that are not transient are wrapped in apperr.ErrUpstream.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if _, ok := p.factory.get(e.Status); !ok {
		p.logger.Debug("order event ignored",
			logx.String("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		return nil
	}

	order, err := p.refresh(ctx, e.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		p.logger.Warn("order event for unknown order",
			logx.String("order_id", e.OrderID),
			logx.String("status", e.Status),
		)
		return nil
	}

	status := string(order.Status)
	if status == "" {
		status = e.Status
	}
	fn, ok := p.factory.get(status)
	if !ok {
		p.logger.Debug("order moved on before event was handled",
			logx.String("order_id", e.OrderID),
			logx.String("event_status", e.Status),
			logx.String("status", status),
		)
		return nil
	}
	return fn(ctx, order)
}

func (p *Processor) refresh(ctx context.Context, id string) (*domain.Order, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	order, err := p.orders.GetByID(ctx, id)
	if err != nil {
		if ordersgw.IsTransient(err) {
			return nil, fmt.Errorf("refresh order %s: %w", id, err)
		}
		return nil, fmt.Errorf("%w: refresh order %s: %w", apperr.ErrUpstream, id, err)
	}
	return order, nil
}

func (p *Processor) onOffered(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, OfferTypeOffered, order)
}

func (p *Processor) onWithdrawn(ctx context.Context, order *domain.Order) error {
	return p.publish(ctx, OfferTypeWithdrawn, order)
}

func (p *Processor) publish(ctx context.Context, kind string, order *domain.Order) error {
	now := p.now()
	pieces := splitter.BySupplier(*order, now)
	if len(pieces) == 0 {
		return nil
	}

	offers := make([]Offer, 0, len(pieces))
	for _, d := range pieces {
		offers = append(offers, offerOf(kind, d, now))
	}
	if err := p.publisher.Publish(ctx, offers); err != nil {
		return fmt.Errorf("publish %s for order %s: %w", kind, order.ID, err)
	}

	p.logger.Info("order offers published",
		logx.String("event", kind),
		logx.String("order_id", order.ID),
		logx.Int("pieces", len(offers)),
	)
	return nil
}
