package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/auth"
	"service-rider-platform/internal/domain"
	ordersgw "service-rider-platform/internal/gateway/orders"
	"service-rider-platform/internal/service/splitter"
)

type ordersSource interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f ordersgw.ListFilter) ([]domain.Order, error)
}

// Kind names a delivery feed.
type Kind string

// List of feeds
const (
	KindNew       Kind = "new"
	KindActive    Kind = "active"
	KindCompleted Kind = "completed"
)

// ParseKind validates a feed name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindNew, KindActive, KindCompleted:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown feed %q", apperr.ErrInvalid, s)
	}
}

var feedStatuses = map[Kind][]domain.OrderStatus{
	KindNew:       {domain.OrderPending},
	KindActive:    {domain.OrderProcessing, domain.OrderShipped},
	KindCompleted: {domain.OrderDelivered, domain.OrderCancelled},
}

// Service builds rider delivery feeds from live order data.
type Service struct {
	orders ordersSource
	now    func() time.Time
}

// NewService creates a feed Service.
func NewService(orders ordersSource) *Service {
	return &Service{orders: orders, now: time.Now}
}

// New lists unclaimed pieces of pending orders.
func (s *Service) New(ctx context.Context) ([]domain.Delivery, error) {
	return s.load(ctx, KindNew, "")
}

// Active lists the session rider's pieces awaiting pickup or on the way.
func (s *Service) Active(ctx context.Context, sess auth.Session) ([]domain.Delivery, error) {
	if sess.RiderID == "" {
		return nil, apperr.ErrUnauthorized
	}
	return s.load(ctx, KindActive, sess.RiderID)
}

// Completed lists the session rider's delivered and cancelled pieces.
func (s *Service) Completed(ctx context.Context, sess auth.Session) ([]domain.Delivery, error) {
	if sess.RiderID == "" {
		return nil, apperr.ErrUnauthorized
	}
	return s.load(ctx, KindCompleted, sess.RiderID)
}

// Feed dispatches to the feed named by k.
func (s *Service) Feed(ctx context.Context, k Kind, sess auth.Session) ([]domain.Delivery, error) {
	switch k {
	case KindNew:
		return s.New(ctx)
	case KindActive:
		return s.Active(ctx, sess)
	case KindCompleted:
		return s.Completed(ctx, sess)
	default:
		return nil, fmt.Errorf("%w: unknown feed %q", apperr.ErrInvalid, k)
	}
}

// ForOrder lists every piece of one order.
func (s *Service) ForOrder(ctx context.Context, orderID string) ([]domain.Delivery, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", apperr.ErrInvalid)
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch order: %v", apperr.ErrUpstream, err)
	}
	if o == nil {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return splitter.BySupplier(*o, s.now()), nil
}

// Watch polls feed k every interval until ctx is done. fn gets the first
// result right away. A failed poll is passed to fn and polling goes on.
func (s *Service) Watch(ctx context.Context, interval time.Duration, k Kind, sess auth.Session, fn func([]domain.Delivery, error)) error {
	if interval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", apperr.ErrInvalid)
	}
	if _, ok := feedStatuses[k]; !ok {
		return fmt.Errorf("%w: unknown feed %q", apperr.ErrInvalid, k)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fn(s.Feed(ctx, k, sess))
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Service) load(ctx context.Context, k Kind, riderID string) ([]domain.Delivery, error) {
	statuses := feedStatuses[k]
	orders, err := s.orders.List(ctx, ordersgw.ListFilter{Statuses: statuses, RiderID: riderID})
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", apperr.ErrUpstream, err)
	}

	now := s.now()
	out := []domain.Delivery{}
	for _, o := range orders {
		for _, d := range splitter.BySupplier(o, now) {
			if hasStatus(statuses, d.Status) {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func hasStatus(in []domain.OrderStatus, s domain.OrderStatus) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}
