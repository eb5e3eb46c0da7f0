//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"service-rider-platform/internal/domain"
)

// OrdersGateway fetches the current state of an order.
type OrdersGateway interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

// OfferPublisher sends offer messages to riders.
type OfferPublisher interface {
	Publish(ctx context.Context, offers []Offer) error
}
