//go:generate mockgen -source=contracts.go -destination=transition_mocks_test.go -package=transition

package transition

import (
	"context"

	"service-rider-platform/internal/domain"
)

type ordersGateway interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateItemStatus(ctx context.Context, u domain.ItemStatusUpdate) (string, error)
}

type riderDirectory interface {
	Get(ctx context.Context, id int64) (*domain.Rider, error)
	SetStatus(ctx context.Context, id int64, status domain.RiderStatus) error
}

type transitionLog interface {
	Insert(ctx context.Context, rec domain.TransitionRecord) error
	ListByDelivery(ctx context.Context, deliveryID string, limit int) ([]domain.TransitionRecord, error)
}

type transitionCounter interface {
	Inc(action, outcome string)
}
