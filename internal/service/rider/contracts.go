package rider

import (
	"context"

	"service-rider-platform/internal/domain"
)

// riderRepository defines storage operations required by the business layer.
type riderRepository interface {
	Get(ctx context.Context, id int64) (*domain.Rider, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Rider, error)
	Create(ctx context.Context, r *domain.Rider) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error)
}
