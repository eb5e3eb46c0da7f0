package handlers

import (
	"context"
	"time"

	"service-rider-platform/internal/auth"
	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/idempotency"
	"service-rider-platform/internal/service/feed"
	"service-rider-platform/internal/service/transition"
)

type riderUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Rider, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Rider, error)
	Create(ctx context.Context, r *domain.Rider) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error)
}

type feedUsecase interface {
	Feed(ctx context.Context, k feed.Kind, sess auth.Session) ([]domain.Delivery, error)
	ForOrder(ctx context.Context, orderID string) ([]domain.Delivery, error)
	Watch(ctx context.Context, interval time.Duration, k feed.Kind, sess auth.Session, fn func([]domain.Delivery, error)) error
}

type transitionUsecase interface {
	Apply(ctx context.Context, sess auth.Session, req transition.Request) (*transition.Result, error)
	History(ctx context.Context, orderID, supplierID string, limit int) ([]domain.TransitionRecord, error)
}

type replayStore interface {
	Reserve(ctx context.Context, riderID, key string) (*idempotency.Response, bool, error)
	Complete(ctx context.Context, riderID, key string, resp idempotency.Response) error
	Release(ctx context.Context, riderID, key string) error
}
