package handlers_test

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"service-rider-platform/internal/auth"
	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/service/feed"
	"service-rider-platform/internal/service/transition"
)

type stubRiders struct {
	getFn    func(ctx context.Context, id int64) (*domain.Rider, error)
	listFn   func(ctx context.Context, limit, offset *int) ([]domain.Rider, error)
	createFn func(ctx context.Context, r *domain.Rider) (int64, error)
	updateFn func(ctx context.Context, u domain.PartialRiderUpdate) (bool, error)
}

func (s *stubRiders) Get(ctx context.Context, id int64) (*domain.Rider, error) {
	return s.getFn(ctx, id)
}

func (s *stubRiders) List(ctx context.Context, limit, offset *int) ([]domain.Rider, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *stubRiders) Create(ctx context.Context, r *domain.Rider) (int64, error) {
	return s.createFn(ctx, r)
}

func (s *stubRiders) UpdatePartial(ctx context.Context, u domain.PartialRiderUpdate) (bool, error) {
	return s.updateFn(ctx, u)
}

type stubFeeds struct {
	feedFn     func(ctx context.Context, k feed.Kind, sess auth.Session) ([]domain.Delivery, error)
	forOrderFn func(ctx context.Context, orderID string) ([]domain.Delivery, error)
	watchFn    func(ctx context.Context, interval time.Duration, k feed.Kind, sess auth.Session, fn func([]domain.Delivery, error)) error
}

func (s *stubFeeds) Feed(ctx context.Context, k feed.Kind, sess auth.Session) ([]domain.Delivery, error) {
	return s.feedFn(ctx, k, sess)
}

func (s *stubFeeds) ForOrder(ctx context.Context, orderID string) ([]domain.Delivery, error) {
	return s.forOrderFn(ctx, orderID)
}

func (s *stubFeeds) Watch(ctx context.Context, interval time.Duration, k feed.Kind, sess auth.Session, fn func([]domain.Delivery, error)) error {
	return s.watchFn(ctx, interval, k, sess, fn)
}

type stubTransitions struct {
	applyFn   func(ctx context.Context, sess auth.Session, req transition.Request) (*transition.Result, error)
	historyFn func(ctx context.Context, orderID, supplierID string, limit int) ([]domain.TransitionRecord, error)
}

func (s *stubTransitions) Apply(ctx context.Context, sess auth.Session, req transition.Request) (*transition.Result, error) {
	return s.applyFn(ctx, sess, req)
}

func (s *stubTransitions) History(ctx context.Context, orderID, supplierID string, limit int) ([]domain.TransitionRecord, error) {
	return s.historyFn(ctx, orderID, supplierID, limit)
}

var rider = auth.Session{RiderID: "42", Name: "Juan", Role: auth.RoleRider}

func withSession(r *http.Request, s auth.Session) *http.Request {
	return r.WithContext(auth.WithSession(r.Context(), s))
}

func withURLParams(r *http.Request, kv ...string) *http.Request {
	rc := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rc.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rc))
}

func piece(id string, status domain.OrderStatus) domain.Delivery {
	return domain.Delivery{
		ID:            id,
		OrderID:       "ORD-1001",
		OrderRecordID: "ord-1",
		SupplierID:    "S1",
		SupplierName:  "Jollibee",
		Payout:        "₱75.00",
		PayoutAmount:  75,
		Status:        status,
		SupplierItems: []domain.OrderItem{{ID: "i-1", Quantity: 2, Price: 100, Product: domain.Product{Name: "Chickenjoy"}}},
	}
}
