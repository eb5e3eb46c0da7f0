package transition

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/auth"
	"service-rider-platform/internal/domain"
	testlog "service-rider-platform/internal/testutil"
)

var fixedNow = time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

var riderSession = auth.Session{RiderID: "42", Name: "Juan", Role: auth.RoleRider}

type deps struct {
	orders  *MockordersGateway
	riders  *MockriderDirectory
	log     *MocktransitionLog
	counter *MocktransitionCounter
	rec     *testlog.Recorder
	svc     *Service
}

func newDeps(t *testing.T) *deps {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	d := &deps{
		orders:  NewMockordersGateway(ctrl),
		riders:  NewMockriderDirectory(ctrl),
		log:     NewMocktransitionLog(ctrl),
		counter: NewMocktransitionCounter(ctrl),
		rec:     testlog.New(),
	}
	d.svc = NewService(d.orders, d.riders, d.log, d.rec.Logger(), time.Second,
		WithClock(func() time.Time { return fixedNow }),
		WithCounter(d.counter),
	)
	d.svc.newID = func() string { return "tr-1" }
	return d
}

func testOrder(status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:          "ord-1",
		OrderNumber: "ORD-1001",
		Status:      status,
		CreatedAt:   fixedNow.Add(-30 * time.Second),
		User:        &domain.User{ID: "u-1", FirstName: "Maria"},
		Items: []domain.OrderItem{
			{ID: "i-1", SupplierID: "S1", Quantity: 2, Price: 100,
				Supplier: []domain.Supplier{{ID: "S1", FirstName: "Jollibee"}}},
			{ID: "i-2", SupplierID: "S2", Quantity: 1, Price: 200},
			{ID: "i-3", SupplierID: "S1", Quantity: 1, Price: 50},
			{ID: "i-4", SupplierID: "S1", Quantity: 1, Price: 10},
		},
	}
}

type updateMatcher struct {
	itemID string
	status domain.OrderStatus
}

func upd(itemID string, status domain.OrderStatus) gomock.Matcher {
	return updateMatcher{itemID: itemID, status: status}
}

func (m updateMatcher) Matches(x interface{}) bool {
	u, ok := x.(domain.ItemStatusUpdate)
	return ok && u.ItemID == m.itemID && u.Status == m.status
}

func (m updateMatcher) String() string {
	return fmt.Sprintf("update %s to %s", m.itemID, m.status)
}

func TestApply_AcceptMovesEveryItemInOrder(t *testing.T) {
	t.Parallel()
	d := newDeps(t)
	ctx := context.Background()

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Name: "Juan", Status: domain.RiderAvailable}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(testOrder(domain.OrderPending), nil)

	var sent []domain.ItemStatusUpdate
	capture := func(_ context.Context, u domain.ItemStatusUpdate) (string, error) {
		sent = append(sent, u)
		return "ok", nil
	}
	gomock.InOrder(
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderProcessing)).DoAndReturn(capture),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-3", domain.OrderProcessing)).DoAndReturn(capture),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-4", domain.OrderProcessing)).DoAndReturn(capture),
	)
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec domain.TransitionRecord) error {
		assert.Equal(t, "tr-1", rec.ID)
		assert.Equal(t, "ord-1-S1", rec.DeliveryID)
		assert.Equal(t, domain.OutcomeApplied, rec.Outcome)
		assert.Equal(t, domain.OrderPending, rec.From)
		assert.Equal(t, domain.OrderProcessing, rec.To)
		assert.Len(t, rec.Items, 3)
		return nil
	})
	d.counter.EXPECT().Inc("accept", "applied")
	d.riders.EXPECT().SetStatus(gomock.Any(), int64(42), domain.RiderBusy).Return(nil)

	res, err := d.svc.Apply(ctx, riderSession, Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionAccept})
	require.NoError(t, err)
	require.Equal(t, "tr-1", res.TransitionID)
	require.Equal(t, domain.OrderProcessing, res.Delivery.Status)
	require.Equal(t, domain.OrderPending, res.From)

	require.Len(t, sent, 3)
	for _, u := range sent {
		assert.Equal(t, "42", u.RiderID)
		assert.Equal(t, "S1", u.SupplierID)
		assert.Equal(t, "u-1", u.UserID)
		assert.Equal(t, "Order accepted", u.Title)
		assert.Equal(t, "Juan accepted your order ORD-1001 from Jollibee.", u.Message)
	}
	_, ok := d.rec.Find("delivery transition applied")
	require.True(t, ok)
}

func TestApply_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  Request
	}{
		{name: "missing order", req: Request{SupplierID: "S1", Action: domain.ActionAccept}},
		{name: "missing supplier", req: Request{OrderID: "o", Action: domain.ActionAccept}},
		{name: "unknown action", req: Request{OrderID: "o", SupplierID: "S1", Action: "teleport"}},
		{name: "cancel without reason", req: Request{OrderID: "o", SupplierID: "S1", Action: domain.ActionCancel, Reason: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := newDeps(t)
			_, err := d.svc.Apply(context.Background(), riderSession, tt.req)
			require.ErrorIs(t, err, apperr.ErrInvalid)
		})
	}
}

func TestApply_SessionChecks(t *testing.T) {
	t.Parallel()

	req := Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionAccept}

	t.Run("admin cannot act as rider", func(t *testing.T) {
		d := newDeps(t)
		_, err := d.svc.Apply(context.Background(), auth.Session{RiderID: "1", Role: auth.RoleAdmin}, req)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("unknown rider profile", func(t *testing.T) {
		d := newDeps(t)
		d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(nil, apperr.ErrNotFound)
		_, err := d.svc.Apply(context.Background(), riderSession, req)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("paused rider cannot accept", func(t *testing.T) {
		d := newDeps(t)
		d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Status: domain.RiderPaused}, nil)
		_, err := d.svc.Apply(context.Background(), riderSession, req)
		require.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestApply_OrderLookup(t *testing.T) {
	t.Parallel()

	rider := &domain.Rider{ID: 42, Status: domain.RiderAvailable}

	tests := []struct {
		name     string
		supplier string
		order    *domain.Order
		err      error
		want     error
	}{
		{name: "gateway failure", supplier: "S1", err: errors.New("boom"), want: apperr.ErrUpstream},
		{name: "missing order", supplier: "S1", want: apperr.ErrNotFound},
		{name: "missing supplier", supplier: "S9", order: testOrder(domain.OrderPending), want: apperr.ErrNotFound},
		{name: "guard mismatch", supplier: "S1", order: testOrder(domain.OrderDelivered), want: apperr.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := newDeps(t)
			d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(rider, nil)
			d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(tt.order, tt.err)

			_, err := d.svc.Apply(context.Background(), riderSession,
				Request{OrderID: "ord-1", SupplierID: tt.supplier, Action: domain.ActionPickup})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApply_FailureCompensatesInReverse(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Status: domain.RiderBusy}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(testOrder(domain.OrderProcessing), nil)

	boom := errors.New("backend down")
	gomock.InOrder(
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderShipped)).Return("ok", nil),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-3", domain.OrderShipped)).Return("ok", nil),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-4", domain.OrderShipped)).Return("", boom),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-3", domain.OrderProcessing)).Return("ok", nil),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderProcessing)).Return("ok", nil),
	)
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec domain.TransitionRecord) error {
		assert.Equal(t, domain.OutcomeReverted, rec.Outcome)
		assert.Equal(t, "backend down", rec.Error)
		assert.Equal(t, []domain.TransitionItem{
			{ItemID: "i-1", Result: domain.ItemReverted},
			{ItemID: "i-3", Result: domain.ItemReverted},
			{ItemID: "i-4", Result: domain.ItemFailed},
		}, rec.Items)
		return nil
	})
	d.counter.EXPECT().Inc("pickup", "reverted")

	_, err := d.svc.Apply(context.Background(), riderSession, Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionPickup})
	require.ErrorIs(t, err, apperr.ErrPartialFailure)
	require.ErrorIs(t, err, boom)

	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	require.Empty(t, pf.Updated)
	require.Equal(t, []string{"i-4"}, pf.Failed)
	require.Equal(t, []string{"i-1", "i-3"}, pf.Reverted)
	require.Empty(t, pf.Skipped)
}

func TestApply_FailedRevertLeavesPartialState(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Status: domain.RiderBusy}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(testOrder(domain.OrderShipped), nil)

	gomock.InOrder(
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderDelivered)).Return("ok", nil),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-3", domain.OrderDelivered)).Return("", errors.New("timeout")),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderShipped)).Return("", errors.New("still down")),
	)
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	d.counter.EXPECT().Inc("deliver", "partial")

	_, err := d.svc.Apply(context.Background(), riderSession, Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionDeliver})

	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	require.Equal(t, []string{"i-1"}, pf.Updated)
	require.Equal(t, []string{"i-3"}, pf.Failed)
	require.Empty(t, pf.Reverted)
	require.Equal(t, []string{"i-4"}, pf.Skipped)
	require.Contains(t, d.rec.Messages("error"), "revert item status failed")
}

func TestApply_FirstCallFailureIsUpstream(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(testOrder(domain.OrderPending), nil)
	d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-2", domain.OrderProcessing)).Return("", errors.New("nope"))
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec domain.TransitionRecord) error {
		assert.Equal(t, domain.OutcomeFailed, rec.Outcome)
		return nil
	})
	d.counter.EXPECT().Inc("accept", "failed")

	_, err := d.svc.Apply(context.Background(), riderSession, Request{OrderID: "ord-1", SupplierID: "S2", Action: domain.ActionAccept})
	require.ErrorIs(t, err, apperr.ErrUpstream)
	require.False(t, errors.Is(err, apperr.ErrPartialFailure))
}

func mixedOrder() *domain.Order {
	o := testOrder(domain.OrderProcessing)
	o.Items[0].Status = domain.OrderShipped
	return o
}

func TestApply_MixedPieceMovesOnlyLaggingItems(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Status: domain.RiderBusy}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(mixedOrder(), nil)
	gomock.InOrder(
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-3", domain.OrderShipped)).Return("ok", nil),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-4", domain.OrderShipped)).Return("ok", nil),
	)
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec domain.TransitionRecord) error {
		assert.Equal(t, domain.OrderProcessing, rec.From)
		assert.Equal(t, []domain.TransitionItem{
			{ItemID: "i-1", Result: domain.ItemUnchanged},
			{ItemID: "i-3", Result: domain.ItemUpdated},
			{ItemID: "i-4", Result: domain.ItemUpdated},
		}, rec.Items)
		return nil
	})
	d.counter.EXPECT().Inc("pickup", "applied")

	res, err := d.svc.Apply(context.Background(), riderSession, Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionPickup})
	require.NoError(t, err)
	require.Equal(t, domain.OrderShipped, res.Delivery.Status)
}

func TestApply_MixedPieceCannotSkipAhead(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Status: domain.RiderBusy}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(mixedOrder(), nil)

	_, err := d.svc.Apply(context.Background(), riderSession, Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionDeliver})
	require.ErrorIs(t, err, apperr.ErrConflict)
	require.Contains(t, err.Error(), "PROCESSING")
}

func TestApply_CompensationLeavesUnchangedItemsAlone(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	o := testOrder(domain.OrderProcessing)
	o.Items[2].Status = domain.OrderShipped
	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Status: domain.RiderBusy}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(o, nil)
	gomock.InOrder(
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderShipped)).Return("ok", nil),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-4", domain.OrderShipped)).Return("", errors.New("down")),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderProcessing)).Return("ok", nil),
	)
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec domain.TransitionRecord) error {
		assert.Equal(t, []domain.TransitionItem{
			{ItemID: "i-1", Result: domain.ItemReverted},
			{ItemID: "i-3", Result: domain.ItemUnchanged},
			{ItemID: "i-4", Result: domain.ItemFailed},
		}, rec.Items)
		return nil
	})
	d.counter.EXPECT().Inc("pickup", "reverted")

	_, err := d.svc.Apply(context.Background(), riderSession, Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionPickup})
	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	require.Equal(t, []string{"i-1"}, pf.Reverted)
}

func TestApply_CancelCarriesReasonAndFreesRider(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42, Status: domain.RiderBusy}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(testOrder(domain.OrderProcessing), nil)
	d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-2", domain.OrderCancelled)).
		DoAndReturn(func(_ context.Context, u domain.ItemStatusUpdate) (string, error) {
			assert.Equal(t, "Order cancelled", u.Title)
			assert.Contains(t, u.Message, "flat tire")
			return "ok", nil
		})
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec domain.TransitionRecord) error {
		assert.Equal(t, "flat tire", rec.Reason)
		return nil
	})
	d.counter.EXPECT().Inc("cancel", "applied")
	d.riders.EXPECT().SetStatus(gomock.Any(), int64(42), domain.RiderAvailable).Return(errors.New("db down"))

	res, err := d.svc.Apply(context.Background(), riderSession,
		Request{OrderID: "ord-1", SupplierID: "S2", Action: domain.ActionCancel, Reason: " flat tire "})
	require.NoError(t, err)
	require.Equal(t, domain.OrderCancelled, res.To)
	require.Contains(t, d.rec.Messages("warn"), "rider status update failed")
}

func TestApply_LogWriteFailureDoesNotFailAction(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(testOrder(domain.OrderProcessing), nil)
	d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-2", domain.OrderShipped)).Return("ok", nil)
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("pg down"))
	d.counter.EXPECT().Inc("pickup", "applied")

	_, err := d.svc.Apply(context.Background(), riderSession, Request{OrderID: "ord-1", SupplierID: "S2", Action: domain.ActionPickup})
	require.NoError(t, err)
	require.Contains(t, d.rec.Messages("warn"), "transition log write failed")
}

func TestApply_CancelledContextSkipsRemainingItems(t *testing.T) {
	t.Parallel()
	d := newDeps(t)
	ctx, cancel := context.WithCancel(context.Background())

	d.riders.EXPECT().Get(gomock.Any(), int64(42)).Return(&domain.Rider{ID: 42}, nil)
	d.orders.EXPECT().GetByID(gomock.Any(), "ord-1").Return(testOrder(domain.OrderProcessing), nil)
	gomock.InOrder(
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderShipped)).
			DoAndReturn(func(context.Context, domain.ItemStatusUpdate) (string, error) {
				cancel()
				return "ok", nil
			}),
		d.orders.EXPECT().UpdateItemStatus(gomock.Any(), upd("i-1", domain.OrderProcessing)).Return("ok", nil),
	)
	d.log.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	d.counter.EXPECT().Inc("pickup", "reverted")

	_, err := d.svc.Apply(ctx, riderSession, Request{OrderID: "ord-1", SupplierID: "S1", Action: domain.ActionPickup})

	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{"i-1"}, pf.Reverted)
	require.Equal(t, []string{"i-3", "i-4"}, pf.Skipped)
}

func TestHistory(t *testing.T) {
	t.Parallel()
	d := newDeps(t)

	want := []domain.TransitionRecord{{ID: "b"}, {ID: "a"}}
	d.log.EXPECT().ListByDelivery(gomock.Any(), "ord-1-S1", 20).Return(want, nil)

	got, err := d.svc.History(context.Background(), "ord-1", "S1", 0)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = d.svc.History(context.Background(), "", "S1", 5)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestHistory_WithoutLog(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, nil, nil, nil, 0)
	got, err := svc.History(context.Background(), "o", "s", 10)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, defaultCallTimeout, svc.callTimeout)
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	all := []domain.OrderStatus{
		domain.OrderPending, domain.OrderProcessing, domain.OrderShipped,
		domain.OrderDelivered, domain.OrderCancelled, domain.OrderRefunded,
	}
	allowed := map[domain.RiderAction][]domain.OrderStatus{
		domain.ActionAccept:  {domain.OrderPending},
		domain.ActionPickup:  {domain.OrderProcessing},
		domain.ActionDeliver: {domain.OrderShipped},
		domain.ActionCancel:  {domain.OrderPending, domain.OrderProcessing, domain.OrderShipped},
	}

	for action, from := range allowed {
		for _, s := range all {
			want := false
			for _, f := range from {
				want = want || f == s
			}
			assert.Equal(t, want, Allowed(action, s), "%s from %s", action, s)
		}
	}
	require.False(t, Allowed("teleport", domain.OrderPending))

	to, ok := Target(domain.ActionDeliver)
	require.True(t, ok)
	require.Equal(t, domain.OrderDelivered, to)
}
