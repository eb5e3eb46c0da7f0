package transition

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/auth"
	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/splitter"
)

const defaultCallTimeout = 3 * time.Second

// Request is a rider action on one supplier piece of an order.
type Request struct {
	OrderID    string
	SupplierID string
	Action     domain.RiderAction
	Reason     string
}

// Result describes an applied transition.
type Result struct {
	TransitionID string
	Delivery     domain.Delivery
	From         domain.OrderStatus
	To           domain.OrderStatus
	Items        []domain.TransitionItem
}

// Service moves delivery pieces through the rider state machine.
type Service struct {
	orders      ordersGateway
	riders      riderDirectory
	log         transitionLog
	counter     transitionCounter
	logger      logx.Logger
	tracer      trace.Tracer
	callTimeout time.Duration
	now         func() time.Time
	newID       func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTracer overrides the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithCounter sets the transitions counter.
func WithCounter(c transitionCounter) Option {
	return func(s *Service) { s.counter = c }
}

// NewService creates a transition Service. log may be nil to skip the audit trail.
func NewService(orders ordersGateway, riders riderDirectory, log transitionLog, logger logx.Logger, callTimeout time.Duration, opts ...Option) *Service {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Service{
		orders:      orders,
		riders:      riders,
		log:         log,
		logger:      logger,
		tracer:      otel.Tracer("service-rider-platform/transition"),
		callTimeout: callTimeout,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func validate(req Request) error {
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.SupplierID) == "" {
		return fmt.Errorf("%w: order id and supplier id are required", apperr.ErrInvalid)
	}
	if _, ok := rules[req.Action]; !ok {
		return fmt.Errorf("%w: unknown action %q", apperr.ErrInvalid, req.Action)
	}
	if req.Action == domain.ActionCancel && strings.TrimSpace(req.Reason) == "" {
		return fmt.Errorf("%w: cancel requires a reason", apperr.ErrInvalid)
	}
	return nil
}

// Apply runs req on behalf of the session's rider.
func (s *Service) Apply(ctx context.Context, sess auth.Session, req Request) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "transition.Apply", trace.WithAttributes(
		attribute.String("order.id", req.OrderID),
		attribute.String("supplier.id", req.SupplierID),
		attribute.String("rider.action", string(req.Action)),
	))
	defer span.End()

	res, err := s.apply(ctx, sess, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func (s *Service) apply(ctx context.Context, sess auth.Session, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if sess.Role != auth.RoleRider {
		return nil, fmt.Errorf("%w: only riders can move deliveries", apperr.ErrForbidden)
	}
	riderID, err := sess.RiderNumericID()
	if err != nil {
		return nil, err
	}

	rider, err := s.riders.Get(ctx, riderID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rider profile for %d", apperr.ErrForbidden, riderID)
		}
		return nil, fmt.Errorf("load rider: %w", err)
	}
	if rider == nil {
		return nil, fmt.Errorf("%w: no rider profile for %d", apperr.ErrForbidden, riderID)
	}
	if req.Action == domain.ActionAccept && rider.Status == domain.RiderPaused {
		return nil, fmt.Errorf("%w: rider is paused", apperr.ErrConflict)
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch order: %v", apperr.ErrUpstream, err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, req.OrderID)
	}
	piece, ok := splitter.Find(splitter.BySupplier(*order, s.now()), req.SupplierID)
	if !ok {
		return nil, fmt.Errorf("%w: supplier %s in order %s", apperr.ErrNotFound, req.SupplierID, req.OrderID)
	}

	r := rules[req.Action]
	if !r.allows(piece.Status) {
		return nil, fmt.Errorf("%w: cannot %s a delivery in status %s", apperr.ErrConflict, req.Action, piece.Status)
	}

	name := sess.Name
	if name == "" {
		name = rider.Name
	}
	rec := domain.TransitionRecord{
		ID:         s.newID(),
		DeliveryID: piece.ID,
		OrderID:    order.ID,
		SupplierID: piece.SupplierID,
		RiderID:    strconv.FormatInt(riderID, 10),
		Action:     req.Action,
		From:       piece.Status,
		To:         r.to,
		Reason:     strings.TrimSpace(req.Reason),
		CreatedAt:  s.now().UTC(),
	}

	fan := s.fanOut(ctx, *order, piece, rec.RiderID, r.to, noticeFor(req.Action, piece, name, req.Reason))
	rec.Items = fan.items
	rec.Outcome = fan.outcome()
	if fan.cause != nil {
		rec.Error = fan.cause.Error()
	}

	s.record(ctx, rec)
	if s.counter != nil {
		s.counter.Inc(string(req.Action), string(rec.Outcome))
	}

	logger := s.logger.With(
		logx.String("event", "delivery_transition"),
		logx.String("transition_id", rec.ID),
		logx.String("delivery_id", rec.DeliveryID),
		logx.String("rider_id", rec.RiderID),
		logx.String("action", string(rec.Action)),
		logx.String("outcome", string(rec.Outcome)),
	)

	if fan.cause != nil {
		logger.Warn("delivery transition failed",
			logx.Int("updated", len(fan.ids(domain.ItemUpdated))),
			logx.Int("reverted", len(fan.ids(domain.ItemReverted))),
			logx.Err(fan.cause),
		)
		if rec.Outcome == domain.OutcomeFailed {
			return nil, fmt.Errorf("%w: update item status: %v", apperr.ErrUpstream, fan.cause)
		}
		return nil, &PartialFailureError{
			DeliveryID: piece.ID,
			Updated:    fan.ids(domain.ItemUpdated),
			Failed:     fan.ids(domain.ItemFailed),
			Reverted:   fan.ids(domain.ItemReverted),
			Skipped:    fan.ids(domain.ItemSkipped),
			Cause:      fan.cause,
		}
	}

	logger.Info("delivery transition applied", logx.Int("items", len(rec.Items)))
	s.markRider(ctx, riderID, req.Action)

	piece.Status = r.to
	return &Result{
		TransitionID: rec.ID,
		Delivery:     piece,
		From:         rec.From,
		To:           rec.To,
		Items:        rec.Items,
	}, nil
}

// History returns the recorded transitions of a piece, newest first.
func (s *Service) History(ctx context.Context, orderID, supplierID string, limit int) ([]domain.TransitionRecord, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(supplierID) == "" {
		return nil, fmt.Errorf("%w: order id and supplier id are required", apperr.ErrInvalid)
	}
	if s.log == nil {
		return []domain.TransitionRecord{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.log.ListByDelivery(ctx, domain.DeliveryID(orderID, supplierID), limit)
}

type fanResult struct {
	items []domain.TransitionItem
	cause error
}

func (f fanResult) ids(r domain.ItemResult) []string {
	out := []string{}
	for _, it := range f.items {
		if it.Result == r {
			out = append(out, it.ItemID)
		}
	}
	return out
}

func (f fanResult) outcome() domain.TransitionOutcome {
	if f.cause == nil {
		return domain.OutcomeApplied
	}
	if len(f.ids(domain.ItemUpdated)) > 0 {
		return domain.OutcomePartial
	}
	if len(f.ids(domain.ItemReverted)) > 0 {
		return domain.OutcomeReverted
	}
	return domain.OutcomeFailed
}

// fanOut moves every supplier item one by one. Items already at or past the
// target are left alone. On the first failure the items already moved are put
// back in reverse order and the rest are skipped.
func (s *Service) fanOut(ctx context.Context, order domain.Order, d domain.Delivery, riderID string, to domain.OrderStatus, n notice) fanResult {
	res := fanResult{items: make([]domain.TransitionItem, len(d.SupplierItems))}
	for i, it := range d.SupplierItems {
		res.items[i] = domain.TransitionItem{ItemID: it.ID, Result: domain.ItemSkipped}
	}

	userID := ""
	if order.User != nil {
		userID = order.User.ID
	}
	update := func(it domain.OrderItem, status domain.OrderStatus, n notice) domain.ItemStatusUpdate {
		return domain.ItemStatusUpdate{
			ItemID:     it.ID,
			RiderID:    riderID,
			SupplierID: d.SupplierID,
			UserID:     userID,
			Status:     status,
			Title:      n.title,
			Message:    n.message,
		}
	}

	failedAt := -1
	for i, it := range d.SupplierItems {
		if err := ctx.Err(); err != nil {
			res.cause = err
			failedAt = i
			break
		}
		if order.ItemStatus(it).Stage() >= to.Stage() {
			res.items[i].Result = domain.ItemUnchanged
			continue
		}
		if err := s.call(ctx, update(it, to, n)); err != nil {
			res.items[i].Result = domain.ItemFailed
			res.cause = err
			failedAt = i
			break
		}
		res.items[i].Result = domain.ItemUpdated
	}
	if failedAt < 0 {
		return res
	}

	// Compensation must outlive a cancelled request.
	cctx := context.WithoutCancel(ctx)
	rn := revertNotice(d)
	for i := failedAt - 1; i >= 0; i-- {
		if res.items[i].Result != domain.ItemUpdated {
			continue
		}
		it := d.SupplierItems[i]
		if err := s.call(cctx, update(it, order.ItemStatus(it), rn)); err != nil {
			s.logger.Error("revert item status failed",
				logx.String("delivery_id", d.ID),
				logx.String("item_id", it.ID),
				logx.Err(err),
			)
			continue
		}
		res.items[i].Result = domain.ItemReverted
	}
	return res
}

func (s *Service) call(ctx context.Context, u domain.ItemStatusUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "orders.UpdateItemStatus", trace.WithAttributes(
		attribute.String("item.id", u.ItemID),
		attribute.String("item.status", string(u.Status)),
	))
	defer span.End()

	if _, err := s.orders.UpdateItemStatus(ctx, u); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *Service) record(ctx context.Context, rec domain.TransitionRecord) {
	if s.log == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.callTimeout)
	defer cancel()
	if err := s.log.Insert(ctx, rec); err != nil {
		s.logger.Warn("transition log write failed",
			logx.String("transition_id", rec.ID),
			logx.Err(err),
		)
	}
}

func (s *Service) markRider(ctx context.Context, riderID int64, a domain.RiderAction) {
	st, ok := riderStatusAfter(a)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.callTimeout)
	defer cancel()
	if err := s.riders.SetStatus(ctx, riderID, st); err != nil {
		s.logger.Warn("rider status update failed",
			logx.Int64("rider_id", riderID),
			logx.String("status", string(st)),
			logx.Err(err),
		)
	}
}
