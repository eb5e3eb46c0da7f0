package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/auth"
	"service-rider-platform/internal/domain"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/feed"
)

// DeliveryHandler serves the rider delivery feeds.
type DeliveryHandler struct {
	uc           feedUsecase
	logger       logx.Logger
	pollInterval time.Duration
}

// NewDeliveryHandler creates a new DeliveryHandler. pollInterval paces the event stream.
func NewDeliveryHandler(logger logx.Logger, uc feedUsecase, pollInterval time.Duration) *DeliveryHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DeliveryHandler{uc: uc, logger: logger, pollInterval: pollInterval}
}

func sessionOf(r *http.Request) (auth.Session, error) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		return auth.Session{}, apperr.ErrUnauthorized
	}
	return sess, nil
}

// New handles GET /deliveries/new.
// @Summary Unclaimed delivery pieces
// @Tags deliveries
// @Produce json
// @Success 200 {array} deliveryDTO
// @Failure 502 {object} ErrorResponse "orders backend failed"
// @Router /deliveries/new [get]
func (h *DeliveryHandler) New(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, feed.KindNew)
}

// Active handles GET /deliveries/active.
// @Summary Pieces the rider is carrying
// @Tags deliveries
// @Produce json
// @Success 200 {array} deliveryDTO
// @Router /deliveries/active [get]
func (h *DeliveryHandler) Active(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, feed.KindActive)
}

// Completed handles GET /deliveries/completed.
// @Summary Pieces the rider finished
// @Tags deliveries
// @Produce json
// @Success 200 {array} deliveryDTO
// @Router /deliveries/completed [get]
func (h *DeliveryHandler) Completed(w http.ResponseWriter, r *http.Request) {
	h.serveFeed(w, r, feed.KindCompleted)
}

func (h *DeliveryHandler) serveFeed(w http.ResponseWriter, r *http.Request, k feed.Kind) {
	sess, err := sessionOf(r)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	list, err := h.uc.Feed(r.Context(), k, sess)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// ForOrder handles GET /orders/{orderID}/deliveries.
// @Summary All pieces of one order
// @Tags deliveries
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {array} deliveryDTO
// @Failure 404 {object} ErrorResponse "not found"
// @Router /orders/{orderID}/deliveries [get]
func (h *DeliveryHandler) ForOrder(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderID"))
	if orderID == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	list, err := h.uc.ForOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// Stream handles GET /deliveries/stream?feed=new|active as Server-Sent Events.
// Every poll emits a "deliveries" event; a failed poll emits an "error" event and the stream continues.
func (h *DeliveryHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	name := r.URL.Query().Get("feed")
	if name == "" {
		name = string(feed.KindNew)
	}
	kind, err := feed.ParseKind(name)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(h.logger, w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log := h.logger.With(
		logx.String("req_id", reqID(r.Context())),
		logx.String("rider_id", sess.RiderID),
		logx.String("feed", string(kind)),
	)
	log.Debug("delivery stream opened")

	err = h.uc.Watch(r.Context(), h.pollInterval, kind, sess, func(list []domain.Delivery, err error) {
		if err != nil {
			_, msg := errorStatus(err)
			writeEvent(log, w, "error", ErrorResponse{Error: msg})
		} else {
			writeEvent(log, w, "deliveries", deliveriesToResponse(list))
		}
		flusher.Flush()
	})
	log.Debug("delivery stream closed", logx.Err(err))
}

func writeEvent(logger logx.Logger, w http.ResponseWriter, event string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Warn("sse encode error", logx.Err(err))
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
		logger.Debug("sse write failed", logx.Err(err))
	}
}
