package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/idempotency"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/transition"
)

// IdempotencyHeader carries the client key of a transition request.
const IdempotencyHeader = "X-Idempotency-Key"

const maxIdempotencyKey = 128

// TransitionHandler serves rider status transitions.
type TransitionHandler struct {
	uc     transitionUsecase
	store  replayStore
	logger logx.Logger
}

// NewTransitionHandler creates a TransitionHandler. A nil store disables replay.
func NewTransitionHandler(logger logx.Logger, uc transitionUsecase, store *idempotency.Store) *TransitionHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	h := &TransitionHandler{uc: uc, logger: logger}
	if store != nil {
		h.store = store
	}
	return h
}

func pieceFromURL(r *http.Request) (string, string, bool) {
	orderID := strings.TrimSpace(chi.URLParam(r, "orderID"))
	supplierID := strings.TrimSpace(chi.URLParam(r, "supplierID"))
	return orderID, supplierID, orderID != "" && supplierID != ""
}

// Apply handles POST /deliveries/{orderID}/{supplierID}/transitions.
// @Summary Move a delivery piece to its next status
// @Tags transitions
// @Accept json
// @Produce json
// @Param X-Idempotency-Key header string false "Client key for safe retries"
// @Param request body transitionRequest true "Action"
// @Success 200 {object} transitionResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 403 {object} ErrorResponse "forbidden"
// @Failure 404 {object} ErrorResponse "not found"
// @Failure 409 {object} ErrorResponse "transition not allowed"
// @Failure 502 {object} partialFailureResponse "orders backend failed"
// @Router /deliveries/{orderID}/{supplierID}/transitions [post]
func (h *TransitionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionOf(r)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	orderID, supplierID, ok := pieceFromURL(r)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid delivery id")
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	if len(key) > maxIdempotencyKey {
		writeError(h.logger, w, r, http.StatusBadRequest, "idempotency key too long")
		return
	}

	var req transitionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	holds := false
	if key != "" && h.store != nil {
		stored, reserved, err := h.store.Reserve(r.Context(), sess.RiderID, key)
		switch {
		case errors.Is(err, idempotency.ErrInFlight):
			writeError(h.logger, w, r, http.StatusConflict, "request with this idempotency key is in progress")
			return
		case err != nil:
			h.logger.Warn("idempotency reserve failed",
				logx.String("req_id", reqID(r.Context())),
				logx.Err(err),
			)
		case stored != nil:
			w.Header().Set("Idempotent-Replayed", "true")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(stored.Status)
			_, _ = w.Write(stored.Body)
			return
		}
		holds = reserved
	}

	res, err := h.uc.Apply(r.Context(), sess, transition.Request{
		OrderID:    orderID,
		SupplierID: supplierID,
		Action:     req.Action,
		Reason:     req.Reason,
	})

	rec := &capture{ResponseWriter: w}
	if err != nil {
		writeServiceError(h.logger, rec, r, err)
	} else {
		writeJSON(h.logger, rec, r, http.StatusOK, resultToResponse(res))
	}

	if holds {
		h.settle(r, sess.RiderID, key, rec, err)
	}
}

// settle stores a replayable reply under the reserved key, or releases the key
// so the client can retry. It outlives a cancelled request context.
func (h *TransitionHandler) settle(r *http.Request, riderID, key string, rec *capture, applyErr error) {
	ctx := context.WithoutCancel(r.Context())

	var err error
	if replayable(rec.status, applyErr) {
		err = h.store.Complete(ctx, riderID, key, idempotency.Response{
			Status: rec.status,
			Body:   json.RawMessage(bytes.TrimSpace(rec.body.Bytes())),
		})
	} else {
		err = h.store.Release(ctx, riderID, key)
	}
	if err != nil {
		h.logger.Warn("idempotency settle failed",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

// History handles GET /deliveries/{orderID}/{supplierID}/transitions?limit=.
// @Summary Transition log of a delivery piece
// @Tags transitions
// @Produce json
// @Success 200 {array} transitionRecordDTO
// @Router /deliveries/{orderID}/{supplierID}/transitions [get]
func (h *TransitionHandler) History(w http.ResponseWriter, r *http.Request) {
	orderID, supplierID, ok := pieceFromURL(r)
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid delivery id")
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	list, err := h.uc.History(r.Context(), orderID, supplierID, n)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, recordsToResponse(list))
}

// replayable keeps successful replies and partial failures. Both changed upstream state.
func replayable(status int, err error) bool {
	if err != nil {
		return errors.Is(err, apperr.ErrPartialFailure)
	}
	return status >= 200 && status < 300
}

// capture tees the response so it can be stored for replay.
type capture struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *capture) WriteHeader(status int) {
	c.status = status
	c.ResponseWriter.WriteHeader(status)
}

func (c *capture) Write(b []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(b)
	return c.ResponseWriter.Write(b)
}
