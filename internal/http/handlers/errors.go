package handlers

import (
	"errors"
	"net/http"

	"service-rider-platform/internal/apperr"
	"service-rider-platform/internal/logx"
	"service-rider-platform/internal/service/transition"
)

type partialFailureResponse struct {
	Error    string   `json:"error"`
	Delivery string   `json:"delivery_id"`
	Updated  []string `json:"updated"`
	Failed   []string `json:"failed"`
	Reverted []string `json:"reverted"`
	Skipped  []string `json:"skipped"`
}

// errorStatus maps service errors to an HTTP status and a public message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, apperr.ErrPartialFailure), errors.Is(err, apperr.ErrUpstream):
		return http.StatusBadGateway, "orders backend failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			logx.String("req_id", reqID(r.Context())),
			logx.String("path", r.URL.Path),
			logx.Err(err),
		)
	}

	var pf *transition.PartialFailureError
	if errors.As(err, &pf) {
		writeJSON(logger, w, r, status, partialFailureResponse{
			Error:    "transition partially applied",
			Delivery: pf.DeliveryID,
			Updated:  nonNil(pf.Updated),
			Failed:   nonNil(pf.Failed),
			Reverted: nonNil(pf.Reverted),
			Skipped:  nonNil(pf.Skipped),
		})
		return
	}
	writeError(logger, w, r, status, msg)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
