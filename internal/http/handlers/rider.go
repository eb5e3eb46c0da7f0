package handlers

import (
	"net/http"
	"strconv"

	"service-rider-platform/internal/logx"
)

// RiderHandler serves HTTP endpoints for rider resources.
type RiderHandler struct {
	uc     riderUsecase
	logger logx.Logger
}

// NewRiderHandler wires a rider usecase into HTTP handlers.
func NewRiderHandler(logger logx.Logger, uc riderUsecase) *RiderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &RiderHandler{uc: uc, logger: logger}
}

// GetByID handles GET /riders/{id}.
// @Summary Get rider
// @Tags riders
// @Produce json
// @Param id path int true "Rider ID"
// @Success 200 {object} riderDTO
// @Failure 400 {object} ErrorResponse "invalid id"
// @Failure 404 {object} ErrorResponse "not found"
// @Router /riders/{id} [get]
func (h *RiderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	rd, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, riderToResponse(*rd))
}

// List handles GET /riders?limit=&offset=.
// @Summary List riders
// @Tags riders
// @Produce json
// @Success 200 {array} riderDTO
// @Failure 400 {object} ErrorResponse "invalid limit or offset"
// @Router /riders [get]
func (h *RiderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.uc.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, ridersToResponse(list))
}

// Create handles POST /riders.
// @Summary Register rider
// @Tags riders
// @Accept json
// @Produce json
// @Param request body createRiderRequest true "Rider"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 409 {object} ErrorResponse "phone already registered"
// @Router /riders [post]
func (h *RiderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRiderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	id, err := h.uc.Create(r.Context(), req.toModel())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/riders/"+strconv.FormatInt(id, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, map[string]int64{"id": id})
}

// Update handles PATCH /riders with partial updates from the request body.
// @Summary Update rider
// @Tags riders
// @Accept json
// @Produce json
// @Param request body updateRiderRequest true "Changed fields"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "not found"
// @Failure 409 {object} ErrorResponse "phone already registered"
// @Router /riders [patch]
func (h *RiderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRiderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	if _, err := h.uc.UpdatePartial(r.Context(), req.toModel()); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "ok"})
}
