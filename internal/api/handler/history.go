package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/service"
)

// HistoryHandler handles generation history HTTP requests.
type HistoryHandler struct {
	svc    *service.HistoryService
	logger *slog.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc *service.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		svc:    svc,
		logger: logger,
	}
}

// SetUsedRequest is the JSON body of PATCH /history/{id}.
type SetUsedRequest struct {
	IsUsed *bool `json:"is_used"`
}

// ToggleRequest is the JSON body of POST /history/{id}/toggle.
type ToggleRequest struct {
	Current bool `json:"current"`
}

// List returns all records, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list history", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// SetUsed sets the used flag of a record.
func (h *HistoryHandler) SetUsed(w http.ResponseWriter, r *http.Request) {
	id := domain.HistoryID(chi.URLParam(r, "id"))

	var req SetUsedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IsUsed == nil {
		writeError(w, http.StatusBadRequest, "is_used is required")
		return
	}

	rec, err := h.svc.SetUsed(r.Context(), id, *req.IsUsed)
	if err != nil {
		h.fail(w, "failed to update history", id, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Toggle flips the used flag relative to the state the caller saw.
func (h *HistoryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := domain.HistoryID(chi.URLParam(r, "id"))

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.svc.Toggle(r.Context(), id, req.Current)
	if err != nil {
		h.fail(w, "failed to toggle history", id, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *HistoryHandler) fail(w http.ResponseWriter, msg string, id domain.HistoryID, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(msg, "id", id, "error", err)
		writeError(w, status, msg)
		return
	}
	writeError(w, status, err.Error())
}
