package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/service"
)

// BrandHandler handles brand and knowledge base HTTP requests.
type BrandHandler struct {
	svc    *service.BrandService
	logger *slog.Logger
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(svc *service.BrandService, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		svc:    svc,
		logger: logger,
	}
}

// CreateBrandRequest is the JSON body for brand creation.
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// AddKnowledgeRequest is the JSON body for knowledge creation.
type AddKnowledgeRequest struct {
	Content string `json:"content"`
}

// List returns all brands.
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list brands", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}
	writeJSON(w, http.StatusOK, brands)
}

// Create creates a new brand.
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		h.fail(w, "failed to create brand", err)
		return
	}
	writeJSON(w, http.StatusCreated, brand)
}

// ListKnowledge returns a brand's knowledge items.
func (h *BrandHandler) ListKnowledge(w http.ResponseWriter, r *http.Request) {
	brandID := domain.BrandID(chi.URLParam(r, "id"))

	items, err := h.svc.Knowledge(r.Context(), brandID)
	if err != nil {
		h.fail(w, "failed to list knowledge", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// AddKnowledge stores a new knowledge item for a brand.
func (h *BrandHandler) AddKnowledge(w http.ResponseWriter, r *http.Request) {
	brandID := domain.BrandID(chi.URLParam(r, "id"))

	var req AddKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.svc.AddKnowledge(r.Context(), brandID, req.Content)
	if err != nil {
		h.fail(w, "failed to add knowledge", err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// DeleteKnowledge removes a knowledge item.
func (h *BrandHandler) DeleteKnowledge(w http.ResponseWriter, r *http.Request) {
	id := domain.KnowledgeID(chi.URLParam(r, "id"))

	if err := h.svc.DeleteKnowledge(r.Context(), id); err != nil {
		h.fail(w, "failed to delete knowledge", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BrandHandler) fail(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
		writeError(w, status, msg)
		return
	}
	writeError(w, status, err.Error())
}
