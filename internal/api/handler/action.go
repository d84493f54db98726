package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/service"
)

// maxActionBody bounds the request body; source texts can be long articles.
const maxActionBody = 4 << 20

// ActionHandler serves the {action, payload} endpoint.
type ActionHandler struct {
	router *service.ActionRouter
	logger *slog.Logger
}

// NewActionHandler creates a new action handler.
func NewActionHandler(router *service.ActionRouter, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		router: router,
		logger: logger,
	}
}

// ActionRequest is the JSON request body of the action endpoint.
type ActionRequest struct {
	Action  domain.Action   `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Handle handles POST /api/v1/actions. Every failure, including a
// malformed body, is answered with 500 and {"error": message}; success
// returns the result object itself.
func (h *ActionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxActionBody))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read request body: "+err.Error())
		return
	}

	var req ActionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Warn("malformed action request", "error", err)
		writeError(w, http.StatusInternalServerError, "invalid request body: "+err.Error())
		return
	}
	if req.Action == "" {
		writeError(w, http.StatusInternalServerError, "missing action")
		return
	}

	result, err := h.router.Dispatch(r.Context(), req.Action, req.Payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
