package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iconidentify/scriptforge/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps a domain error to the REST status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrHistoryNotFound),
		errors.Is(err, domain.ErrBrandNotFound),
		errors.Is(err, domain.ErrKnowledgeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateBrand):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
