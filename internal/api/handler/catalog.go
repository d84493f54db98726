package handler

import (
	"net/http"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// Catalog handles GET /api/v1/catalog: the option lists a client renders.
func Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.DefaultCatalog())
}
