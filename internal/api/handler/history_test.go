package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/repository"
	"github.com/iconidentify/scriptforge/internal/service"
)

func newHistoryRouter(store *repository.InMemoryStore) http.Handler {
	h := NewHistoryHandler(service.NewHistoryService(store, testLogger()), testLogger())
	r := chi.NewRouter()
	r.Get("/history", h.List)
	r.Patch("/history/{id}", h.SetUsed)
	r.Post("/history/{id}/toggle", h.Toggle)
	return r
}

func seedHistory(t *testing.T, store *repository.InMemoryStore) {
	t.Helper()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []domain.HistoryID{"h-1", "h-2"} {
		store.AddHistory(context.Background(), &domain.HistoryRecord{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Brand:     "eXp",
		})
	}
}

func TestHistoryHandler_List(t *testing.T) {
	store := repository.NewInMemoryStore()
	seedHistory(t, store)

	w := httptest.NewRecorder()
	newHistoryRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var records []domain.HistoryRecord
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 || records[0].ID != "h-2" {
		t.Errorf("records = %+v, want newest first", records)
	}
}

func TestHistoryHandler_List_Empty(t *testing.T) {
	w := httptest.NewRecorder()
	newHistoryRouter(repository.NewInMemoryStore()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))

	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}

func TestHistoryHandler_SetUsed(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantUsed   bool
	}{
		{"set used", "/history/h-1", `{"is_used":true}`, http.StatusOK, true},
		{"missing flag", "/history/h-1", `{}`, http.StatusBadRequest, false},
		{"invalid json", "/history/h-1", `nope`, http.StatusBadRequest, false},
		{"unknown id", "/history/missing", `{"is_used":true}`, http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewInMemoryStore()
			seedHistory(t, store)

			req := httptest.NewRequest(http.MethodPatch, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			newHistoryRouter(store).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			rec, _ := store.GetHistory(context.Background(), "h-1")
			if rec.IsUsed != tt.wantUsed {
				t.Errorf("IsUsed = %v, want %v", rec.IsUsed, tt.wantUsed)
			}
		})
	}
}

func TestHistoryHandler_Toggle(t *testing.T) {
	store := repository.NewInMemoryStore()
	seedHistory(t, store)
	router := newHistoryRouter(store)

	// A double click sends the same observed state twice.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/history/h-1/toggle", strings.NewReader(`{"current":false}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		var rec domain.HistoryRecord
		json.NewDecoder(w.Body).Decode(&rec)
		if !rec.IsUsed {
			t.Errorf("toggle #%d: IsUsed = false, want true", i+1)
		}
	}
}
