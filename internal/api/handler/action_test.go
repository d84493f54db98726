package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/repository"
	"github.com/iconidentify/scriptforge/internal/search"
)

func TestActionHandler_GenerateScripts(t *testing.T) {
	store := repository.NewInMemoryStore()
	h := newTestActionHandler(&stubLLM{reply: validScriptJSON}, nil, store)

	body := `{"action":"generate-scripts","payload":{"brand":"eXp","sourceText":"market update","instructions":""}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result domain.ScriptResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.ShortScripts) != 5 {
		t.Errorf("len(scripts) = %d, want 5", len(result.ShortScripts))
	}

	history, _ := store.ListHistory(req.Context())
	if len(history) != 1 {
		t.Errorf("len(history) = %d, want 1", len(history))
	}
}

func TestActionHandler_ResearchContent_Degraded(t *testing.T) {
	searcher := &stubSearch{results: &search.Results{}}
	h := newTestActionHandler(&stubLLM{reply: "plain words"}, searcher, repository.NewInMemoryStore())

	body := `{"action":"research-content","payload":{"query":"tenant tips"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var m map[string]any
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["strategy_suggestion"] != "plain words" {
		t.Errorf("strategy_suggestion = %v", m["strategy_suggestion"])
	}
	if m["market_analysis"] != "Failed to parse AI response. Raw output available." {
		t.Errorf("market_analysis = %v", m["market_analysis"])
	}
	if m["contentType"] != "Video" {
		t.Errorf("contentType = %v, want Video", m["contentType"])
	}
	if candidates, ok := m["candidates"].([]any); !ok || len(candidates) != 0 {
		t.Errorf("candidates = %v, want []", m["candidates"])
	}
}

func TestActionHandler_GenerateScripts_NullReply(t *testing.T) {
	store := repository.NewInMemoryStore()
	h := newTestActionHandler(&stubLLM{reply: "null"}, nil, store)

	body := `{"action":"generate-scripts","payload":{"brand":"eXp","sourceText":"market update"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	if w.Code == http.StatusOK {
		t.Fatalf("status = %d, want an error: %s", w.Code, w.Body.String())
	}
	history, _ := store.ListHistory(req.Context())
	if len(history) != 0 {
		t.Errorf("len(history) = %d, want 0", len(history))
	}
}

func TestActionHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		llmErr   error
		contains string
	}{
		{"malformed json", `{"action":`, nil, "invalid request body"},
		{"missing action", `{"payload":{}}`, nil, "missing action"},
		{"unknown action", `{"action":"unknown-x","payload":{}}`, nil, "Unknown action: unknown-x"},
		{"empty source", `{"action":"generate-scripts","payload":{"sourceText":""}}`, nil, "sourceText"},
		{"upstream failure", `{"action":"generate-scripts","payload":{"sourceText":"x"}}`,
			&domain.TransportError{Upstream: "Cerebras", StatusCode: 429, Body: "rate limited"}, "status 429"},
		{"empty response", `{"action":"generate-scripts","payload":{"sourceText":"x"}}`,
			errors.New("upstream returned empty content"), "empty content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestActionHandler(&stubLLM{err: tt.llmErr}, nil, repository.NewInMemoryStore())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.Handle(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !strings.Contains(body["error"], tt.contains) {
				t.Errorf("error = %q, want it to contain %q", body["error"], tt.contains)
			}
		})
	}
}
