package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/llm"
	"github.com/iconidentify/scriptforge/internal/search"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubLLM answers every completion with a fixed reply and records requests.
type stubLLM struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []llm.ChatRequest
}

func (s *stubLLM) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.reply, s.err
}

func (s *stubLLM) last() llm.ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

type stubSearch struct {
	results *search.Results
	err     error
	queries []string
}

func (s *stubSearch) Search(ctx context.Context, query string) (*search.Results, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}

// failingHistory rejects every write.
type failingHistory struct {
	err error
}

func (f failingHistory) AddHistory(ctx context.Context, rec *domain.HistoryRecord) error {
	return f.err
}

func (f failingHistory) ListHistory(ctx context.Context) ([]*domain.HistoryRecord, error) {
	return nil, f.err
}

func (f failingHistory) GetHistory(ctx context.Context, id domain.HistoryID) (*domain.HistoryRecord, error) {
	return nil, f.err
}

func (f failingHistory) SetUsed(ctx context.Context, id domain.HistoryID, used bool) error {
	return f.err
}

type recordingActionObserver struct {
	actions []domain.Action
	errs    []error
}

func (r *recordingActionObserver) ObserveAction(action domain.Action, err error, d time.Duration) {
	r.actions = append(r.actions, action)
	r.errs = append(r.errs, err)
}

const validScriptJSON = `{
  "strategy": "Lead with the problem.",
  "longFormScript": "Long form...",
  "scripts": ["one", "two", "three", "four", "five"]
}`
