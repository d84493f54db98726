package handler

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/iconidentify/scriptforge/internal/llm"
	"github.com/iconidentify/scriptforge/internal/repository"
	"github.com/iconidentify/scriptforge/internal/search"
	"github.com/iconidentify/scriptforge/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubLLM struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (s *stubLLM) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.reply, s.err
}

type stubSearch struct {
	results *search.Results
	err     error
}

func (s *stubSearch) Search(ctx context.Context, query string) (*search.Results, error) {
	return s.results, s.err
}

// errPinger fails readiness checks with err.
type errPinger struct {
	err error
}

func (p errPinger) Ping(ctx context.Context) error {
	return p.err
}

func newTestActionHandler(client llm.ChatCompletionClient, searcher search.SearchClient, store *repository.InMemoryStore) *ActionHandler {
	opts := service.DefaultGenerationOptions()
	router := service.NewActionRouter(
		service.NewScriptService(client, store, opts, testLogger()),
		service.NewResearchService(client, searcher, opts, testLogger()),
		nil,
		testLogger(),
	)
	return NewActionHandler(router, testLogger())
}

const validScriptJSON = `{"strategy":"s","longFormScript":"l","scripts":["1","2","3","4","5"]}`
