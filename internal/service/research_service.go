package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iconidentify/scriptforge/internal/decode"
	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/llm"
	"github.com/iconidentify/scriptforge/internal/prompt"
	"github.com/iconidentify/scriptforge/internal/search"
)

// errSearchDisabled is returned by research-content when no search
// provider is configured.
var errSearchDisabled = &domain.SearchError{Message: "search is not configured"}

// ResearchService runs the research-prompt and research-content pipelines.
type ResearchService struct {
	llm    llm.ChatCompletionClient
	search search.SearchClient
	opts   GenerationOptions
	logger *slog.Logger
}

// NewResearchService creates a new research service. searcher may be nil.
func NewResearchService(
	client llm.ChatCompletionClient,
	searcher search.SearchClient,
	opts GenerationOptions,
	logger *slog.Logger,
) *ResearchService {
	return &ResearchService{
		llm:    client,
		search: searcher,
		opts:   opts,
		logger: logger,
	}
}

// normalize validates req and applies the Video default format.
func normalize(req domain.ResearchRequest) (domain.ResearchRequest, error) {
	if strings.TrimSpace(req.TopicQuery) == "" {
		return req, domain.NewValidationError("query", "must not be empty")
	}
	if req.ContentFormat == "" {
		req.ContentFormat = domain.FormatVideo
	}
	if !req.ContentFormat.Valid() {
		return req, domain.NewValidationError("contentType", fmt.Sprintf("unknown format %q", req.ContentFormat))
	}
	return req, nil
}

// Prompt asks the model to write a deep research prompt for the topic.
func (s *ResearchService) Prompt(ctx context.Context, req domain.ResearchRequest) (*domain.ResearchResult, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}

	p := prompt.ForResearchPrompt(req)
	raw, err := s.llm.Complete(ctx, llm.ChatRequest{
		System:      p.System,
		User:        p.User,
		MaxTokens:   s.opts.PromptMaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate research prompt: %w", err)
	}

	return decode.DecodeResearchPrompt(raw, req)
}

// Content searches the web for the topic and asks the model to analyze the
// hits. Undecodable model output degrades to a placeholder result.
func (s *ResearchService) Content(ctx context.Context, req domain.ResearchRequest) (*domain.ResearchResult, error) {
	req, err := normalize(req)
	if err != nil {
		return nil, err
	}
	if s.search == nil {
		return nil, errSearchDisabled
	}

	results, err := s.search.Search(ctx, req.TopicQuery)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	blob, err := search.ContextBlob(results)
	if err != nil {
		return nil, fmt.Errorf("encode search context: %w", err)
	}

	p := prompt.ForResearchAnalysis(req, blob)
	raw, err := s.llm.Complete(ctx, llm.ChatRequest{
		System:      p.System,
		User:        p.User,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze research: %w", err)
	}

	result := decode.DecodeResearchAnalysis(raw, req)
	if result.MarketAnalysis == decode.FallbackMarketAnalysis {
		s.logger.Warn("research analysis degraded to placeholder",
			"query", req.TopicQuery,
			"raw_length", len(raw),
		)
	}
	return result, nil
}

// SearchEnabled reports whether research-content can run.
func (s *ResearchService) SearchEnabled() bool {
	return s.search != nil
}

// IsSearchDisabled reports whether err came from a server without search.
func IsSearchDisabled(err error) bool {
	return errors.Is(err, errSearchDisabled)
}
