package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/iconidentify/scriptforge/internal/decode"
	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/llm"
	"github.com/iconidentify/scriptforge/internal/prompt"
	"github.com/iconidentify/scriptforge/internal/repository"
)

// ScriptService runs the generate-scripts pipeline.
type ScriptService struct {
	llm     llm.ChatCompletionClient
	history repository.HistoryRepository
	opts    GenerationOptions
	logger  *slog.Logger
}

// NewScriptService creates a new script service. history may be nil, in
// which case results are not recorded.
func NewScriptService(
	client llm.ChatCompletionClient,
	history repository.HistoryRepository,
	opts GenerationOptions,
	logger *slog.Logger,
) *ScriptService {
	return &ScriptService{
		llm:     client,
		history: history,
		opts:    opts,
		logger:  logger,
	}
}

// Generate builds the prompt, calls the model and decodes the scripts.
// A successful result is appended to history; a failed save is only logged.
func (s *ScriptService) Generate(ctx context.Context, req domain.ScriptRequest) (*domain.ScriptResult, error) {
	if strings.TrimSpace(req.SourceText) == "" {
		return nil, domain.NewValidationError("sourceText", "must not be empty")
	}

	p := prompt.ForScripts(req)
	raw, err := s.llm.Complete(ctx, llm.ChatRequest{
		System:      p.System,
		User:        p.User,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate scripts: %w", err)
	}

	result, err := decode.DecodeScript(raw)
	if err != nil {
		s.logger.Warn("model returned undecodable scripts",
			"brand", req.Brand,
			"raw_length", len(raw),
			"error", err,
		)
		return nil, err
	}

	s.record(ctx, req, result)

	s.logger.Info("generated scripts",
		"brand", req.Brand,
		"preset", req.StylePreset,
		"scripts", len(result.ShortScripts),
	)
	return result, nil
}

func (s *ScriptService) record(ctx context.Context, req domain.ScriptRequest, result *domain.ScriptResult) {
	if s.history == nil {
		return
	}
	rec := domain.NewHistoryRecord(domain.HistoryID(uuid.NewString()), req, *result)
	if err := s.history.AddHistory(ctx, rec); err != nil {
		s.logger.Error("failed to save history", "brand", req.Brand, "error", err)
	}
}
