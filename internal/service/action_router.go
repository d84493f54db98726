package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// ActionObserver receives the outcome of every dispatch.
type ActionObserver interface {
	ObserveAction(action domain.Action, err error, d time.Duration)
}

// ActionRouter dispatches {action, payload} requests to the pipelines.
type ActionRouter struct {
	scripts  *ScriptService
	research *ResearchService
	obs      ActionObserver
	logger   *slog.Logger
}

// NewActionRouter creates a new action router. obs may be nil.
func NewActionRouter(scripts *ScriptService, research *ResearchService, obs ActionObserver, logger *slog.Logger) *ActionRouter {
	return &ActionRouter{
		scripts:  scripts,
		research: research,
		obs:      obs,
		logger:   logger,
	}
}

// Dispatch decodes payload for action and runs the matching pipeline.
func (r *ActionRouter) Dispatch(ctx context.Context, action domain.Action, payload json.RawMessage) (domain.ActionResult, error) {
	start := time.Now()
	result, err := r.dispatch(ctx, action, payload)
	if r.obs != nil {
		r.obs.ObserveAction(action, err, time.Since(start))
	}
	if err != nil {
		r.logger.Error("action failed",
			"action", action,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, err
	}

	r.logger.Info("action completed", "action", action, "duration", time.Since(start))
	return result, nil
}

func (r *ActionRouter) dispatch(ctx context.Context, action domain.Action, payload json.RawMessage) (domain.ActionResult, error) {
	switch action {
	case domain.ActionGenerateScripts:
		var req domain.ScriptRequest
		if err := decodePayload(payload, &req); err != nil {
			return nil, err
		}
		return r.scripts.Generate(ctx, req)

	case domain.ActionResearchContent:
		var req domain.ResearchRequest
		if err := decodePayload(payload, &req); err != nil {
			return nil, err
		}
		return r.research.Content(ctx, req)

	case domain.ActionResearchPrompt:
		var req domain.ResearchRequest
		if err := decodePayload(payload, &req); err != nil {
			return nil, err
		}
		return r.research.Prompt(ctx, req)

	case "":
		return nil, domain.NewValidationError("action", "must not be empty")

	default:
		return nil, &domain.UnknownActionError{Action: action}
	}
}

// decodePayload treats a missing payload as an empty object.
func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return domain.NewValidationError("payload", err.Error())
	}
	return nil
}
