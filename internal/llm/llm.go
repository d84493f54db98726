// Package llm defines the chat-completion capability used by the pipelines.
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// ChatRequest is a single system/user exchange.
type ChatRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// ChatCompletionClient sends one chat completion request and returns the
// assistant text. Implementations do not retry.
type ChatCompletionClient interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Observer receives the outcome of every completion.
type Observer interface {
	ObserveLLMCall(provider, outcome string, d time.Duration)
}

// Outcome labels.
const (
	OutcomeSuccess   = "success"
	OutcomeEmpty     = "empty"
	OutcomeTransport = "transport_error"
	OutcomeError     = "error"
)

// Outcome classifies a completion error.
func Outcome(err error) string {
	var te *domain.TransportError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrEmptyResponse):
		return OutcomeEmpty
	case errors.As(err, &te):
		return OutcomeTransport
	default:
		return OutcomeError
	}
}

type observed struct {
	next     ChatCompletionClient
	provider string
	obs      Observer
}

// Observe wraps a client so that every call is reported to obs.
func Observe(next ChatCompletionClient, provider string, obs Observer) ChatCompletionClient {
	if obs == nil {
		return next
	}
	return &observed{next: next, provider: provider, obs: obs}
}

func (o *observed) Complete(ctx context.Context, req ChatRequest) (string, error) {
	start := time.Now()
	out, err := o.next.Complete(ctx, req)
	o.obs.ObserveLLMCall(o.provider, Outcome(err), time.Since(start))
	return out, err
}
