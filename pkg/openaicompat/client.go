// Package openaicompat adapts go-openai to llm.ChatCompletionClient for
// any OpenAI-compatible endpoint (OpenAI, OpenRouter, Cerebras).
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iconidentify/scriptforge/internal/config"
	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/llm"
)

// Upstream names this provider in transport errors.
const Upstream = "OpenAI-compatible"

// Client implements llm.ChatCompletionClient over go-openai.
type Client struct {
	client *openai.Client
	model  string
}

var _ llm.ChatCompletionClient = (*Client)(nil)

// NewClient creates a client for the configured base URL.
func NewClient(cfg config.LLMConfig) *Client {
	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		client: openai.NewClientWithConfig(openaiConfig),
		model:  cfg.Model,
	}
}

// Complete sends one chat completion request in JSON object mode.
func (c *Client) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temperature(req.Temperature),
		MaxTokens:   req.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", translateError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%s: %w", Upstream, domain.ErrEmptyResponse)
	}

	return resp.Choices[0].Message.Content, nil
}

// temperature keeps a zero temperature on the wire; go-openai omits the
// field when it is exactly zero.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// translateError maps go-openai HTTP failures onto domain.TransportError.
func translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &domain.TransportError{
			Upstream:   Upstream,
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := reqErr.HTTPStatus
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &domain.TransportError{
			Upstream:   Upstream,
			StatusCode: reqErr.HTTPStatusCode,
			Body:       body,
		}
	}

	return fmt.Errorf("create chat completion: %w", err)
}
