// Package provider builds the configured llm.ChatCompletionClient.
package provider

import (
	"fmt"
	"strings"

	"github.com/iconidentify/scriptforge/internal/config"
	"github.com/iconidentify/scriptforge/internal/llm"
	"github.com/iconidentify/scriptforge/pkg/cerebras"
	"github.com/iconidentify/scriptforge/pkg/openaicompat"
)

// New returns the client for cfg.Provider, reporting calls to obs when set.
func New(cfg config.LLMConfig, obs llm.Observer) (llm.ChatCompletionClient, error) {
	var client llm.ChatCompletionClient
	name := strings.ToLower(cfg.Provider)
	switch name {
	case config.ProviderCerebras, "":
		name = config.ProviderCerebras
		client = cerebras.NewClient(cfg)
	case config.ProviderOpenAI:
		client = openaicompat.NewClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	return llm.Observe(client, name, obs), nil
}
