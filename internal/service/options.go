package service

import "github.com/iconidentify/scriptforge/internal/config"

// GenerationOptions holds the sampling parameters shared by the pipelines.
type GenerationOptions struct {
	Temperature float32
	// MaxTokens applies to script generation and research analysis.
	MaxTokens int
	// PromptMaxTokens applies to research-prompt generation.
	PromptMaxTokens int
}

// DefaultGenerationOptions returns the values the server ships with.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{Temperature: 0.7, MaxTokens: 8192, PromptMaxTokens: 4000}
}

// GenerationOptionsFrom reads the options from LLM configuration, keeping
// defaults for unset token limits. Temperature is copied as configured so
// that zero selects greedy sampling.
func GenerationOptionsFrom(cfg config.LLMConfig) GenerationOptions {
	opts := DefaultGenerationOptions()
	opts.Temperature = cfg.Temperature
	if cfg.MaxTokens > 0 {
		opts.MaxTokens = cfg.MaxTokens
	}
	if cfg.PromptMaxTokens > 0 {
		opts.PromptMaxTokens = cfg.PromptMaxTokens
	}
	return opts
}
