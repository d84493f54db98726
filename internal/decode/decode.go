// Package decode turns free-text model output into result types.
package decode

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// Placeholder texts of a research analysis that could not be parsed.
const (
	FallbackMarketAnalysis = "Failed to parse AI response. Raw output available."
	FallbackNoContent      = "No content generated."
)

// ErrNotObject is wrapped by a ParseError when the output is valid JSON but
// not an object, such as a bare null.
var ErrNotObject = errors.New("response is not a JSON object")

// Sanitize strips Markdown code fences and cuts the text down to the span
// between the first '{' and the last '}'. Text without such a span is
// returned trimmed.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return s
	}
	return s[first : last+1]
}

// DecodeScript parses a script bundle. Failures are returned as a
// *domain.ParseError that also matches domain.ErrGeneration.
func DecodeScript(raw string) (*domain.ScriptResult, error) {
	var result *domain.ScriptResult
	if err := unmarshalObject(raw, &result); err != nil {
		return nil, &domain.ParseError{Pipeline: domain.ActionGenerateScripts, Raw: raw, Err: err}
	}
	if result == nil {
		return nil, &domain.ParseError{Pipeline: domain.ActionGenerateScripts, Raw: raw, Err: ErrNotObject}
	}
	return result, nil
}

// DecodeResearchPrompt parses a generated research prompt and stamps it
// with the request it answers.
func DecodeResearchPrompt(raw string, req domain.ResearchRequest) (*domain.ResearchResult, error) {
	var result *domain.ResearchResult
	if err := unmarshalObject(raw, &result); err != nil {
		return nil, &domain.ParseError{Pipeline: domain.ActionResearchPrompt, Raw: raw, Err: err}
	}
	if result == nil {
		return nil, &domain.ParseError{Pipeline: domain.ActionResearchPrompt, Raw: raw, Err: ErrNotObject}
	}
	result.TopicQuery = req.TopicQuery
	result.ContentFormat = req.ContentFormat
	return result, nil
}

// DecodeResearchAnalysis parses a search-augmented market analysis.
// It never fails: unparseable output yields a placeholder result that
// carries the raw text in StrategySuggestion.
func DecodeResearchAnalysis(raw string, req domain.ResearchRequest) *domain.ResearchResult {
	var result *domain.ResearchResult
	if err := unmarshalObject(raw, &result); err != nil || result == nil {
		suggestion := raw
		if strings.TrimSpace(suggestion) == "" {
			suggestion = FallbackNoContent
		}
		return &domain.ResearchResult{
			TopicQuery:         req.TopicQuery,
			ContentFormat:      req.ContentFormat,
			Candidates:         []domain.Candidate{},
			MarketAnalysis:     FallbackMarketAnalysis,
			StrategySuggestion: suggestion,
		}
	}
	result.TopicQuery = req.TopicQuery
	result.ContentFormat = req.ContentFormat
	return result
}

// unmarshalObject decodes the sanitized text into a pointer target, leaving
// it nil when the text is a JSON null.
func unmarshalObject[T any](raw string, target **T) error {
	return json.Unmarshal([]byte(Sanitize(raw)), target)
}
