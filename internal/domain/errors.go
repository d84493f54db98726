package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	// ErrEmptyResponse is returned when an upstream answered 2xx without usable content.
	ErrEmptyResponse = errors.New("upstream returned empty content")

	// ErrGeneration is matched by every script generation failure that must reach the user.
	ErrGeneration = errors.New("script generation failed")

	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("invalid request")

	// ErrUnknownAction is returned when the router receives an action it does not serve.
	ErrUnknownAction = errors.New("unknown action")

	// ErrHistoryNotFound is returned when a history record cannot be found.
	ErrHistoryNotFound = errors.New("history record not found")

	// ErrBrandNotFound is returned when a brand cannot be found.
	ErrBrandNotFound = errors.New("brand not found")

	// ErrDuplicateBrand is returned when a brand with the same name already exists.
	ErrDuplicateBrand = errors.New("brand with this name already exists")

	// ErrKnowledgeNotFound is returned when a knowledge base entry cannot be found.
	ErrKnowledgeNotFound = errors.New("knowledge item not found")
)

// TransportError is a non-2xx answer from an upstream HTTP service.
type TransportError struct {
	Upstream   string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Upstream, e.StatusCode, e.Body)
}

// ParseError wraps a failure to decode model output.
type ParseError struct {
	Pipeline Action
	Raw      string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Pipeline, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes script pipeline parse failures match ErrGeneration.
func (e *ParseError) Is(target error) bool {
	return target == ErrGeneration && e.Pipeline == ActionGenerateScripts
}

// ValidationError reports an empty or invalid caller-supplied field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// SearchError is a failure reported by the search provider, either through
// the HTTP status or through an error field in a 2xx body.
type SearchError struct {
	StatusCode int
	Message    string
}

func (e *SearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search failed (%d): %s", e.StatusCode, e.Message)
	}
	return "search error: " + e.Message
}

// UnknownActionError names an action the router does not serve.
type UnknownActionError struct {
	Action Action
}

func (e *UnknownActionError) Error() string {
	return "Unknown action: " + string(e.Action)
}

// Is makes every UnknownActionError match ErrUnknownAction.
func (e *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}
