// Package client is a Go client for the scriptforge HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
)

// Client communicates with a scriptforge server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scriptforge API error (status %d): %s", e.StatusCode, e.Message)
}

// HealthResponse is the response from the health endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

type actionRequest struct {
	Action  domain.Action `json:"action"`
	Payload any           `json:"payload"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a new scriptforge client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute, // generations can take minutes
		},
	}
}

// GenerateScripts runs the generate-scripts action.
func (c *Client) GenerateScripts(ctx context.Context, req domain.ScriptRequest) (*domain.ScriptResult, error) {
	var result domain.ScriptResult
	if err := c.Action(ctx, domain.ActionGenerateScripts, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResearchPrompt runs the research-prompt action.
func (c *Client) ResearchPrompt(ctx context.Context, req domain.ResearchRequest) (*domain.ResearchResult, error) {
	var result domain.ResearchResult
	if err := c.Action(ctx, domain.ActionResearchPrompt, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResearchContent runs the search-augmented research-content action.
func (c *Client) ResearchContent(ctx context.Context, req domain.ResearchRequest) (*domain.ResearchResult, error) {
	var result domain.ResearchResult
	if err := c.Action(ctx, domain.ActionResearchContent, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Action posts {action, payload} and decodes the result into out.
func (c *Client) Action(ctx context.Context, action domain.Action, payload, out any) error {
	return c.doRequest(ctx, http.MethodPost, "/api/v1/actions", actionRequest{Action: action, Payload: payload}, out)
}

// ListHistory returns all history records, newest first.
func (c *Client) ListHistory(ctx context.Context) ([]*domain.HistoryRecord, error) {
	var records []*domain.HistoryRecord
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/history", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetUsed sets the used flag of a record.
func (c *Client) SetUsed(ctx context.Context, id domain.HistoryID, used bool) (*domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	body := map[string]bool{"is_used": used}
	if err := c.doRequest(ctx, http.MethodPatch, "/api/v1/history/"+id.String(), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Toggle flips the used flag relative to current, the state last seen.
func (c *Client) Toggle(ctx context.Context, id domain.HistoryID, current bool) (*domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	body := map[string]bool{"current": current}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/history/"+id.String()+"/toggle", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListBrands returns all brands ordered by name.
func (c *Client) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	var brands []*domain.Brand
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/brands", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// CreateBrand creates a brand.
func (c *Client) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	var brand domain.Brand
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/brands", map[string]string{"name": name}, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// ListKnowledge returns a brand's knowledge items, newest first.
func (c *Client) ListKnowledge(ctx context.Context, brandID domain.BrandID) ([]*domain.BrandKnowledgeItem, error) {
	var items []*domain.BrandKnowledgeItem
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/brands/"+brandID.String()+"/knowledge", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddKnowledge stores a knowledge item for a brand.
func (c *Client) AddKnowledge(ctx context.Context, brandID domain.BrandID, content string) (*domain.BrandKnowledgeItem, error) {
	var item domain.BrandKnowledgeItem
	body := map[string]string{"content": content}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/brands/"+brandID.String()+"/knowledge", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteKnowledge removes a knowledge item.
func (c *Client) DeleteKnowledge(ctx context.Context, id domain.KnowledgeID) error {
	return c.doRequest(ctx, http.MethodDelete, "/api/v1/knowledge/"+id.String(), nil, nil)
}

// Catalog returns the option lists the server offers.
func (c *Client) Catalog(ctx context.Context) (*domain.Catalog, error) {
	var catalog domain.Catalog
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/catalog", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Health checks if the server is healthy.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
