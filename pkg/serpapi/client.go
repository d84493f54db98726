// Package serpapi is a search.SearchClient backed by SerpApi.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/iconidentify/scriptforge/internal/config"
	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/search"
)

const maxBodyBytes = 8 << 20

// Client queries the SerpApi search.json endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	engine     string
	num        int
	httpClient *http.Client
}

var _ search.SearchClient = (*Client)(nil)

// NewClient creates a SerpApi client from configuration.
func NewClient(cfg config.SearchConfig) *Client {
	engine := cfg.Engine
	if engine == "" {
		engine = "google"
	}
	num := cfg.NumResults
	if num <= 0 {
		num = 10
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		engine:     engine,
		num:        num,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type hit struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	OrganicResults []hit   `json:"organic_results"`
	VideoResults   []hit   `json:"video_results"`
	Error          *string `json:"error"`
}

// Search runs query and projects title, link and snippet from the organic
// and video results.
func (c *Client) Search(ctx context.Context, query string) (*search.Results, error) {
	params := url.Values{}
	params.Set("engine", c.engine)
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(c.num))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.SearchError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if decoded.Error != nil {
		return nil, &domain.SearchError{Message: *decoded.Error}
	}

	return &search.Results{
		Organic: project(decoded.OrganicResults),
		Videos:  project(decoded.VideoResults),
	}, nil
}

func project(hits []hit) []search.Item {
	items := make([]search.Item, 0, len(hits))
	for _, h := range hits {
		items = append(items, search.Item{Title: h.Title, Link: h.Link, Snippet: h.Snippet})
	}
	return items
}
