// Package search defines the web search capability used by the
// research-content pipeline.
package search

import (
	"context"
	"encoding/json"
	"fmt"
)

// Item is the projection of one search hit handed to the LLM.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Results holds the organic and video hits of one query.
type Results struct {
	Organic []Item `json:"organic"`
	Videos  []Item `json:"videos"`
}

// SearchClient runs one web search. Implementations do not retry.
type SearchClient interface {
	Search(ctx context.Context, query string) (*Results, error)
}

// ContextBlob serializes results as {"organic":[...],"videos":[...]}.
// Missing lists are written as empty arrays.
func ContextBlob(r *Results) (string, error) {
	out := Results{Organic: []Item{}, Videos: []Item{}}
	if r != nil {
		if r.Organic != nil {
			out.Organic = r.Organic
		}
		if r.Videos != nil {
			out.Videos = r.Videos
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal search context: %w", err)
	}
	return string(data), nil
}
