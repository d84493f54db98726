package cerebras

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iconidentify/scriptforge/internal/config"
	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/internal/llm"
)

func testClient(url string) *HTTPClient {
	return &HTTPClient{
		apiKey:     "test-key",
		model:      "llama3.1-8b",
		baseURL:    url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func chatBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
}

func TestNewClient(t *testing.T) {
	cfg := config.LLMConfig{
		APIKey:  "test-api-key",
		Model:   "llama3.1-8b",
		BaseURL: "https://api.cerebras.ai/v1/",
	}

	client := NewClient(cfg)

	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.apiKey != "test-api-key" {
		t.Errorf("apiKey = %q, want %q", client.apiKey, "test-api-key")
	}
	if client.baseURL != "https://api.cerebras.ai/v1" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", client.baseURL)
	}
	if client.httpClient.Timeout != 0 {
		t.Errorf("Timeout = %v, want none", client.httpClient.Timeout)
	}
}

func TestHTTPClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing or wrong Authorization header")
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["model"] != "llama3.1-8b" {
			t.Errorf("model = %v", body["model"])
		}
		if body["max_tokens"] != float64(8192) {
			t.Errorf("max_tokens = %v, want 8192", body["max_tokens"])
		}
		rf, _ := body["response_format"].(map[string]interface{})
		if rf["type"] != "json_object" {
			t.Errorf("response_format = %v, want json_object", body["response_format"])
		}
		msgs, _ := body["messages"].([]interface{})
		if len(msgs) != 2 {
			t.Fatalf("len(messages) = %d, want 2", len(msgs))
		}
		first, _ := msgs[0].(map[string]interface{})
		second, _ := msgs[1].(map[string]interface{})
		if first["role"] != "system" || first["content"] != "sys" {
			t.Errorf("messages[0] = %v", first)
		}
		if second["role"] != "user" || second["content"] != "usr" {
			t.Errorf("messages[1] = %v", second)
		}

		json.NewEncoder(w).Encode(chatBody(`{"strategy":"s"}`))
	}))
	defer server.Close()

	out, err := testClient(server.URL).Complete(context.Background(), llm.ChatRequest{
		System:      "sys",
		User:        "usr",
		MaxTokens:   8192,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != `{"strategy":"s"}` {
		t.Errorf("out = %q", out)
	}
}

func TestHTTPClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limit exceeded"))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), llm.ChatRequest{System: "s", User: "u"})
	if err == nil {
		t.Fatal("expected error for API failure")
	}

	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error should be a TransportError, got %T", err)
	}
	if te.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", te.StatusCode)
	}
	if !strings.Contains(err.Error(), "rate limit exceeded") || !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry status and body: %v", err)
	}
}

func TestHTTPClient_Complete_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"no choices", map[string]interface{}{"choices": []map[string]interface{}{}}},
		{"empty content", chatBody("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			_, err := testClient(server.URL).Complete(context.Background(), llm.ChatRequest{})
			if !errors.Is(err, domain.ErrEmptyResponse) {
				t.Errorf("err = %v, want ErrEmptyResponse", err)
			}
		})
	}
}

func TestHTTPClient_Complete_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), llm.ChatRequest{})
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestHTTPClient_Complete_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(chatBody("test"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(server.URL).Complete(ctx, llm.ChatRequest{})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
