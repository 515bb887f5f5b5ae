package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func anthropicServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *AnthropicClient) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAnthropicClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "claude-3-5-sonnet-20241022",
	})
	if err != nil {
		t.Fatalf("NewAnthropicClient failed: %v", err)
	}
	return server, client
}

func TestAnthropicClient_Complete(t *testing.T) {
	var captured anthropicRequest
	_, client := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "  {\"hospital\": \"City Hospital\"}  "}},
			"model":   "claude-3-5-sonnet-20241022",
			"usage":   map[string]int{"input_tokens": 120, "output_tokens": 30},
		})
	})

	resp, err := client.Complete(context.Background(), CompletionRequest{
		Instruction: "extract fields",
		Text:        "document body",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != `{"hospital": "City Hospital"}` {
		t.Errorf("text = %q, want trimmed body", resp.Text)
	}
	if resp.TokensUsed != 150 {
		t.Errorf("tokens = %d, want 150", resp.TokensUsed)
	}

	if len(captured.Messages) != 1 || len(captured.Messages[0].Content) != 1 {
		t.Fatalf("unexpected message shape: %+v", captured.Messages)
	}
	if captured.Messages[0].Content[0].Type != "text" {
		t.Errorf("content type = %q", captured.Messages[0].Content[0].Type)
	}
}

func TestAnthropicClient_CompleteWithImage(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}

	var captured anthropicRequest
	_, client := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "ok"}},
		})
	})

	_, err := client.Complete(context.Background(), CompletionRequest{
		Instruction: "extract fields",
		Image:       img,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	content := captured.Messages[0].Content
	if len(content) != 2 {
		t.Fatalf("got %d content blocks, want text + image", len(content))
	}
	source := content[1].Source
	if source == nil {
		t.Fatal("image block has no source")
	}
	if source.MediaType != "image/png" {
		t.Errorf("media type = %q, want sniffed image/png", source.MediaType)
	}
	if source.Data != base64.StdEncoding.EncodeToString(img) {
		t.Error("image bytes not base64 encoded")
	}
}

func TestAnthropicClient_APIError(t *testing.T) {
	_, client := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error"}}`))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{Instruction: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var infErr *InferenceError
	if !errors.As(err, &infErr) {
		t.Fatalf("expected InferenceError, got %T", err)
	}
	if infErr.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", infErr.Status)
	}
	if infErr.Body == "" {
		t.Error("error body should carry the upstream response")
	}
}

func TestAnthropicClient_EmptyContent(t *testing.T) {
	_, client := anthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	})

	_, err := client.Complete(context.Background(), CompletionRequest{Instruction: "x"})
	var infErr *InferenceError
	if !errors.As(err, &infErr) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
}

func TestNewAnthropicClient_RequiresKey(t *testing.T) {
	if _, err := NewAnthropicClient(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
