package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func ollamaServer(t *testing.T, handler http.HandlerFunc) *OllamaClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewOllamaClient(Config{BaseURL: server.URL, Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("NewOllamaClient failed: %v", err)
	}
	return client
}

func TestOllamaClient_Complete(t *testing.T) {
	var captured ollamaRequest
	client := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:           "llama3.1:8b",
			Response:        "  extracted  ",
			Done:            true,
			PromptEvalCount: 40,
			EvalCount:       10,
		})
	})

	resp, err := client.Complete(context.Background(), CompletionRequest{
		Instruction: "extract fields",
		Text:        "document body",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != "extracted" {
		t.Errorf("text = %q, want trimmed", resp.Text)
	}
	if resp.TokensUsed != 50 {
		t.Errorf("tokens = %d, want 50", resp.TokensUsed)
	}
	if captured.Stream {
		t.Error("streaming must be disabled")
	}
	if !strings.Contains(captured.Prompt, "document body") {
		t.Errorf("prompt %q missing document text", captured.Prompt)
	}
}

func TestOllamaClient_TokenEstimateFallback(t *testing.T) {
	client := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{Response: "12345678", Done: true})
	})

	resp, err := client.Complete(context.Background(), CompletionRequest{Instruction: "abcd"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	// (4 prompt chars + 8 response chars) / 4
	if resp.TokensUsed != 3 {
		t.Errorf("tokens = %d, want estimated 3", resp.TokensUsed)
	}
}

func TestOllamaClient_RequiresModel(t *testing.T) {
	client, err := NewOllamaClient(Config{BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("NewOllamaClient failed: %v", err)
	}
	if _, err := client.Complete(context.Background(), CompletionRequest{Instruction: "x"}); err == nil {
		t.Fatal("expected error for missing model")
	}
}

func TestOllamaClient_ServerError(t *testing.T) {
	client := ollamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("model not loaded"))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{Instruction: "x"})
	var infErr *InferenceError
	if !errors.As(err, &infErr) {
		t.Fatalf("expected InferenceError, got %v", err)
	}
	if infErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", infErr.Status)
	}
	if infErr.Body != "model not loaded" {
		t.Errorf("body = %q", infErr.Body)
	}
}
