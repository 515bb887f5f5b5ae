package llm

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aprilio/claimscope/internal/model"
)

// Client defines the interface for inference providers. Calls are
// synchronous single request/response: no streaming, no built-in retry.
// Retry policy belongs to the caller.
type Client interface {
	// Name returns the provider name
	Name() string

	// Complete sends one instruction to the provider and returns the raw
	// response text. The caller's context bounds the call.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one inference call.
type CompletionRequest struct {
	// Instruction is the task prompt (field lists, output contract)
	Instruction string

	// Text is optional supplementary document content
	Text string

	// Image is optional raw image bytes. The media type is sniffed from
	// the leading bytes unless MediaType is set.
	Image []byte

	// MediaType overrides image sniffing (e.g. "image/png")
	MediaType string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens limits the response length (0 = provider config)
	MaxTokens int

	// Temperature controls creativity (nil = provider config)
	Temperature *float64
}

// CompletionResponse contains the provider's raw output.
type CompletionResponse struct {
	// Text is the opaque response body; callers parse it defensively
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// InferenceError reports a failed upstream inference call. The pipeline
// never retries on its own; callers decide remediation.
type InferenceError struct {
	Status int
	Body   string
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed (status %d): %s", e.Status, e.Body)
}

// Config holds inference provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature default for requests that do not set one
	Temperature float64

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Timeout:     30,
		MaxTokens:   2000,
		Temperature: 0.3,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
		HTTPProxy:   mc.HTTPProxy,
		HTTPSProxy:  mc.HTTPSProxy,
	}
}

// Supported raster formats. Anything else falls back to JPEG, which is
// what phone cameras produce and what the providers tolerate best.
var imageSignatures = []struct {
	prefix []byte
	media  string
}{
	{[]byte{0x89, 'P', 'N', 'G'}, "image/png"},
	{[]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"},
	{[]byte("GIF8"), "image/gif"},
}

// SniffImageMediaType picks a media type from the payload's leading bytes.
func SniffImageMediaType(data []byte) string {
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(data, sig.prefix) {
			return sig.media
		}
	}
	// WEBP: RIFF....WEBP
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return "image/webp"
	}
	return "image/jpeg"
}

// mediaType resolves the effective media type for a request's image.
func (r CompletionRequest) mediaType() string {
	if r.MediaType != "" {
		return r.MediaType
	}
	return SniffImageMediaType(r.Image)
}
