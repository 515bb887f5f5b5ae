package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements the Client interface for OpenAI models.
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured.
func (c *OpenAIClient) IsAvailable(ctx context.Context) bool {
	_, err := c.client.ListModels(ctx)
	return err == nil
}

// Complete sends one chat completion request. Image payloads are embedded
// as base64 data URLs with the sniffed media type.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 2000
	}

	temperature := c.config.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	userMessage := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(req.Image) > 0 {
		dataURL := fmt.Sprintf("data:%s;base64,%s", req.mediaType(), base64.StdEncoding.EncodeToString(req.Image))
		parts := []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: userText(req)},
			{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
			},
		}
		userMessage.MultiContent = parts
	} else {
		userMessage.Content = userText(req)
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    []openai.ChatCompletionMessage{userMessage},
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
	}

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &InferenceError{Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, &InferenceError{Status: reqErr.HTTPStatusCode, Body: reqErr.Error()}
		}
		return nil, &InferenceError{Status: http.StatusBadGateway, Body: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return nil, &InferenceError{Status: http.StatusBadGateway, Body: "no choices in OpenAI response"}
	}

	return &CompletionResponse{
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      resp.Model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// userText joins the instruction and supplementary document text into one
// user message body.
func userText(req CompletionRequest) string {
	if req.Text == "" {
		return req.Instruction
	}
	return req.Instruction + "\n\n" + req.Text
}
