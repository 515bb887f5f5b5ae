package llm

import (
	"fmt"
	"strings"
)

// New creates an inference client based on configuration.
func New(config Config) (Client, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(config)

	case "anthropic", "claude":
		return NewAnthropicClient(config)

	case "ollama":
		return NewOllamaClient(config)

	default:
		return nil, fmt.Errorf("unknown inference provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
