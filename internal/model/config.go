package model

import "time"

// Config is the complete claimscope configuration.
// Hierarchy (highest to lowest priority): CLI flags, CLAIMSCOPE_* env
// variables, config file (~/.claimscope/config.yaml), defaults.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Store       StoreConfig       `yaml:"store"`
	Intake      IntakeConfig      `yaml:"intake"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig holds inference provider configuration.
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic (prefer env vars)
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout per inference call, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens caps response length
	MaxTokens int `yaml:"max_tokens"`

	// Temperature controls response creativity
	Temperature float64 `yaml:"temperature"`

	// RequestsPerMinute limits calls per provider (0 = unlimited)
	RequestsPerMinute float64 `yaml:"requests_per_minute"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// StoreConfig holds record store configuration.
type StoreConfig struct {
	// Dir is the disk store directory
	Dir string `yaml:"dir"`

	// MemoryTTL caps how long records stay in the memory layer
	MemoryTTL time.Duration `yaml:"memory_ttl"`

	// DiskTTL caps how long records stay on disk
	DiskTTL time.Duration `yaml:"disk_ttl"`
}

// IntakeConfig holds document intake ceilings. Payloads over these
// limits are rejected before they reach the extraction pipeline.
type IntakeConfig struct {
	MaxTextChars  int   `yaml:"max_text_chars"`
	MaxImageBytes int64 `yaml:"max_image_bytes"`
	MaxFileBytes  int64 `yaml:"max_file_bytes"`
}

// ConcurrencyConfig holds pipeline worker counts.
type ConcurrencyConfig struct {
	// MatchWorkers bounds the fan-out of the matching pipeline's
	// independent search stages
	MatchWorkers int `yaml:"match_workers"`
}

// OutputConfig holds output preferences.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Timeout:     30,
			MaxTokens:   2000,
			Temperature: 0.3,
		},
		Store: StoreConfig{
			Dir:       ".claimscope/records",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   0, // records do not expire by default
		},
		Intake: IntakeConfig{
			MaxTextChars:  50_000,
			MaxImageBytes: 5 * 1024 * 1024,
			MaxFileBytes:  10 * 1024 * 1024,
		},
		Concurrency: ConcurrencyConfig{
			MatchWorkers: 3,
		},
		Output: OutputConfig{},
	}
}
