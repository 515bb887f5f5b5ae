package cli

import (
	"fmt"
	"os"

	"github.com/aprilio/claimscope/internal/llm"
	"github.com/aprilio/claimscope/internal/model"
	"github.com/aprilio/claimscope/internal/store"
	"github.com/spf13/viper"
)

// buildConfig assembles the effective configuration: defaults overlaid
// with any values viper picked up from file or environment.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetInt("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if v := viper.GetInt("llm.max_tokens"); v > 0 {
		cfg.LLM.MaxTokens = v
	}
	if v := viper.GetFloat64("llm.requests_per_minute"); v > 0 {
		cfg.LLM.RequestsPerMinute = v
	}
	if v := viper.GetString("store.dir"); v != "" {
		cfg.Store.Dir = v
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// resolveAPIKey fills the provider credential from the environment.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// newClient builds the configured inference client.
func newClient(cfg *model.Config) (llm.Client, error) {
	if err := resolveAPIKey(cfg); err != nil {
		return nil, err
	}
	return llm.New(llm.ConfigFromModel(cfg.LLM))
}

// newStore builds the layered record store.
func newStore(cfg *model.Config) *store.RecordStore {
	backend := store.NewLayeredBackend(cfg.Store.MemoryTTL, cfg.Store.Dir, cfg.Store.DiskTTL)
	return store.NewRecordStore(backend)
}
