package llm

import (
	"fmt"
	"time"
)

// ProviderConfig names the backing LM provider and its credentials.
// Zero value selects Ollama, the no-key local default.
type ProviderConfig struct {
	Provider string // "ollama" (default), "openai", "anthropic", "gemini", "xai", "openrouter"
	APIKey   string
	Model    string
	Endpoint string // Ollama only
	Timeout  time.Duration
}

// New builds a Client for the configured provider.
func New(cfg ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case "", "ollama":
		return NewOllamaClient(cfg.Endpoint, cfg.Model), nil
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "gemini":
		return NewGeminiClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "xai":
		return NewXAIClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "openrouter":
		return NewOpenRouterClient(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
