package config

import (
	"time"

	"jwright/internal/llm"
)

// defaultLLMTimeout is used when a provider's timeout is unset or
// unparsable.
const defaultLLMTimeout = 120 * time.Second

// ProviderConfig converts the selected provider's settings into the llm
// package's ProviderConfig, ready to pass to llm.New.
func (l LLMConfig) ProviderConfig() llm.ProviderConfig {
	s := l.Settings()
	return llm.ProviderConfig{
		Provider: l.Provider,
		APIKey:   s.APIKey,
		Model:    s.Model,
		Endpoint: s.URL,
		Timeout:  ParseDuration(s.Timeout, defaultLLMTimeout),
	}
}
