package llm

import (
	"context"
	"time"
)

// OpenRouterClient talks to OpenRouter's unified chat-completions API,
// giving access to whatever model the project configures by slug.
type OpenRouterClient struct {
	*chatClient
}

// NewOpenRouterClient builds a client. model defaults to
// "anthropic/claude-sonnet-4.5".
func NewOpenRouterClient(apiKey, model string, timeout time.Duration) *OpenRouterClient {
	if model == "" {
		model = "anthropic/claude-sonnet-4.5"
	}
	return &OpenRouterClient{newChatClient(apiKey, "https://openrouter.ai/api/v1", model, "Authorization", "Bearer ", timeout)}
}

func (c *OpenRouterClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "/chat/completions", "", prompt)
}

func (c *OpenRouterClient) IsAvailable(ctx context.Context) bool {
	return c.isAvailable(ctx, "/models")
}

var _ Client = (*OpenRouterClient)(nil)
