package llm

import (
	"context"
	"time"
)

// AnthropicClient talks to the Anthropic messages API via its
// OpenAI-compatible chat-completions shim.
type AnthropicClient struct {
	*chatClient
}

// NewAnthropicClient builds a client. model defaults to "claude-sonnet-4-5".
func NewAnthropicClient(apiKey, model string, timeout time.Duration) *AnthropicClient {
	if model == "" {
		model = "claude-sonnet-4-5"
	}
	return &AnthropicClient{newChatClient(apiKey, "https://api.anthropic.com/v1", model, "x-api-key", "", timeout)}
}

func (c *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "/chat/completions", "", prompt)
}

func (c *AnthropicClient) IsAvailable(ctx context.Context) bool {
	return c.isAvailable(ctx, "/models")
}

var _ Client = (*AnthropicClient)(nil)
