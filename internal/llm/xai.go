package llm

import (
	"context"
	"time"
)

// XAIClient talks to xAI's Grok chat-completions API.
type XAIClient struct {
	*chatClient
}

// NewXAIClient builds a client. model defaults to "grok-2".
func NewXAIClient(apiKey, model string, timeout time.Duration) *XAIClient {
	if model == "" {
		model = "grok-2"
	}
	return &XAIClient{newChatClient(apiKey, "https://api.x.ai/v1", model, "Authorization", "Bearer ", timeout)}
}

func (c *XAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "/chat/completions", "", prompt)
}

func (c *XAIClient) IsAvailable(ctx context.Context) bool {
	return c.isAvailable(ctx, "/models")
}

var _ Client = (*XAIClient)(nil)
