package llm

import (
	"context"
	"time"
)

// OpenAIClient talks to the OpenAI chat-completions API.
type OpenAIClient struct {
	*chatClient
}

// NewOpenAIClient builds a client. model defaults to "gpt-4o".
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIClient{newChatClient(apiKey, "https://api.openai.com/v1", model, "Authorization", "Bearer ", timeout)}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "/chat/completions", "", prompt)
}

func (c *OpenAIClient) IsAvailable(ctx context.Context) bool {
	return c.isAvailable(ctx, "/models")
}

var _ Client = (*OpenAIClient)(nil)
