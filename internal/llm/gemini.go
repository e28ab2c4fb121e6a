package llm

import (
	"context"
	"time"
)

// GeminiClient talks to Google's Gemini API via its OpenAI-compatible
// chat-completions endpoint.
type GeminiClient struct {
	*chatClient
}

// NewGeminiClient builds a client. model defaults to "gemini-2.0-flash".
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{newChatClient(apiKey, "https://generativelanguage.googleapis.com/v1beta/openai", model, "Authorization", "Bearer ", timeout)}
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, "/chat/completions", "", prompt)
}

func (c *GeminiClient) IsAvailable(ctx context.Context) bool {
	return c.isAvailable(ctx, "/models")
}

var _ Client = (*GeminiClient)(nil)
